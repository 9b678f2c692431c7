package finance

import (
	"github.com/shopspring/decimal"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

// Summary holds the directional totals of a single hierarchy node over a set
// of transactions. Excluded counts the rows that were skipped as malformed so
// callers can surface partial results honestly.
type Summary struct {
	NodeID              string          `json:"node_id"`
	NodeType            org.Level       `json:"node_type"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpense        decimal.Decimal `json:"total_expense"`
	TotalTransferredOut decimal.Decimal `json:"total_transferred_out"`
	TotalTransferredIn  decimal.Decimal `json:"total_transferred_in"`
	NetBalance          decimal.Decimal `json:"net_balance"`
	Excluded            int             `json:"excluded"`
}

// Summarize reduces transactions into the directional totals of one node.
// Input is assumed to be already scoped and time-filtered. Malformed rows
// (non-positive amount, self-referential income/expense) contribute nothing
// and are counted; the reduction never panics on bad data.
func Summarize(txns []Transaction, nodeID string, nodeType org.Level) Summary {
	s := Summary{
		NodeID:              nodeID,
		NodeType:            nodeType,
		TotalIncome:         decimal.Zero,
		TotalExpense:        decimal.Zero,
		TotalTransferredOut: decimal.Zero,
		TotalTransferredIn:  decimal.Zero,
		NetBalance:          decimal.Zero,
	}

	for _, t := range txns {
		if !t.wellFormed() {
			s.Excluded++
			continue
		}

		sends := t.SenderType == nodeType && t.SenderID == nodeID
		receives := t.RecipientType == nodeType && t.RecipientID == nodeID

		switch t.Type {
		case TypeIncomeSource:
			if receives {
				s.TotalIncome = s.TotalIncome.Add(t.Amount)
			}
		case TypeExpense:
			if sends {
				s.TotalExpense = s.TotalExpense.Add(t.Amount)
			}
		case TypeTransfer:
			// a self transfer hits both sides and nets to zero
			if sends {
				s.TotalTransferredOut = s.TotalTransferredOut.Add(t.Amount)
			}
			if receives {
				s.TotalTransferredIn = s.TotalTransferredIn.Add(t.Amount)
			}
		default:
			s.Excluded++
		}
	}

	s.NetBalance = s.TotalIncome.
		Add(s.TotalTransferredIn).
		Sub(s.TotalExpense).
		Sub(s.TotalTransferredOut)
	return s
}
