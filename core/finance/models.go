package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

// TransactionType encodes the direction semantics of a transaction.
// Amounts are always positive; direction comes from the type plus the
// sender/recipient endpoints, never from the sign.
type TransactionType string

const (
	TypeIncomeSource TransactionType = "income_source"
	TypeExpense      TransactionType = "expense"
	TypeTransfer     TransactionType = "transfer"
)

var AllTransactionTypes = []TransactionType{TypeIncomeSource, TypeExpense, TypeTransfer}

type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"transaction_type"`
	Amount        decimal.Decimal `json:"amount"`
	SenderType    org.Level       `json:"sender_entity_type"`
	SenderID      string          `json:"sender_entity_id"`
	RecipientType org.Level       `json:"recipient_entity_type"`
	RecipientID   string          `json:"recipient_entity_id"`
	Scope         org.Scope       `json:"scope"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"` // UTC
	UpdatedAt     time.Time       `json:"updated_at"` // UTC
}

func (t Transaction) RecordScope() org.Scope { return t.Scope }

// wellFormed reports whether the transaction may contribute to ledger totals.
// Non-positive amounts and self-referential income/expense rows are data-quality
// failures the ledger must survive, not crash on.
func (t Transaction) wellFormed() bool {
	if !t.Amount.IsPositive() {
		return false
	}
	if t.Type == TypeIncomeSource || t.Type == TypeExpense {
		if t.SenderType == t.RecipientType && t.SenderID == t.RecipientID {
			return false
		}
	}
	return true
}

// NewTransaction contains information needed to record a new Transaction.
type NewTransaction struct {
	Type          TransactionType `json:"transaction_type" validate:"required,oneof=income_source expense transfer"`
	Amount        decimal.Decimal `json:"amount"`
	SenderType    org.Level       `json:"sender_entity_type" validate:"required,oneof=national site small_group"`
	SenderID      string          `json:"sender_entity_id" validate:"required"`
	RecipientType org.Level       `json:"recipient_entity_type" validate:"required,oneof=national site small_group"`
	RecipientID   string          `json:"recipient_entity_id" validate:"required"`
	Level         org.Level       `json:"level" validate:"required,oneof=national site small_group"`
	SiteID        string          `json:"site_id" validate:"required_if=Level site,required_if=Level small_group"`
	SmallGroupID  string          `json:"small_group_id" validate:"required_if=Level small_group"`
	Date          time.Time       `json:"date" validate:"required"`
	Description   string          `json:"description"`
}

func (nt *NewTransaction) Validate() error {
	nt.Description = core.CleanString(nt.Description)

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	if !nt.Amount.IsPositive() {
		return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: errAmountNotPositive})
	}
	if nt.Type != TypeTransfer && nt.SenderType == nt.RecipientType && nt.SenderID == nt.RecipientID {
		return core.NewValidationError(nil,
			core.FieldError{Field: "recipient_entity_id", Error: errSelfReferential})
	}
	return nil
}

func (nt NewTransaction) scope() org.Scope {
	return org.Scope{Level: nt.Level, SiteID: nt.SiteID, SmallGroupID: nt.SmallGroupID}
}

var (
	errAmountNotPositive = "amount must be greater than zero"
	errSelfReferential   = "sender and recipient cannot be the same entity for income or expense"
)
