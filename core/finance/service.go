package finance

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/temporal"
)

var (
	// errors
	ErrNotFound = errors.New("transaction not found")
)

type (
	Repository interface {
		CreateTransaction(txn Transaction) (Transaction, error)
		QueryAllTransactions() ([]Transaction, error)
		GetTransactionByID(id string) (Transaction, error)
		DeleteTransactionsByID(ids ...string) error
	}

	Service interface {
		Create(nt NewTransaction) (Transaction, error)
		GetByID(id string) (Transaction, error)
		// Visible returns the transactions the actor may see within the window,
		// plus a count of records excluded for data-quality reasons.
		Visible(policy access.Policy, actor access.Actor, sel temporal.Selector, now time.Time) ([]Transaction, int, error)
		// Ledger computes the directional totals of a node over the actor's
		// visible transactions within the window.
		Ledger(policy access.Policy, actor access.Actor, sel temporal.Selector, now time.Time, nodeID string, nodeType org.Level) (Summary, error)
		Delete(ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) Create(nt NewTransaction) (Transaction, error) {
	now := time.Now().UTC()
	txn := Transaction{
		ID:            uuid.New().String(),
		Type:          nt.Type,
		Amount:        nt.Amount,
		SenderType:    nt.SenderType,
		SenderID:      nt.SenderID,
		RecipientType: nt.RecipientType,
		RecipientID:   nt.RecipientID,
		Scope:         nt.scope(),
		Date:          nt.Date,
		Description:   nt.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateTransaction(txn)
}

func (svc *service) GetByID(id string) (Transaction, error) {
	return svc.repo.GetTransactionByID(id)
}

func (svc *service) Visible(
	policy access.Policy,
	actor access.Actor,
	sel temporal.Selector,
	now time.Time,
) ([]Transaction, int, error) {
	txns, err := svc.repo.QueryAllTransactions()
	if err != nil {
		return nil, 0, err
	}

	rng, err := temporal.Resolve(sel, now)
	if err != nil {
		return nil, 0, err
	}

	scoped := access.VisibleRecords(policy, actor, txns)
	kept, excluded := temporal.Filter(scoped, rng, func(t Transaction) time.Time { return t.Date })
	return kept, excluded, nil
}

func (svc *service) Ledger(
	policy access.Policy,
	actor access.Actor,
	sel temporal.Selector,
	now time.Time,
	nodeID string,
	nodeType org.Level,
) (Summary, error) {
	txns, excluded, err := svc.Visible(policy, actor, sel, now)
	if err != nil {
		return Summary{}, err
	}
	summary := Summarize(txns, nodeID, nodeType)
	summary.Excluded += excluded
	return summary, nil
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteTransactionsByID(ids...)
}
