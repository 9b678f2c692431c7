package inmemdb

import (
	"sort"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/finance"
)

type transactionRepository struct {
	db *transactionTable
}

var _ finance.Repository = (*transactionRepository)(nil)

func NewTransactionRepository(db *DB) *transactionRepository {
	return &transactionRepository{db: db.transaction}
}

func (repo *transactionRepository) CreateTransaction(txn finance.Transaction) (finance.Transaction, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[txn.ID] = &txn
	return txn, nil
}

func (repo *transactionRepository) QueryAllTransactions() ([]finance.Transaction, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	txns := make([]finance.Transaction, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		txns = append(txns, *t)
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].CreatedAt.After(txns[j].CreatedAt) })
	return txns, nil
}

func (repo *transactionRepository) GetTransactionByID(id string) (finance.Transaction, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return *t, nil
	}
	return finance.Transaction{}, finance.ErrNotFound
}

func (repo *transactionRepository) DeleteTransactionsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
