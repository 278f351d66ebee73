package memory

import (
	"context"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/options"
)

type transactionRepo struct {
	store *MemoryStore
	state *state
}

func (r *transactionRepo) run(ctx context.Context, fn func(st *state) error) error {
	if r.state != nil {
		return fn(r.state)
	}
	return r.store.apply(ctx, fn)
}

// read is run for lookups: outside a unit of work it skips the copy-on-write path
func (r *transactionRepo) read(ctx context.Context, fn func(st *state) error) error {
	if r.state != nil {
		return fn(r.state)
	}
	return r.store.view(ctx, fn)
}

// Save appends the transaction to the ledger.
// Referenced accounts must already be stored.
func (r *transactionRepo) Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	err := r.run(ctx, func(st *state) error {
		record := transactionRecord{tx: *tx}
		record.tx.SourceAccount, record.tx.ReceiverAccount = nil, nil

		if tx.SourceAccount != nil {
			if _, ok := st.accounts[tx.SourceAccount.ID]; !ok {
				return &models.NotFoundError{Number: tx.SourceAccount.Number}
			}
			record.sourceID = tx.SourceAccount.ID
		}
		if tx.ReceiverAccount != nil {
			if _, ok := st.accounts[tx.ReceiverAccount.ID]; !ok {
				return &models.NotFoundError{Number: tx.ReceiverAccount.Number}
			}
			record.receiverID = tx.ReceiverAccount.ID
		}

		st.transactions = append(st.transactions, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Find returns the ledger entries in insertion order, with their accounts as they are now
func (r *transactionRepo) Find(ctx context.Context, opts *options.TransactionOptions) ([]models.Transaction, error) {
	var result []models.Transaction
	err := r.read(ctx, func(st *state) error {
		result = make([]models.Transaction, 0)
		for _, record := range st.transactions {
			tx := record.tx
			tx.SourceAccount = st.account(record.sourceID)
			tx.ReceiverAccount = st.account(record.receiverID)
			if opts.Match(&tx) {
				result = append(result, tx)
			}
		}
		return nil
	})
	return result, err
}

// account returns a copy of the stored account or nil when id is unset or deleted
func (s *state) account(id int64) *models.Account {
	if id == 0 {
		return nil
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	return &a
}

var _ interfaces.TransactionRepository = (*transactionRepo)(nil)
