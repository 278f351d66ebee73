package interfaces

import "context"

// Repositories groups the repositories that share one unit of work
type Repositories interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
}

// Store is the persistence collaborator.
// Repositories used outside WithinTx commit every call on its own.
type Store interface {
	Repositories
	// WithinTx runs fn as a single atomic unit of work: every write made through
	// repos is committed when fn returns nil and discarded otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
