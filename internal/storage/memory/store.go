package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"sync"    // standard Go package for concurrency primitives like Mutex

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
)

// MemoryStore is an in-memory implementation of interfaces.Store.
// Every unit of work holds the mutex for its whole duration and works on a copy
// of the state, which replaces the live state only when the unit succeeds.
type MemoryStore struct {
	mu    sync.Mutex // serializes units of work
	state *state     // committed state
}

// transactionRecord is a stored ledger entry; accounts are kept by id
type transactionRecord struct {
	tx         models.Transaction
	sourceID   int64
	receiverID int64
}

type state struct {
	accounts     map[int64]models.Account
	order        []int64 // account ids in insertion order
	transactions []transactionRecord
	nextID       int64
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[int64]models.Account, len(s.accounts)),
		order:        make([]int64, len(s.order)),
		transactions: make([]transactionRecord, len(s.transactions)),
		nextID:       s.nextID,
	}
	for id, a := range s.accounts {
		c.accounts[id] = a
	}
	copy(c.order, s.order)
	copy(c.transactions, s.transactions) // records are immutable once appended
	return c
}

// NewMemoryStore creates and returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &state{
			accounts: make(map[int64]models.Account),
			nextID:   1,
		},
	}
}

func (m *MemoryStore) Accounts() interfaces.AccountRepository {
	return &accountRepo{store: m}
}

func (m *MemoryStore) Transactions() interfaces.TransactionRepository {
	return &transactionRepo{store: m}
}

// WithinTx implements interfaces.Store
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos interfaces.Repositories) error) error {
	return m.apply(ctx, func(st *state) error {
		return fn(ctx, &txRepos{state: st})
	})
}

// apply runs fn on a copy of the state and commits the copy if fn succeeds
func (m *MemoryStore) apply(ctx context.Context, fn func(st *state) error) error {
	m.mu.Lock()         // lock the mutex to prevent concurrent units of work
	defer m.mu.Unlock() // unlock automatically when function exits (even if error occurs)

	if err := ctx.Err(); err != nil {
		return err
	}

	working := m.state.clone()
	if err := fn(working); err != nil {
		return err // working copy is dropped, nothing becomes visible
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = working
	return nil
}

// view runs a read-only fn on the committed state without copying it.
// fn must not modify st or keep references into it.
func (m *MemoryStore) view(ctx context.Context, fn func(st *state) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(m.state)
}

// txRepos exposes repositories bound to the working state of one unit of work
type txRepos struct {
	state *state
}

func (r *txRepos) Accounts() interfaces.AccountRepository {
	return &accountRepo{state: r.state}
}

func (r *txRepos) Transactions() interfaces.TransactionRepository {
	return &transactionRepo{state: r.state}
}

// Compile-time check: ensure MemoryStore implements Store interface
var _ interfaces.Store = (*MemoryStore)(nil)
