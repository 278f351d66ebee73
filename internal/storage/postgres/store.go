package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
)

const defaultMaxAttempts = 3

// PostgresStore implements interfaces.Store on top of a Postgres database.
// Accounts read inside a unit of work are locked until it ends, and the unit is
// retried when Postgres aborts it with a serialization failure or a deadlock.
type PostgresStore struct {
	db          *sqlx.DB
	logger      *zap.Logger
	maxAttempts int
}

func NewPostgresStore(db *sqlx.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{
		db:          db,
		logger:      logger,
		maxAttempts: defaultMaxAttempts,
	}
}

func (p *PostgresStore) Accounts() interfaces.AccountRepository {
	return &accountRepo{q: p.db}
}

func (p *PostgresStore) Transactions() interfaces.TransactionRepository {
	return &transactionRepo{q: p.db}
}

// WithinTx implements interfaces.Store
func (p *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos interfaces.Repositories) error) error {
	var err error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		err = p.runTx(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
		p.logger.Debug("retrying unit of work",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return err
}

func (p *PostgresStore) runTx(ctx context.Context, fn func(ctx context.Context, repos interfaces.Repositories) error) (err error) {
	dbTx, err := p.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	err = fn(ctx, &txRepos{tx: dbTx})
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

// txRepos exposes repositories bound to one database transaction.
// Accounts read through it are locked until the transaction ends.
type txRepos struct {
	tx *sqlx.Tx
}

func (r *txRepos) Accounts() interfaces.AccountRepository {
	return &accountRepo{q: r.tx, forUpdate: true}
}

func (r *txRepos) Transactions() interfaces.TransactionRepository {
	return &transactionRepo{q: r.tx}
}

const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeNumericOutOfRange    = "22003"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func retryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}

// isCheckViolation also covers values outside a NUMERIC column's range
func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		(pqErr.Code == codeCheckViolation || pqErr.Code == codeNumericOutOfRange)
}

// notFound maps sql.ErrNoRows to models.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}

var _ interfaces.Store = (*PostgresStore)(nil)
