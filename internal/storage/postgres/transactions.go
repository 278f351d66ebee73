package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/options"
)

// transactionRow is the stored shape of a models.Transaction
type transactionRow struct {
	ID                string          `db:"id"`
	Type              string          `db:"type"`
	Amount            decimal.Decimal `db:"amount"`
	SourceAccountID   sql.NullInt64   `db:"source_account_id"`
	ReceiverAccountID sql.NullInt64   `db:"receiver_account_id"`
	CreatedAt         time.Time       `db:"created_at"`
}

func newTransactionRow(tx *models.Transaction) transactionRow {
	row := transactionRow{
		ID:        tx.ID,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		CreatedAt: tx.Timestamp,
	}
	if tx.SourceAccount != nil {
		row.SourceAccountID = sql.NullInt64{Int64: tx.SourceAccount.ID, Valid: true}
	}
	if tx.ReceiverAccount != nil {
		row.ReceiverAccountID = sql.NullInt64{Int64: tx.ReceiverAccount.ID, Valid: true}
	}
	return row
}

type transactionRepo struct {
	q sqlx.ExtContext
}

func (r *transactionRepo) Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	_, err := sqlx.NamedExecContext(ctx, r.q,
		`INSERT INTO transactions (id, type, amount, source_account_id, receiver_account_id, created_at)
		VALUES (:id, :type, :amount, :source_account_id, :receiver_account_id, :created_at)`,
		newTransactionRow(tx),
	)
	if isCheckViolation(err) {
		return nil, fmt.Errorf("transaction amount %s rejected: %w", tx.Amount, models.ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Find executes a filtered query over the ledger, oldest entries first.
// Referenced accounts are loaded as they are now; deleted accounts come back nil.
func (r *transactionRepo) Find(ctx context.Context, opts *options.TransactionOptions) ([]models.Transaction, error) {
	query, args, err := buildFindQuery(opts)
	if err != nil {
		return nil, err
	}

	var rows []transactionRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}

	accounts, err := r.loadAccounts(ctx, rows)
	if err != nil {
		return nil, err
	}

	result := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		tx := models.Transaction{
			ID:        row.ID,
			Type:      models.TransactionType(row.Type),
			Amount:    row.Amount,
			Timestamp: row.CreatedAt,
		}
		if row.SourceAccountID.Valid {
			tx.SourceAccount = accounts[row.SourceAccountID.Int64].Clone()
		}
		if row.ReceiverAccountID.Valid {
			tx.ReceiverAccount = accounts[row.ReceiverAccountID.Int64].Clone()
		}
		result = append(result, tx)
	}
	return result, nil
}

// buildFindQuery turns the options into a WHERE clause using named parameters,
// then expands slices and returns a query with '?' bind vars
func buildFindQuery(opts *options.TransactionOptions) (string, []interface{}, error) {
	query := `SELECT t.id, t.type, t.amount, t.source_account_id, t.receiver_account_id, t.created_at
	FROM transactions t
	LEFT JOIN accounts s ON s.id = t.source_account_id
	LEFT JOIN accounts r ON r.id = t.receiver_account_id`

	var where []string
	namedParams := make(map[string]interface{})

	addRange := func(column, key string, rng options.Range) {
		if from, ok := rng.From(); ok {
			where = append(where, fmt.Sprintf("%s >= :%s_from", column, key))
			namedParams[key+"_from"] = from
		}
		if to, ok := rng.To(); ok {
			where = append(where, fmt.Sprintf("%s <= :%s_to", column, key))
			namedParams[key+"_to"] = to
		}
	}

	if opts != nil {
		if opts.AccountNumber != nil {
			where = append(where, "(s.number = :account_number OR r.number = :account_number)")
			namedParams["account_number"] = *opts.AccountNumber
		}
		if len(opts.Types) > 0 {
			types := make([]string, 0, len(opts.Types))
			for _, t := range opts.Types {
				types = append(types, string(t))
			}
			where = append(where, "t.type IN (:types)")
			namedParams["types"] = types
		}
		if opts.Amount != nil {
			addRange("t.amount", "amount", opts.Amount)
		}
		if opts.Timestamp != nil {
			addRange("t.created_at", "created_at", opts.Timestamp)
		}
	}

	if len(where) > 0 {
		query = fmt.Sprintf("%s WHERE %s", query, strings.Join(where, " AND "))
	}
	query += " ORDER BY t.created_at, t.id"

	query, args, err := sqlx.Named(query, namedParams)
	if err != nil {
		return "", nil, err
	}
	return sqlx.In(query, args...)
}

func (r *transactionRepo) loadAccounts(ctx context.Context, rows []transactionRow) (map[int64]*models.Account, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, row := range rows {
		for _, id := range []sql.NullInt64{row.SourceAccountID, row.ReceiverAccountID} {
			if id.Valid && !seen[id.Int64] {
				seen[id.Int64] = true
				ids = append(ids, id.Int64)
			}
		}
	}

	result := make(map[int64]*models.Account, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(selectAccounts+" WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := sqlx.SelectContext(ctx, r.q, &accounts, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}
	for i := range accounts {
		result[accounts[i].ID] = &accounts[i]
	}
	return result, nil
}

var _ interfaces.TransactionRepository = (*transactionRepo)(nil)
