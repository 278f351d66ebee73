package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
)

const selectAccounts = `SELECT id, name, number, balance, special_limit FROM accounts`

type accountRepo struct {
	q         sqlx.ExtContext
	forUpdate bool // lock rows that are read, only valid inside a transaction
}

func (r *accountRepo) lock(query string) string {
	if r.forUpdate {
		return query + " FOR UPDATE"
	}
	return query
}

func (r *accountRepo) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	var result models.Account
	err := sqlx.GetContext(ctx, r.q, &result, r.lock(selectAccounts+" WHERE id = $1"), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &result, nil
}

func (r *accountRepo) FindAll(ctx context.Context) ([]models.Account, error) {
	result := []models.Account{}
	err := sqlx.SelectContext(ctx, r.q, &result, selectAccounts+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *accountRepo) GetByNumber(ctx context.Context, number int64) (*models.Account, error) {
	var result models.Account
	err := sqlx.GetContext(ctx, r.q, &result, r.lock(selectAccounts+" WHERE number = $1"), number)
	if err != nil {
		return nil, notFound(err)
	}
	return &result, nil
}

func (r *accountRepo) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	saved := *account

	var err error
	if saved.ID == 0 {
		err = r.insert(ctx, &saved)
	} else {
		err = r.update(ctx, &saved)
	}
	if isUniqueViolation(err) {
		return nil, models.ErrDuplicateNumber
	}
	if isCheckViolation(err) {
		return nil, fmt.Errorf("account %d violates balance constraints: %w", saved.Number, models.ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *accountRepo) insert(ctx context.Context, account *models.Account) error {
	rows, err := sqlx.NamedQueryContext(ctx, r.q,
		`INSERT INTO accounts (name, number, balance, special_limit)
		VALUES (:name, :number, :balance, :special_limit) RETURNING id`,
		account,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("inserting account %d: no id returned", account.Number)
	}
	return rows.Scan(&account.ID)
}

func (r *accountRepo) update(ctx context.Context, account *models.Account) error {
	res, err := sqlx.NamedExecContext(ctx, r.q,
		`UPDATE accounts SET name = :name, number = :number, balance = :balance,
		special_limit = :special_limit WHERE id = :id`,
		account,
	)
	if err != nil {
		return err
	}
	return expectRow(res.RowsAffected())
}

func (r *accountRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectRow(res.RowsAffected())
}

func expectRow(affected int64, err error) error {
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

var _ interfaces.AccountRepository = (*accountRepo)(nil)
