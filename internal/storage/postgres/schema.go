package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Transactions keep plain account ids: deleting an account leaves its ledger entries in place.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	number        BIGINT NOT NULL UNIQUE,
	balance       NUMERIC(19, 4) NOT NULL DEFAULT 0,
	special_limit NUMERIC(19, 4) NOT NULL DEFAULT 0 CHECK (special_limit >= 0),
	CHECK (balance >= -special_limit)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
	id                  UUID PRIMARY KEY,
	type                TEXT NOT NULL CHECK (type IN ('DEPOSIT', 'WITHDRAW', 'TRANSFER')),
	amount              NUMERIC(19, 4) NOT NULL CHECK (amount > 0),
	source_account_id   BIGINT,
	receiver_account_id BIGINT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (source_account_id IS NOT NULL OR receiver_account_id IS NOT NULL)
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_source_idx ON transactions (source_account_id)`,
	`CREATE INDEX IF NOT EXISTS transactions_receiver_idx ON transactions (receiver_account_id)`,
}

func createTables(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
