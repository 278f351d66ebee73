package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver
)

type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	DatabaseName string
	SSLMode      string
}

func (c Config) dsn() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	// unknown keys such as timezone are sent to the server as run-time parameters
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s timezone=UTC",
		c.Host,
		c.Port,
		c.User,
		c.DatabaseName,
		sslMode,
	)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// Connect to Postgres, create the schema if needed and return a database handle
// representing a pool of connections
func Connect(ctx context.Context, config Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", config.dsn())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := setup(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func setup(ctx context.Context, db *sqlx.DB) error {
	if err := createTables(ctx, db); err != nil {
		return fmt.Errorf("creating db tables: %w", err)
	}

	return nil
}
