// Package config reads the server settings from flags, then BANK_ prefixed
// environment variables, then an optional .env file.
//
// Example .env file
//
//	BANK_STORAGE=postgres
//	BANK_POSTGRES_HOST=localhost
//	BANK_POSTGRES_PORT=5432
//	BANK_POSTGRES_USER=alice
//	BANK_POSTGRES_DB_NAME=bank_dev
//	BANK_KAFKA_BROKERS=localhost:9092
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff"

	"github.com/sheikh-saqib/bank-api/internal/models/events"
	"github.com/sheikh-saqib/bank-api/internal/storage/postgres"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPAddr        string
	Storage         string
	Postgres        postgres.Config
	KafkaBrokers    []string
	KafkaTopic      string
	LogEnv          string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads .env if present and parses args
func Load(args []string) (*Config, error) {
	// a missing .env is fine, the environment may be set some other way
	_ = godotenv.Load()
	return Parse(args)
}

func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("bank-api", flag.ContinueOnError)
	var (
		httpAddr        = fs.String("http-addr", ":8080", "address the HTTP server listens on")
		storage         = fs.String("storage", StorageMemory, "storage backend: memory or postgres")
		pgHost          = fs.String("postgres-host", "localhost", "postgres host to connect to")
		pgPort          = fs.Int("postgres-port", 5432, "postgres port")
		pgUser          = fs.String("postgres-user", "", "postgres user to sign in as")
		pgPassword      = fs.String("postgres-password", "", "postgres password")
		pgDBName        = fs.String("postgres-db-name", "", "name of the database")
		pgSSLMode       = fs.String("postgres-sslmode", "disable", "postgres sslmode")
		kafkaBrokers    = fs.String("kafka-brokers", "", "comma separated kafka brokers, empty logs events instead")
		kafkaTopic      = fs.String("kafka-topic", events.TransactionCompletedTopic, "topic completed transactions are published to")
		logEnv          = fs.String("log-env", "production", "production or development")
		logLevel        = fs.String("log-level", "info", "minimum log level")
		shutdownTimeout = fs.Duration("shutdown-timeout", 10*time.Second, "time allowed for in-flight requests on shutdown")
	)

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("BANK"),
		// list values such as kafka-brokers are split by splitList
		ff.WithEnvVarIgnoreCommas(true),
	)
	if err != nil {
		return nil, err
	}

	config := &Config{
		HTTPAddr: *httpAddr,
		Storage:  strings.ToLower(*storage),
		Postgres: postgres.Config{
			Host:         *pgHost,
			Port:         *pgPort,
			User:         *pgUser,
			Password:     *pgPassword,
			DatabaseName: *pgDBName,
			SSLMode:      *pgSSLMode,
		},
		KafkaBrokers:    splitList(*kafkaBrokers),
		KafkaTopic:      *kafkaTopic,
		LogEnv:          *logEnv,
		LogLevel:        *logLevel,
		ShutdownTimeout: *shutdownTimeout,
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.DatabaseName == "" {
			return errors.New("postgres storage requires -postgres-db-name")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.LogEnv != "production" && c.LogEnv != "development" {
		return fmt.Errorf("unknown log env %q", c.LogEnv)
	}
	if c.KafkaTopic == "" {
		return errors.New("kafka topic must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
