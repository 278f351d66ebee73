package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	config, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, ":8080", config.HTTPAddr)
	require.Equal(t, StorageMemory, config.Storage)
	require.Equal(t, 5432, config.Postgres.Port)
	require.Empty(t, config.KafkaBrokers)
	require.Equal(t, "transaction_completed", config.KafkaTopic)
	require.Equal(t, 10*time.Second, config.ShutdownTimeout)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("BANK_STORAGE", "postgres")
	t.Setenv("BANK_POSTGRES_DB_NAME", "bank_dev")
	t.Setenv("BANK_KAFKA_BROKERS", "a:9092, b:9092,")

	config, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, StoragePostgres, config.Storage)
	require.Equal(t, "bank_dev", config.Postgres.DatabaseName)
	require.Equal(t, []string{"a:9092", "b:9092"}, config.KafkaBrokers)
}

func TestBrokerListFromEnvironment(t *testing.T) {
	t.Setenv("BANK_KAFKA_BROKERS", "a:9092,b:9092")

	config, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a:9092", "b:9092"}, config.KafkaBrokers)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("BANK_HTTP_ADDR", ":9000")

	config, err := Parse([]string{"-http-addr", ":7000"})
	require.NoError(t, err)
	require.Equal(t, ":7000", config.HTTPAddr)
}

func TestValidate(t *testing.T) {
	_, err := Parse([]string{"-storage", "redis"})
	require.Error(t, err)

	_, err = Parse([]string{"-storage", "postgres"})
	require.Error(t, err)

	_, err = Parse([]string{"-log-env", "staging"})
	require.Error(t, err)
}
