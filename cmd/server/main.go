package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sheikh-saqib/bank-api/internal/config"
	"github.com/sheikh-saqib/bank-api/internal/events/kafka"
	eventlog "github.com/sheikh-saqib/bank-api/internal/events/log"
	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/server"
	"github.com/sheikh-saqib/bank-api/internal/service"
	"github.com/sheikh-saqib/bank-api/internal/storage/memory"
	"github.com/sheikh-saqib/bank-api/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store interfaces.Store
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		store = postgres.NewPostgresStore(db, logger.Named("postgres"))
	default:
		store = memory.NewMemoryStore()
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		publisher = eventlog.NewPublisher(logger)
	}

	handler := server.NewHandler(server.Config{
		Accounts: service.NewAccountService(store, logger.Named("accounts")),
		Transactions: service.NewTransactionService(service.Config{
			Store:     store,
			Publisher: publisher,
			Topic:     cfg.KafkaTopic,
			Logger:    logger.Named("transactions"),
		}),
		Logger: logger.Named("http"),
	})
	srv := server.NewHTTPServer(cfg.HTTPAddr, handler)

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("storage", cfg.Storage),
			zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.LogEnv == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}
