package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/models/events"
	"github.com/sheikh-saqib/bank-api/internal/options"
	"github.com/sheikh-saqib/bank-api/internal/validation"
)

// TransactionService processes deposits, withdrawals and transfers.
// Every operation runs as one unit of work in the store: the balance changes and
// the ledger entry are committed together or not at all.
type TransactionService struct {
	store     interfaces.Store
	publisher interfaces.EventPublisher // optional
	topic     string
	balance   *validation.AvailableBalance
	logger    *zap.Logger

	publishTimeout time.Duration
	now            func() time.Time
}

const defaultPublishTimeout = 5 * time.Second

// Config used to create a new TransactionService
type Config struct {
	Store interfaces.Store
	// Publisher receives a TransactionCompleted event after each commit, may be nil
	Publisher interfaces.EventPublisher
	// Topic defaults to events.TransactionCompletedTopic
	Topic  string
	Logger *zap.Logger
}

func NewTransactionService(config Config) *TransactionService {
	topic := config.Topic
	if topic == "" {
		topic = events.TransactionCompletedTopic
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TransactionService{
		store:     config.Store,
		publisher: config.Publisher,
		topic:     topic,
		balance:   validation.NewAvailableBalance(),
		logger:    logger,

		publishTimeout: defaultPublishTimeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Deposit credits amount to the receiver account
func (s *TransactionService) Deposit(ctx context.Context, dto models.DepositDTO) (*models.Transaction, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var result *models.Transaction
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos interfaces.Repositories) error {
		accounts := validation.NewAvailableAccount(repos.Accounts())

		receiver, err := accounts.Validate(ctx, dto.ReceiverAccountNumber)
		if err != nil {
			return err
		}

		tx := s.newTransaction(models.TransactionDeposit, dto.Amount)
		tx.ReceiverAccount = receiver

		receiver.Balance = receiver.Balance.Add(dto.Amount)

		result, err = s.persist(ctx, repos, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.completed(ctx, result)
	return result, nil
}

// Withdraw debits amount from the source account, allowing it to go negative down to its special limit
func (s *TransactionService) Withdraw(ctx context.Context, dto models.WithdrawDTO) (*models.Transaction, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var result *models.Transaction
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos interfaces.Repositories) error {
		accounts := validation.NewAvailableAccount(repos.Accounts())

		source, err := accounts.Validate(ctx, dto.SourceAccountNumber)
		if err != nil {
			return err
		}

		tx := s.newTransaction(models.TransactionWithdraw, dto.Amount)
		tx.SourceAccount = source

		if err := s.balance.Validate(tx); err != nil {
			return err
		}

		source.Balance = source.Balance.Sub(dto.Amount)

		result, err = s.persist(ctx, repos, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.completed(ctx, result)
	return result, nil
}

// Transfer moves amount from the source account to the receiver account
func (s *TransactionService) Transfer(ctx context.Context, dto models.TransferDTO) (*models.Transaction, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var result *models.Transaction
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos interfaces.Repositories) error {
		accounts := validation.NewAvailableAccount(repos.Accounts())

		source, err := accounts.Validate(ctx, dto.SourceAccountNumber)
		if err != nil {
			return err
		}
		receiver, err := accounts.Validate(ctx, dto.ReceiverAccountNumber)
		if err != nil {
			return err
		}

		tx := s.newTransaction(models.TransactionTransfer, dto.Amount)
		tx.SourceAccount = source
		tx.ReceiverAccount = receiver

		if err := s.balance.Validate(tx); err != nil {
			return err
		}

		source.Balance = source.Balance.Sub(dto.Amount)
		receiver.Balance = receiver.Balance.Add(dto.Amount)

		result, err = s.persist(ctx, repos, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.completed(ctx, result)
	return result, nil
}

// Find lists ledger entries matching opts; nil opts lists everything
func (s *TransactionService) Find(ctx context.Context, opts *options.TransactionOptions) ([]models.Transaction, error) {
	transactions, err := s.store.Transactions().Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) newTransaction(kind models.TransactionType, amount decimal.Decimal) *models.Transaction {
	return &models.Transaction{
		ID:        uuid.New().String(),
		Type:      kind,
		Amount:    amount,
		Timestamp: s.now(),
	}
}

// persist saves the mutated accounts and then the ledger entry referencing them
func (s *TransactionService) persist(ctx context.Context, repos interfaces.Repositories, tx *models.Transaction) (*models.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	for _, acc := range []*models.Account{tx.SourceAccount, tx.ReceiverAccount} {
		if acc != nil && acc.Balance.Abs().GreaterThanOrEqual(models.MaxMoney) {
			return nil, fmt.Errorf("account %d balance would exceed %s: %w",
				acc.Number, models.MaxMoney, models.ErrInvalidArgument)
		}
	}

	var err error
	if tx.SourceAccount != nil {
		if tx.SourceAccount, err = repos.Accounts().Save(ctx, tx.SourceAccount); err != nil {
			return nil, fmt.Errorf("saving source account: %w", err)
		}
	}
	if tx.ReceiverAccount != nil {
		if tx.ReceiverAccount, err = repos.Accounts().Save(ctx, tx.ReceiverAccount); err != nil {
			return nil, fmt.Errorf("saving receiver account: %w", err)
		}
	}

	saved, err := repos.Transactions().Save(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}
	return saved, nil
}

// completed logs and publishes a committed transaction.
// The transaction is already durable, so publishing failures are only logged.
func (s *TransactionService) completed(ctx context.Context, tx *models.Transaction) {
	fields := []zap.Field{
		zap.String("transaction_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
	}
	if tx.SourceAccount != nil {
		fields = append(fields, zap.Int64("source", tx.SourceAccount.Number))
	}
	if tx.ReceiverAccount != nil {
		fields = append(fields, zap.Int64("receiver", tx.ReceiverAccount.Number))
	}
	s.logger.Info("transaction completed", fields...)

	if s.publisher == nil {
		return
	}
	// the transaction is committed, so a client hanging up must not cancel the publish
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, s.topic, events.NewTransactionCompleted(tx)); err != nil {
		s.logger.Warn("publishing transaction event failed",
			zap.String("transaction_id", tx.ID),
			zap.Error(err),
		)
	}
}
