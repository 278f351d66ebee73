package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
)

// AccountService provides CRUD over accounts.
// Balances are never written here: they only move through TransactionService.
type AccountService struct {
	store  interfaces.Store
	logger *zap.Logger
}

func NewAccountService(store interfaces.Store, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

func (s *AccountService) GetAll(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.store.Accounts().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

// GetByNumber reports false, without error, when no account owns number
func (s *AccountService) GetByNumber(ctx context.Context, number int64) (*models.Account, bool, error) {
	account, err := s.store.Accounts().GetByNumber(ctx, number)
	if errors.Is(err, models.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading account %d: %w", number, err)
	}
	return account, true, nil
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.store.Accounts().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading account id %d: %w", id, err)
	}
	return account, nil
}

// Save creates an account. The initial balance is always zero, whatever the DTO carries.
func (s *AccountService) Save(ctx context.Context, dto models.AccountDTO) (*models.Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:         dto.Name,
		Number:       dto.Number,
		Balance:      decimal.Zero,
		SpecialLimit: dto.SpecialLimit,
	}

	saved, err := s.store.Accounts().Save(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("creating account %d: %w", dto.Number, err)
	}

	s.logger.Info("account created",
		zap.Int64("id", saved.ID),
		zap.Int64("number", saved.Number),
	)
	return saved, nil
}

// Update overwrites name, number and special limit and keeps the stored balance
func (s *AccountService) Update(ctx context.Context, id int64, dto models.AccountDTO) (*models.Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Account
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos interfaces.Repositories) error {
		account, err := repos.Accounts().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if account.Balance.LessThan(dto.SpecialLimit.Neg()) {
			return fmt.Errorf("specialLimit %s does not cover balance %s: %w",
				dto.SpecialLimit, account.Balance, models.ErrInvalidArgument)
		}

		account.Name = dto.Name
		account.Number = dto.Number
		account.SpecialLimit = dto.SpecialLimit

		updated, err = repos.Accounts().Save(ctx, account)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating account id %d: %w", id, err)
	}

	s.logger.Info("account updated",
		zap.Int64("id", updated.ID),
		zap.Int64("number", updated.Number),
	)
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Accounts().DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting account id %d: %w", id, err)
	}

	s.logger.Info("account deleted", zap.Int64("id", id))
	return nil
}
