package validation

import (
	"context"
	"errors"
	"fmt"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
	"github.com/sheikh-saqib/bank-api/internal/models"
)

// AvailableAccount resolves account numbers to stored accounts
type AvailableAccount struct {
	accounts interfaces.AccountRepository
}

func NewAvailableAccount(accounts interfaces.AccountRepository) *AvailableAccount {
	return &AvailableAccount{accounts: accounts}
}

// Validate returns the account owning number, or a *models.NotFoundError naming it
func (v *AvailableAccount) Validate(ctx context.Context, number int64) (*models.Account, error) {
	account, err := v.accounts.GetByNumber(ctx, number)
	if errors.Is(err, models.ErrNotFound) {
		return nil, &models.NotFoundError{Number: number}
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %d: %w", number, err)
	}
	return account, nil
}
