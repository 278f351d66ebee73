package validation

import (
	"fmt"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

// AvailableBalance checks that a transaction's source account can cover its amount
type AvailableBalance struct{}

func NewAvailableBalance() *AvailableBalance {
	return &AvailableBalance{}
}

// Validate fails with *models.WithoutBalanceError when amount exceeds balance + special limit
func (AvailableBalance) Validate(tx *models.Transaction) error {
	source := tx.SourceAccount
	if source == nil {
		return fmt.Errorf("%s transaction has no source account: %w", tx.Type, models.ErrInvalidArgument)
	}

	available := source.Available()
	if tx.Amount.GreaterThan(available) {
		return &models.WithoutBalanceError{
			Number:    source.Number,
			Amount:    tx.Amount,
			Available: available,
		}
	}
	return nil
}
