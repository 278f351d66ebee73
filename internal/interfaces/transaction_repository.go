package interfaces

import (
	"context"

	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/options"
)

type TransactionRepository interface {
	Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	Find(ctx context.Context, opts *options.TransactionOptions) ([]models.Transaction, error)
}
