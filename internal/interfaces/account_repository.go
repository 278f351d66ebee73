package interfaces

import (
	"context"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

// AccountRepository loads and stores accounts.
// Lookups of missing rows return models.ErrNotFound.
type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindAll(ctx context.Context) ([]models.Account, error)
	GetByNumber(ctx context.Context, number int64) (*models.Account, error)
	// Save inserts the account when ID is zero and updates it otherwise
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
	DeleteByID(ctx context.Context, id int64) error
}
