package validation

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *mockAccounts) FindAll(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]models.Account)
	return accounts, args.Error(1)
}

func (m *mockAccounts) GetByNumber(ctx context.Context, number int64) (*models.Account, error) {
	args := m.Called(ctx, number)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *mockAccounts) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	args := m.Called(ctx, account)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *mockAccounts) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
