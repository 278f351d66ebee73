package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an account number or id does not exist
	ErrNotFound = errors.New("not found")
	// ErrWithoutBalance is returned when a debit exceeds balance plus special limit
	ErrWithoutBalance = errors.New("insufficient balance")
	// ErrInvalidArgument is returned for malformed requests, checked before any mutation
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateNumber is returned when another account already owns the number
	ErrDuplicateNumber = errors.New("account number already in use")

	ErrInvalidAmount = fmt.Errorf("amount must be positive: %w", ErrInvalidArgument)
	ErrSameAccount   = fmt.Errorf("source and receiver accounts must differ: %w", ErrInvalidArgument)
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// NotFoundError identifies the account that could not be resolved
type NotFoundError struct {
	Number int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account %d does not exist", e.Number)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WithoutBalanceError reports a debit the source account cannot cover
type WithoutBalanceError struct {
	Number    int64
	Amount    decimal.Decimal
	Available decimal.Decimal
}

func (e *WithoutBalanceError) Error() string {
	return fmt.Sprintf("account %d has insufficient balance: requested %s, available %s",
		e.Number, e.Amount.String(), e.Available.String())
}

func (e *WithoutBalanceError) Is(target error) bool {
	return target == ErrWithoutBalance
}
