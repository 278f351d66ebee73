package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Balances and amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account is a bank account identified externally by its Number
type Account struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Number       int64           `json:"number" db:"number"`
	Balance      decimal.Decimal `json:"balance" db:"balance"`
	SpecialLimit decimal.Decimal `json:"specialLimit" db:"special_limit"` // overdraft allowance, never negative
}

// Available returns the funds that can still be debited: balance plus overdraft
func (a *Account) Available() decimal.Decimal {
	return a.Balance.Add(a.SpecialLimit)
}

// Clone returns a copy that can be mutated without touching the original
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
