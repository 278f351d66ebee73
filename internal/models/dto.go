package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountDTO carries the editable fields of an account.
// Balance is accepted for compatibility but ignored on create and update.
type AccountDTO struct {
	Name         string          `json:"name"`
	Number       int64           `json:"number"`
	Balance      decimal.Decimal `json:"balance"`
	SpecialLimit decimal.Decimal `json:"specialLimit"`
}

func (d AccountDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalidArgument("name is required")
	}
	if d.SpecialLimit.IsNegative() {
		return invalidArgument("specialLimit must not be negative")
	}
	return validateMoney("specialLimit", d.SpecialLimit)
}

type DepositDTO struct {
	ReceiverAccountNumber int64           `json:"receiverAccountNumber"`
	Amount                decimal.Decimal `json:"amount"`
}

func (d DepositDTO) Validate() error {
	return validateAmount(d.Amount)
}

type WithdrawDTO struct {
	SourceAccountNumber int64           `json:"sourceAccountNumber"`
	Amount              decimal.Decimal `json:"amount"`
}

func (d WithdrawDTO) Validate() error {
	return validateAmount(d.Amount)
}

type TransferDTO struct {
	SourceAccountNumber   int64           `json:"sourceAccountNumber"`
	ReceiverAccountNumber int64           `json:"receiverAccountNumber"`
	Amount                decimal.Decimal `json:"amount"`
}

func (d TransferDTO) Validate() error {
	if err := validateAmount(d.Amount); err != nil {
		return err
	}
	if d.SourceAccountNumber == d.ReceiverAccountNumber {
		return ErrSameAccount
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Cmp(decimal.Zero) <= 0 {
		return ErrInvalidAmount
	}
	return validateMoney("amount", amount)
}

// MoneyScale and MaxMoney bound every stored money value, matching NUMERIC(19, 4)
const MoneyScale = 4

var MaxMoney = decimal.New(1, 15)

func validateMoney(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MoneyScale)) {
		return invalidArgument("%s must have at most %d decimal places", field, MoneyScale)
	}
	if v.Abs().GreaterThanOrEqual(MaxMoney) {
		return invalidArgument("%s must be below %s", field, MaxMoney)
	}
	return nil
}
