package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement a Transaction records
type TransactionType string

const (
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionWithdraw TransactionType = "WITHDRAW"
	TransactionTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdraw, TransactionTransfer:
		return true
	}
	return false
}

// Transaction is an append-only ledger entry for one completed operation.
// SourceAccount is set for WITHDRAW and TRANSFER, ReceiverAccount for DEPOSIT and TRANSFER.
type Transaction struct {
	ID              string          `json:"id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	SourceAccount   *Account        `json:"sourceAccount"`
	ReceiverAccount *Account        `json:"receiverAccount"`
	Timestamp       time.Time       `json:"timestamp"`
}

// Validate checks that the account references match the transaction type
func (t *Transaction) Validate() error {
	if t.Amount.Cmp(decimal.Zero) <= 0 {
		return ErrInvalidAmount
	}

	var wantSource, wantReceiver bool
	switch t.Type {
	case TransactionDeposit:
		wantReceiver = true
	case TransactionWithdraw:
		wantSource = true
	case TransactionTransfer:
		wantSource, wantReceiver = true, true
	default:
		return invalidArgument("unknown transaction type %q", t.Type)
	}

	if (t.SourceAccount != nil) != wantSource {
		return invalidArgument("%s transaction: unexpected source account", t.Type)
	}
	if (t.ReceiverAccount != nil) != wantReceiver {
		return invalidArgument("%s transaction: unexpected receiver account", t.Type)
	}
	return nil
}
