package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

// TransactionCompletedTopic is the default topic completed transactions are published to
const TransactionCompletedTopic = "transaction_completed"

type TransactionCompleted struct {
	TransactionID         string                 `json:"transaction_id"`
	Type                  models.TransactionType `json:"type"`
	SourceAccountNumber   *int64                 `json:"source_account_number,omitempty"`
	ReceiverAccountNumber *int64                 `json:"receiver_account_number,omitempty"`
	Amount                decimal.Decimal        `json:"amount"`
	OccurredAt            time.Time              `json:"occurred_at"`
}

// NewTransactionCompleted builds the event for a committed transaction
func NewTransactionCompleted(tx *models.Transaction) TransactionCompleted {
	event := TransactionCompleted{
		TransactionID: tx.ID,
		Type:          tx.Type,
		Amount:        tx.Amount,
		OccurredAt:    tx.Timestamp,
	}
	if tx.SourceAccount != nil {
		n := tx.SourceAccount.Number
		event.SourceAccountNumber = &n
	}
	if tx.ReceiverAccount != nil {
		n := tx.ReceiverAccount.Number
		event.ReceiverAccountNumber = &n
	}
	return event
}

// Key partitions events by transaction
func (e TransactionCompleted) Key() string {
	return e.TransactionID
}
