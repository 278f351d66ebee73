package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/models/events"
)

func TestNewMessage(t *testing.T) {
	event := events.NewTransactionCompleted(&models.Transaction{
		ID:              "8b0e6c1e-0d4e-4f43-9a43-3b4c5b2e9d10",
		Type:            models.TransactionDeposit,
		Amount:          decimal.RequireFromString("150.85"),
		ReceiverAccount: &models.Account{ID: 1, Number: 12345},
		Timestamp:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	msg, err := newMessage(events.TransactionCompletedTopic, event)
	require.NoError(t, err)
	require.Equal(t, events.TransactionCompletedTopic, msg.Topic)
	require.Equal(t, "8b0e6c1e-0d4e-4f43-9a43-3b4c5b2e9d10", string(msg.Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, "DEPOSIT", decoded["type"])
	require.EqualValues(t, 12345, decoded["receiver_account_number"])
	require.NotContains(t, decoded, "source_account_number")
	require.EqualValues(t, 150.85, decoded["amount"])
}

func TestNewMessageWithoutKey(t *testing.T) {
	msg, err := newMessage("other", map[string]int{"a": 1})
	require.NoError(t, err)
	require.Nil(t, msg.Key)
	require.JSONEq(t, `{"a":1}`, string(msg.Value))
}

func TestNewMessageEncodingError(t *testing.T) {
	_, err := newMessage("other", make(chan int))
	require.Error(t, err)
}
