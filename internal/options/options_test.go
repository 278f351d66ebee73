package options

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

func TestMatch(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	deposit := &models.Transaction{
		Type:            models.TransactionDeposit,
		Amount:          decimal.NewFromInt(200),
		ReceiverAccount: &models.Account{Number: 12347},
		Timestamp:       now,
	}
	transfer := &models.Transaction{
		Type:            models.TransactionTransfer,
		Amount:          decimal.NewFromInt(50),
		SourceAccount:   &models.Account{Number: 12347},
		ReceiverAccount: &models.Account{Number: 12348},
		Timestamp:       now.Add(time.Hour),
	}

	low := decimal.NewFromInt(100)
	before := now.Add(30 * time.Minute)

	cases := map[string]struct {
		opts *TransactionOptions
		want []bool // deposit, transfer
	}{
		"nil options match all": {nil, []bool{true, true}},
		"by receiver number":    {NewTransactionOptions().SetAccountNumber(12348), []bool{false, true}},
		"by source number":      {NewTransactionOptions().SetAccountNumber(12347), []bool{true, true}},
		"by type":               {NewTransactionOptions().SetTypes(models.TransactionDeposit), []bool{true, false}},
		"by amount":             {NewTransactionOptions().SetAmountRange(&DecimalRange{Low: &low}), []bool{true, false}},
		"by time":               {NewTransactionOptions().SetTimeRange(&TimeRange{High: &before}), []bool{true, false}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want[0], tc.opts.Match(deposit))
			require.Equal(t, tc.want[1], tc.opts.Match(transfer))
		})
	}
}

func TestRangeBounds(t *testing.T) {
	r := &DecimalRange{}
	_, ok := r.From()
	require.False(t, ok)

	high := decimal.RequireFromString("10.5")
	r.High = &high
	v, ok := r.To()
	require.True(t, ok)
	require.Equal(t, "10.5", v)
	require.True(t, r.Contains(decimal.RequireFromString("10.5")))
	require.False(t, r.Contains(decimal.RequireFromString("10.51")))
}
