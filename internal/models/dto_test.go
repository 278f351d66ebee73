package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAmountValidation(t *testing.T) {
	cases := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"whole amount", "200", false},
		{"four decimal places", "0.0001", false},
		{"trailing zeros beyond scale", "1.50000", false},
		{"zero", "0", true},
		{"negative", "-1", true},
		{"rounds up at scale", "0.00005", true},
		{"rounds to zero at scale", "0.00001", true},
		{"largest storable", "999999999999999.9999", false},
		{"too large", "1000000000000000", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			dtos := []interface{ Validate() error }{
				DepositDTO{ReceiverAccountNumber: 1, Amount: amount},
				WithdrawDTO{SourceAccountNumber: 1, Amount: amount},
				TransferDTO{SourceAccountNumber: 1, ReceiverAccountNumber: 2, Amount: amount},
			}
			for _, dto := range dtos {
				err := dto.Validate()
				if tc.wantErr {
					require.ErrorIs(t, err, ErrInvalidArgument)
				} else {
					require.NoError(t, err)
				}
			}
		})
	}
}

func TestAccountDTOValidation(t *testing.T) {
	cases := []struct {
		name    string
		dto     AccountDTO
		wantErr bool
	}{
		{"valid", AccountDTO{Name: "John", Number: 1, SpecialLimit: decimal.RequireFromString("100.25")}, false},
		{"blank name", AccountDTO{Name: "  ", Number: 1}, true},
		{"negative limit", AccountDTO{Name: "John", Number: 1, SpecialLimit: decimal.NewFromInt(-1)}, true},
		{"limit beyond scale", AccountDTO{Name: "John", Number: 1, SpecialLimit: decimal.RequireFromString("0.00005")}, true},
		{"limit too large", AccountDTO{Name: "John", Number: 1, SpecialLimit: decimal.New(1, 15)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.dto.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
