package options

import "github.com/sheikh-saqib/bank-api/internal/models"

// TransactionOptions represent options that can be used to configure a Find operation.
// A nil *TransactionOptions matches every transaction.
type TransactionOptions struct {
	// filters transactions where this account number is the source or the receiver
	AccountNumber *int64
	// filters transactions that match any type in this slice
	Types []models.TransactionType
	// filters transactions that have an amount in this range (inclusive)
	Amount *DecimalRange
	// filters transactions that were created in this range (inclusive)
	Timestamp *TimeRange
}

func NewTransactionOptions() *TransactionOptions {
	return &TransactionOptions{}
}

func (o *TransactionOptions) SetAccountNumber(v int64) *TransactionOptions {
	o.AccountNumber = &v
	return o
}

func (o *TransactionOptions) SetTypes(v ...models.TransactionType) *TransactionOptions {
	o.Types = v
	return o
}

func (o *TransactionOptions) SetAmountRange(v *DecimalRange) *TransactionOptions {
	o.Amount = v
	return o
}

func (o *TransactionOptions) SetTimeRange(v *TimeRange) *TransactionOptions {
	o.Timestamp = v
	return o
}

// Match reports whether tx satisfies every filter that is set
func (o *TransactionOptions) Match(tx *models.Transaction) bool {
	if o == nil {
		return true
	}
	if o.AccountNumber != nil && !involves(tx, *o.AccountNumber) {
		return false
	}
	if len(o.Types) > 0 {
		found := false
		for _, t := range o.Types {
			if t == tx.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if o.Amount != nil && !o.Amount.Contains(tx.Amount) {
		return false
	}
	if o.Timestamp != nil && !o.Timestamp.Contains(tx.Timestamp) {
		return false
	}
	return true
}

func involves(tx *models.Transaction, number int64) bool {
	return (tx.SourceAccount != nil && tx.SourceAccount.Number == number) ||
		(tx.ReceiverAccount != nil && tx.ReceiverAccount.Number == number)
}
