package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/options"
)

type transactionRequest struct {
	SourceAccountNumber   *int64           `json:"sourceAccountNumber"`
	ReceiverAccountNumber *int64           `json:"receiverAccountNumber"`
	Amount                *decimal.Decimal `json:"amount"`
}

func (req transactionRequest) require(source, receiver bool) error {
	if source && req.SourceAccountNumber == nil {
		return required("sourceAccountNumber")
	}
	if receiver && req.ReceiverAccountNumber == nil {
		return required("receiverAccountNumber")
	}
	if req.Amount == nil {
		return required("amount")
	}
	return nil
}

func (h *handler) decodeTransaction(r *http.Request, source, receiver bool) (transactionRequest, error) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		return req, err
	}
	return req, req.require(source, receiver)
}

func (h *handler) deposit(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeTransaction(r, false, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tx, err := h.transactions.Deposit(r.Context(), models.DepositDTO{
		ReceiverAccountNumber: *req.ReceiverAccountNumber,
		Amount:                *req.Amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *handler) withdraw(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeTransaction(r, true, false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tx, err := h.transactions.Withdraw(r.Context(), models.WithdrawDTO{
		SourceAccountNumber: *req.SourceAccountNumber,
		Amount:              *req.Amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *handler) transfer(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeTransaction(r, true, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tx, err := h.transactions.Transfer(r.Context(), models.TransferDTO{
		SourceAccountNumber:   *req.SourceAccountNumber,
		ReceiverAccountNumber: *req.ReceiverAccountNumber,
		Amount:                *req.Amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// listTransactions supports accountNumber, type (repeated or comma separated),
// minAmount, maxAmount and RFC 3339 from/to query parameters
func (h *handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	opts, err := parseTransactionOptions(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	transactions, err := h.transactions.Find(r.Context(), opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

func parseTransactionOptions(query url.Values) (*options.TransactionOptions, error) {
	opts := options.NewTransactionOptions()

	if v := query.Get("accountNumber"); v != "" {
		number, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, invalidQuery("accountNumber", v)
		}
		opts.SetAccountNumber(number)
	}

	var types []models.TransactionType
	for _, v := range query["type"] {
		for _, each := range strings.Split(v, ",") {
			t := models.TransactionType(strings.ToUpper(strings.TrimSpace(each)))
			if !t.Valid() {
				return nil, invalidQuery("type", each)
			}
			types = append(types, t)
		}
	}
	if len(types) > 0 {
		opts.SetTypes(types...)
	}

	var amount options.DecimalRange
	for key, bound := range map[string]**decimal.Decimal{"minAmount": &amount.Low, "maxAmount": &amount.High} {
		if v := query.Get(key); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, invalidQuery(key, v)
			}
			*bound = &d
		}
	}
	if amount.Low != nil || amount.High != nil {
		opts.SetAmountRange(&amount)
	}

	var timestamp options.TimeRange
	for key, bound := range map[string]**time.Time{"from": &timestamp.Low, "to": &timestamp.High} {
		if v := query.Get(key); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, invalidQuery(key, v)
			}
			*bound = &t
		}
	}
	if timestamp.Low != nil || timestamp.High != nil {
		opts.SetTimeRange(&timestamp)
	}

	return opts, nil
}

func invalidQuery(key, value string) error {
	return fmt.Errorf("invalid %s %q: %w", key, value, models.ErrInvalidArgument)
}
