package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/service"
	"github.com/sheikh-saqib/bank-api/internal/storage/memory"
)

func TestServer(t *testing.T) {
	suite.Run(t, &Suite{})
}

type Suite struct {
	suite.Suite
	*require.Assertions
	handler http.Handler
	lauro   *models.Account
	pedro   *models.Account
}

func (s *Suite) SetupTest() {
	s.Assertions = require.New(s.T())

	store := memory.NewMemoryStore()
	s.handler = NewHandler(Config{
		Accounts:     service.NewAccountService(store, nil),
		Transactions: service.NewTransactionService(service.Config{Store: store}),
	})

	var err error
	s.lauro, err = store.Accounts().Save(context.Background(), &models.Account{Name: "Lauro Lima", Number: 12347, Balance: decimal.NewFromInt(1000)})
	s.NoError(err)
	s.pedro, err = store.Accounts().Save(context.Background(), &models.Account{Name: "Pedro Pina", Number: 12348, Balance: decimal.NewFromInt(1000)})
	s.NoError(err)
}

func (s *Suite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *Suite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *Suite) requirePlainError(rec *httptest.ResponseRecorder, status int) {
	s.Equal(status, rec.Code)
	s.Equal("text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func (s *Suite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *Suite) TestListAccounts() {
	rec := s.do(http.MethodGet, "/account", "")
	s.Equal(http.StatusOK, rec.Code)

	var accounts []map[string]any
	s.decode(rec, &accounts)
	s.Len(accounts, 2)
	s.EqualValues(12347, accounts[0]["number"])
	s.EqualValues(1000, accounts[0]["balance"])
}

func (s *Suite) TestGetAccount() {
	rec := s.do(http.MethodGet, "/account/12347", "")
	s.Equal(http.StatusOK, rec.Code)

	var account map[string]any
	s.decode(rec, &account)
	s.Equal("Lauro Lima", account["name"])
	s.Contains(account, "specialLimit")

	rec = s.do(http.MethodGet, "/account/-99999", "")
	s.requirePlainError(rec, http.StatusNotFound)
	s.Contains(rec.Body.String(), "account -99999 does not exist")

	rec = s.do(http.MethodGet, "/account/abc", "")
	s.requirePlainError(rec, http.StatusBadRequest)
}

func (s *Suite) TestCreateAccount() {
	rec := s.do(http.MethodPost, "/account", `{
		"name": "Marcos Muller",
		"number": 12349,
		"balance": 500,
		"specialLimit": 0
	}`)
	s.Equal(http.StatusCreated, rec.Code)

	var account map[string]any
	s.decode(rec, &account)
	s.NotZero(account["id"])
	s.EqualValues(0, account["balance"])

	s.requirePlainError(s.do(http.MethodPost, "/account", `{}`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPost, "/account", `not json`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPost, "/account", `{"name": "Copy", "number": 12347}`), http.StatusConflict)
	s.requirePlainError(s.do(http.MethodPost, "/account", `{"name": "Neg", "number": 1, "specialLimit": -1}`), http.StatusBadRequest)
}

func (s *Suite) TestUpdateAccount() {
	target := "/account/" + strconv.FormatInt(s.lauro.ID, 10)
	rec := s.do(http.MethodPut, target, `{
		"name": "Marcos Muller Moura",
		"number": 12349,
		"balance": 5,
		"specialLimit": 100
	}`)
	s.Equal(http.StatusOK, rec.Code)

	var account map[string]any
	s.decode(rec, &account)
	s.Equal("Marcos Muller Moura", account["name"])
	s.EqualValues(12349, account["number"])
	s.EqualValues(1000, account["balance"])
	s.EqualValues(100, account["specialLimit"])

	s.requirePlainError(s.do(http.MethodPut, target, `{}`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPut, "/account/-99", `{"name": "X", "number": 1}`), http.StatusNotFound)
}

func (s *Suite) TestDeleteAccount() {
	target := "/account/" + strconv.FormatInt(s.pedro.ID, 10)

	rec := s.do(http.MethodDelete, target, "")
	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())

	s.requirePlainError(s.do(http.MethodDelete, target, ""), http.StatusNotFound)
}

func (s *Suite) TestDeposit() {
	rec := s.do(http.MethodPost, "/transaction/deposit", `{"receiverAccountNumber": 12347, "amount": 200}`)
	s.Equal(http.StatusCreated, rec.Code)

	var tx map[string]any
	s.decode(rec, &tx)
	s.Equal("DEPOSIT", tx["type"])
	s.EqualValues(200, tx["amount"])
	s.Nil(tx["sourceAccount"])
	receiver := tx["receiverAccount"].(map[string]any)
	s.EqualValues(12347, receiver["number"])
	s.EqualValues(1200, receiver["balance"])

	s.requirePlainError(s.do(http.MethodPost, "/transaction/deposit", `{}`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPost, "/transaction/deposit", `{"receiverAccountNumber": 54321, "amount": 1}`), http.StatusNotFound)
	s.requirePlainError(s.do(http.MethodPost, "/transaction/deposit", `{"receiverAccountNumber": 12347, "amount": 0}`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPost, "/transaction/deposit", `{"receiverAccountNumber": 12347, "amount": 0.00005}`), http.StatusBadRequest)
}

func (s *Suite) TestWithdraw() {
	rec := s.do(http.MethodPost, "/transaction/withdraw", `{"sourceAccountNumber": 12347, "amount": 200}`)
	s.Equal(http.StatusCreated, rec.Code)

	var tx map[string]any
	s.decode(rec, &tx)
	source := tx["sourceAccount"].(map[string]any)
	s.EqualValues(12347, source["number"])
	s.EqualValues(800, source["balance"])
	s.EqualValues(200, tx["amount"])

	s.requirePlainError(s.do(http.MethodPost, "/transaction/withdraw", `{}`), http.StatusBadRequest)

	rec = s.do(http.MethodPost, "/transaction/withdraw", `{"sourceAccountNumber": 12347, "amount": 200000}`)
	s.requirePlainError(rec, http.StatusBadRequest)
	s.Contains(rec.Body.String(), "insufficient balance")
}

func (s *Suite) TestTransfer() {
	rec := s.do(http.MethodPost, "/transaction/transfer", `{
		"sourceAccountNumber": 12347,
		"receiverAccountNumber": 12348,
		"amount": 200
	}`)
	s.Equal(http.StatusCreated, rec.Code)

	var tx map[string]any
	s.decode(rec, &tx)
	s.EqualValues(12347, tx["sourceAccount"].(map[string]any)["number"])
	s.EqualValues(12348, tx["receiverAccount"].(map[string]any)["number"])
	s.EqualValues(200, tx["amount"])

	s.requirePlainError(s.do(http.MethodPost, "/transaction/transfer",
		`{"sourceAccountNumber": 12347, "receiverAccountNumber": 12348, "amount": 200000}`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPost, "/transaction/transfer",
		`{"sourceAccountNumber": 12347, "amount": 1}`), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodPost, "/transaction/transfer",
		`{"sourceAccountNumber": 12347, "receiverAccountNumber": 12347, "amount": 1}`), http.StatusBadRequest)
}

func (s *Suite) TestListTransactions() {
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/transaction/deposit", `{"receiverAccountNumber": 12347, "amount": 10}`).Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/transaction/withdraw", `{"sourceAccountNumber": 12348, "amount": 20}`).Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/transaction/transfer",
		`{"sourceAccountNumber": 12348, "receiverAccountNumber": 12347, "amount": 30}`).Code)

	var all []map[string]any
	s.decode(s.do(http.MethodGet, "/transaction", ""), &all)
	s.Len(all, 3)

	var lauro []map[string]any
	s.decode(s.do(http.MethodGet, "/transaction?accountNumber=12347", ""), &lauro)
	s.Len(lauro, 2)

	var filtered []map[string]any
	s.decode(s.do(http.MethodGet, "/transaction?type=withdraw,transfer&minAmount=25", ""), &filtered)
	s.Len(filtered, 1)
	s.Equal("TRANSFER", filtered[0]["type"])

	s.requirePlainError(s.do(http.MethodGet, "/transaction?type=refund", ""), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodGet, "/transaction?from=yesterday", ""), http.StatusBadRequest)
	s.requirePlainError(s.do(http.MethodGet, "/transaction?accountNumber=x", ""), http.StatusBadRequest)
}
