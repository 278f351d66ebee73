package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/bank-api/internal/models"
	"github.com/sheikh-saqib/bank-api/internal/options"
)

type AccountService interface {
	GetAll(ctx context.Context) ([]models.Account, error)
	GetByNumber(ctx context.Context, number int64) (*models.Account, bool, error)
	Save(ctx context.Context, dto models.AccountDTO) (*models.Account, error)
	Update(ctx context.Context, id int64, dto models.AccountDTO) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

type TransactionService interface {
	Deposit(ctx context.Context, dto models.DepositDTO) (*models.Transaction, error)
	Withdraw(ctx context.Context, dto models.WithdrawDTO) (*models.Transaction, error)
	Transfer(ctx context.Context, dto models.TransferDTO) (*models.Transaction, error)
	Find(ctx context.Context, opts *options.TransactionOptions) ([]models.Transaction, error)
}

type Config struct {
	Accounts     AccountService
	Transactions TransactionService
	Logger       *zap.Logger
}

type handler struct {
	accounts     AccountService
	transactions TransactionService
	logger       *zap.Logger
}

// NewHandler returns the router serving the REST API
func NewHandler(config Config) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{
		accounts:     config.Accounts,
		transactions: config.Transactions,
		logger:       logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/account", func(r chi.Router) {
		r.Get("/", h.listAccounts)
		r.Post("/", h.createAccount)
		r.Get("/{number}", h.getAccount)
		r.Put("/{id}", h.updateAccount)
		r.Delete("/{id}", h.deleteAccount)
	})

	r.Route("/transaction", func(r chi.Router) {
		r.Get("/", h.listTransactions)
		r.Post("/deposit", h.deposit)
		r.Post("/withdraw", h.withdraw)
		r.Post("/transfer", h.transfer)
	})

	return r
}

// NewHTTPServer wraps handler with the timeouts used in production
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
