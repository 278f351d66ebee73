package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

// accountRequest uses pointers so absent fields can be told apart from zero values
type accountRequest struct {
	Name         *string          `json:"name"`
	Number       *int64           `json:"number"`
	Balance      *decimal.Decimal `json:"balance"`
	SpecialLimit *decimal.Decimal `json:"specialLimit"`
}

func (req accountRequest) dto() (models.AccountDTO, error) {
	if req.Name == nil {
		return models.AccountDTO{}, required("name")
	}
	if req.Number == nil {
		return models.AccountDTO{}, required("number")
	}

	dto := models.AccountDTO{
		Name:   *req.Name,
		Number: *req.Number,
	}
	if req.Balance != nil {
		dto.Balance = *req.Balance
	}
	if req.SpecialLimit != nil {
		dto.SpecialLimit = *req.SpecialLimit
	}
	return dto, nil
}

func (h *handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *handler) getAccount(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt(r, "number")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	account, found, err := h.accounts.GetByNumber(r.Context(), number)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !found {
		h.writeError(w, r, &models.NotFoundError{Number: number})
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	dto, err := req.dto()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	account, err := h.accounts.Save(r.Context(), dto)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req accountRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	dto, err := req.dto()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	account, err := h.accounts.Update(r.Context(), id, dto)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, models.ErrInvalidArgument)
	}
	return nil
}

func required(field string) error {
	return fmt.Errorf("%s is required: %w", field, models.ErrInvalidArgument)
}

func pathInt(r *http.Request, key string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, models.ErrInvalidArgument)
	}
	return v, nil
}
