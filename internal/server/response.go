package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/bank-api/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to a status code with a plain text body
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, message(err), status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrWithoutBalance):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateNumber):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// message prefers the typed domain error text over the wrapped context
func message(err error) string {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}
	var withoutBalance *models.WithoutBalanceError
	if errors.As(err, &withoutBalance) {
		return withoutBalance.Error()
	}
	return err.Error()
}
