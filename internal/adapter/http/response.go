package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"coldreach/internal/core/domain"
)

// detailResponse is the uniform error envelope of the API.
type detailResponse struct {
	Detail string `json:"detail"`
}

// writeJSON encodes v with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeDetail writes the {detail} error envelope.
func (h *Handler) writeDetail(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, detailResponse{Detail: detail})
}

// writeError maps usecase errors onto HTTP status codes. Typed errors keep
// their status even when wrapped; unrecognized errors are logged and
// surfaced as a generic 500 so no internals leak.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		h.writeDetail(w, http.StatusUnprocessableEntity, validationErr.Detail)
	case errors.As(err, &authErr):
		h.writeDetail(w, http.StatusUnauthorized, authErr.Detail)
	case errors.As(err, &notFoundErr):
		h.writeDetail(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		h.writeDetail(w, http.StatusBadRequest, conflictErr.Detail)
	default:
		h.logger.Error("unhandled error", slog.Any("error", err))
		h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
