package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

type contextKey struct{ name string }

var userContextKey = &contextKey{"user"}

// requireUser authenticates the bearer token and injects the resolved user
// into the request context. Requests without a valid token get 401.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		user, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			h.writeError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user placed by requireUser.
func userFrom(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

// handleRegister creates an account and returns a session token.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req port.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	session, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}

// handleLogin verifies credentials and returns a session token.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req port.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	session, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}

// handleMe returns the authenticated user.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, userFrom(r))
}
