package httpadapter

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"coldreach/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the campaign and auth usecases and a logger for structured
// logging. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	campaigns port.CampaignUseCase
	auth      port.AuthUseCase
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured. The returned
// Handler registers handlers for each endpoint on a new chi.Router; routes
// past the auth endpoints require a valid bearer token.
func NewHandler(campaigns port.CampaignUseCase, auth port.AuthUseCase, logger *slog.Logger) *Handler {
	h := &Handler{campaigns: campaigns, auth: auth, logger: logger}
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.handleRoot)
		r.Get("/health", h.handleHealth)
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Get("/auth/me", h.handleMe)
			r.Post("/campaigns", h.handleCreateCampaign)
			r.Get("/campaigns", h.handleListCampaigns)
			r.Get("/campaigns/{id}", h.handleGetCampaign)
			r.Delete("/campaigns/{id}", h.handleDeleteCampaign)
			r.Get("/dashboard/stats", h.handleDashboard)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Outreach Campaign API",
		"status":  "running",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
