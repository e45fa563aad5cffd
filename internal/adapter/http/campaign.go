package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"coldreach/internal/core/port"
)

// handleCreateCampaign validates the payload, persists the initial record
// and starts the detached run. The response is the initial snapshot; the
// client polls for progress afterwards.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req port.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	campaign, err := h.campaigns.Create(r.Context(), userFrom(r).ID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaign)
}

// handleListCampaigns returns the caller's campaigns, newest first. The
// optional limit query parameter caps the page size.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeDetail(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}
	campaigns, err := h.campaigns.List(r.Context(), userFrom(r).ID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaigns)
}

// handleGetCampaign returns the latest committed snapshot of one campaign.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.campaigns.Get(r.Context(), userFrom(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaign)
}

// handleDeleteCampaign removes a campaign. An in-flight run aborts itself
// at its next store write.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.Delete(r.Context(), userFrom(r).ID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted"})
}

// handleDashboard returns cross-campaign aggregate stats for the caller.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.campaigns.Dashboard(r.Context(), userFrom(r).ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
