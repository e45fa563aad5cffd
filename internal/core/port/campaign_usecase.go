package port

import (
	"context"
	"strings"

	"coldreach/internal/core/domain"
)

// CampaignLimitMax caps both the requested target count of a campaign and
// the page size of list reads.
const CampaignLimitMax = 100

// CampaignUseCase defines the business operations exposed by the campaign
// engine. This is the primary inbound port; the HTTP adapter depends on it
// and tests substitute it with fakes.
type CampaignUseCase interface {
	// Create validates the request, persists the initial record and starts
	// the detached execution run. It returns the initial snapshot without
	// awaiting the run.
	Create(ctx context.Context, userID string, req CreateCampaignRequest) (*domain.Campaign, error)
	// Get returns the latest committed snapshot of one campaign.
	Get(ctx context.Context, userID, id string) (*domain.Campaign, error)
	// List returns the owner's campaigns newest first, capped at
	// CampaignLimitMax entries.
	List(ctx context.Context, userID string, limit int) ([]*domain.Campaign, error)
	// Delete removes a campaign. An in-flight run observes the deletion at
	// its next write and aborts quietly.
	Delete(ctx context.Context, userID, id string) error
	// Dashboard aggregates stats across all of the owner's campaigns.
	Dashboard(ctx context.Context, userID string) (*DashboardStats, error)
}

// CreateCampaignRequest is the canonical campaign creation shape.
type CreateCampaignRequest struct {
	Name  string `json:"name"`
	Brief string `json:"brief"`
	Limit int    `json:"limit"`
}

// Validate checks the request fields before any state is created.
func (r *CreateCampaignRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Detail: "name is required"}
	}
	if strings.TrimSpace(r.Brief) == "" {
		return &domain.ValidationError{Detail: "brief is required"}
	}
	if r.Limit < 1 || r.Limit > CampaignLimitMax {
		return &domain.ValidationError{Detail: "limit must be between 1 and 100"}
	}
	return nil
}

// DashboardStats sums campaign stats across one user's campaigns.
// ResponseRate is (positive+negative)/sent as a percentage rounded to one
// decimal place, 0 when nothing has been sent.
type DashboardStats struct {
	TotalCampaigns  int     `json:"total_campaigns"`
	ActiveCampaigns int     `json:"active_campaigns"`
	TotalEmailsSent int     `json:"total_emails_sent"`
	TotalPositive   int     `json:"total_positive"`
	TotalNegative   int     `json:"total_negative"`
	TotalNoReply    int     `json:"total_no_reply"`
	ResponseRate    float64 `json:"response_rate"`
}

// Sampler draws one pseudo-random value in [0,1). It is the single source
// of nondeterminism in the run and is injected so tests can force outcome
// distributions.
type Sampler func() float64
