package domain

import "time"

// CampaignStatus enumerates the lifecycle states of a campaign. A campaign
// is created in StatusProcessing and is advanced by its execution run
// strictly forward until StatusCompleted. StatusDraft is never produced by
// the current flow but is excluded from the dashboard's active count.
type CampaignStatus string

const (
	StatusDraft         CampaignStatus = "draft"
	StatusProcessing    CampaignStatus = "processing"
	StatusFindingEmails CampaignStatus = "finding_emails"
	StatusSending       CampaignStatus = "sending"
	StatusCompleted     CampaignStatus = "completed"
)

// Campaign represents one outreach unit owned by a single user. The targets
// slice is ordered by generation order and that order is stable across
// updates. Stats is nil until the run computes the final aggregate.
type Campaign struct {
	ID          string         `json:"id"`
	UserID      string         `json:"-"`
	Name        string         `json:"name"`
	Brief       string         `json:"brief"`
	Limit       int            `json:"limit"`
	Status      CampaignStatus `json:"status"`
	Progress    int            `json:"progress"`
	Targets     []Target       `json:"targets"`
	Stats       *CampaignStats `json:"stats"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at"`
}

// IsActive reports whether the campaign counts toward the dashboard's
// active campaigns figure.
func (c *Campaign) IsActive() bool {
	return c.Status != StatusCompleted && c.Status != StatusDraft
}

// CampaignStats is the aggregate over a campaign's finalized targets.
// Positive + Negative + NoReply == Total once computed.
type CampaignStats struct {
	Total     int `json:"total"`
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Replied   int `json:"replied"`
	Positive  int `json:"positive"`
	Negative  int `json:"negative"`
	NoReply   int `json:"no_reply"`
}
