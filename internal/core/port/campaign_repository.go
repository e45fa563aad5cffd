package port

import (
	"context"
	"time"

	"coldreach/internal/core/domain"
)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. ApplyPatch must behave as a
// single atomic write: a concurrent reader observes either the row before
// or after the patch, never a half-applied combination.
type CampaignRepository interface {
	// Create persists a new campaign record.
	Create(ctx context.Context, campaign *domain.Campaign) error
	// GetByID returns a campaign regardless of owner. It exists for the
	// execution run, which was started by an already-authorized create.
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	// GetByOwner returns a campaign only when it belongs to userID.
	// domain.ErrNotFound covers both unknown and not-owned ids.
	GetByOwner(ctx context.Context, id, userID string) (*domain.Campaign, error)
	// ListByOwner returns up to limit campaigns for userID, newest first.
	ListByOwner(ctx context.Context, userID string, limit int) ([]*domain.Campaign, error)
	// ApplyPatch updates only the fields set on patch. It returns
	// domain.ErrNotFound when the campaign has been deleted.
	ApplyPatch(ctx context.Context, id string, patch CampaignPatch) error
	// Delete removes a campaign owned by userID.
	Delete(ctx context.Context, id, userID string) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns domain.ErrNotFound for unknown addresses.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CampaignPatch names the campaign fields an update touches. Nil fields are
// left untouched; a non-nil Targets slice replaces the stored sequence.
type CampaignPatch struct {
	Status      *domain.CampaignStatus
	Progress    *int
	Targets     []domain.Target
	Stats       *domain.CampaignStats
	CompletedAt *time.Time
}
