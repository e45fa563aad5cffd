package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

// dashboardScanLimit bounds how many campaigns the dashboard aggregate
// reads per user.
const dashboardScanLimit = 1000

// CampaignUseCase implements port.CampaignUseCase. It owns campaign CRUD
// and starts one detached execution run per successful create.
type CampaignUseCase struct {
	repo   port.CampaignRepository
	engine *Engine
	runs   *Registry
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewCampaignUseCase wires the usecase with its store, engine and run
// registry. All dependencies are passed in explicitly so tests can build
// isolated instances.
func NewCampaignUseCase(repo port.CampaignRepository, engine *Engine, runs *Registry, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{
		repo:   repo,
		engine: engine,
		runs:   runs,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create persists the initial processing snapshot and starts the run. The
// run is merely started, never awaited; the caller gets the initial record
// back immediately.
func (u *CampaignUseCase) Create(ctx context.Context, userID string, req port.CreateCampaignRequest) (*domain.Campaign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	campaign := &domain.Campaign{
		ID:        u.newID(),
		UserID:    userID,
		Name:      req.Name,
		Brief:     req.Brief,
		Limit:     req.Limit,
		Status:    domain.StatusProcessing,
		Progress:  0,
		Targets:   []domain.Target{},
		CreatedAt: u.now().UTC(),
	}
	if err := u.repo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	if _, ok := u.runs.Start(campaign.ID, func(runCtx context.Context) {
		u.engine.Run(runCtx, campaign.ID)
	}); !ok {
		// ids are unique per create, so this only happens during shutdown
		u.logger.Warn("campaign run not started", slog.String("campaign_id", campaign.ID))
	}
	return campaign, nil
}

// Get returns one campaign scoped to its owner.
func (u *CampaignUseCase) Get(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	campaign, err := u.repo.GetByOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "Campaign"}
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return campaign, nil
}

// List returns the owner's campaigns newest first. Non-positive or
// oversized limits collapse to the cap.
func (u *CampaignUseCase) List(ctx context.Context, userID string, limit int) ([]*domain.Campaign, error) {
	if limit <= 0 || limit > port.CampaignLimitMax {
		limit = port.CampaignLimitMax
	}
	campaigns, err := u.repo.ListByOwner(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// Delete removes a campaign. An active run is not interrupted here; it
// notices the missing record at its next flush and abandons itself.
func (u *CampaignUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Resource: "Campaign"}
		}
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

// Dashboard aggregates stats across all of the owner's campaigns.
func (u *CampaignUseCase) Dashboard(ctx context.Context, userID string) (*port.DashboardStats, error) {
	campaigns, err := u.repo.ListByOwner(ctx, userID, dashboardScanLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return AggregateDashboard(campaigns), nil
}
