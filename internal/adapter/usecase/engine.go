package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

// Progress checkpoints of the run. Discovery starts at 10, committed
// targets land at 30, sending interpolates linearly up to 80, completion
// forces 100.
const (
	progressDiscovery  = 10
	progressTargets    = 30
	progressSendFinish = 80
)

// Outcome thresholds for the single sampler draw per target.
const (
	thresholdPositive = 0.25
	thresholdNegative = 0.40
)

// Delays are the pauses between run phases. They simulate asynchronous
// external work and are a policy knob: tests compress them to zero without
// affecting phase order or checkpoint monotonicity.
type Delays struct {
	Find    time.Duration
	Commit  time.Duration
	Send    time.Duration
	Resolve time.Duration
}

// Engine drives a campaign through its phases, flushing partial snapshots
// to the store as it goes. One engine instance serves every campaign; each
// Run call is bound to a single campaign id.
type Engine struct {
	repo   port.CampaignRepository
	logger *slog.Logger
	delays Delays
	sample port.Sampler
	now    func() time.Time
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithSampler replaces the outcome sampler. Tests use it to force
// deterministic reply distributions.
func WithSampler(s port.Sampler) EngineOption {
	return func(e *Engine) { e.sample = s }
}

// WithClock replaces the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an execution engine writing through repo. The default
// sampler draws from the package-level rand source, which is safe when
// several runs resolve outcomes at the same time.
func NewEngine(repo port.CampaignRepository, logger *slog.Logger, delays Delays, opts ...EngineOption) *Engine {
	e := &Engine{
		repo:   repo,
		logger: logger,
		delays: delays,
		sample: rand.Float64,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the full phase sequence for one campaign. It is started
// detached and never reports errors to a caller: a failed store write
// aborts the remainder of the run and leaves the last persisted snapshot
// standing. Deletion of the campaign mid-run surfaces as ErrNotFound on the
// next write and is treated the same way.
func (e *Engine) Run(ctx context.Context, campaignID string) {
	log := e.logger.With(slog.String("campaign_id", campaignID))

	campaign, err := e.repo.GetByID(ctx, campaignID)
	if err != nil {
		e.abort(log, "load campaign", err)
		return
	}

	// Phase 1: discovery.
	if !e.patch(ctx, log, campaignID, port.CampaignPatch{
		Status:   status(domain.StatusFindingEmails),
		Progress: progress(progressDiscovery),
	}) {
		return
	}
	if !e.pause(ctx, e.delays.Find) {
		return
	}

	targets := GenerateTargets(campaign.Limit)
	if !e.patch(ctx, log, campaignID, port.CampaignPatch{
		Targets:  targets,
		Progress: progress(progressTargets),
	}) {
		return
	}
	if !e.pause(ctx, e.delays.Commit) {
		return
	}

	// Phase 2: sending, one flush per target so readers observe partial
	// completion.
	if !e.patch(ctx, log, campaignID, port.CampaignPatch{
		Status: status(domain.StatusSending),
	}) {
		return
	}
	span := progressSendFinish - progressTargets
	for i := range targets {
		if !e.pause(ctx, e.delays.Send) {
			return
		}
		sentAt := e.now().UTC()
		targets[i].Status = domain.TargetSent
		targets[i].SentAt = &sentAt
		if !e.patch(ctx, log, campaignID, port.CampaignPatch{
			Targets:  targets,
			Progress: progress(progressTargets + (i+1)*span/len(targets)),
		}) {
			return
		}
	}

	// Phase 3: resolve outcomes, one sampler draw per target.
	if !e.pause(ctx, e.delays.Resolve) {
		return
	}
	for i := range targets {
		v := e.sample()
		switch {
		case v < thresholdPositive:
			repliedAt := e.now().UTC()
			targets[i].Status = domain.TargetReplied
			targets[i].ResponseCategory = category(domain.ResponsePositive)
			targets[i].RepliedAt = &repliedAt
		case v < thresholdNegative:
			repliedAt := e.now().UTC()
			targets[i].Status = domain.TargetReplied
			targets[i].ResponseCategory = category(domain.ResponseNegative)
			targets[i].RepliedAt = &repliedAt
		default:
			targets[i].Status = domain.TargetDelivered
			targets[i].ResponseCategory = category(domain.ResponseNoReply)
		}
	}

	stats := AggregateStats(targets)
	completedAt := e.now().UTC()
	if !e.patch(ctx, log, campaignID, port.CampaignPatch{
		Targets:     targets,
		Stats:       &stats,
		Status:      status(domain.StatusCompleted),
		Progress:    progress(100),
		CompletedAt: &completedAt,
	}) {
		return
	}
	log.Info("campaign run completed", slog.Int("targets", len(targets)))
}

// patch flushes one partial update and reports whether the run may
// continue.
func (e *Engine) patch(ctx context.Context, log *slog.Logger, id string, p port.CampaignPatch) bool {
	if err := e.repo.ApplyPatch(ctx, id, p); err != nil {
		e.abort(log, "flush snapshot", err)
		return false
	}
	return true
}

func (e *Engine) abort(log *slog.Logger, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("campaign deleted mid-run, abandoning", slog.String("op", op))
		return
	}
	log.Warn("campaign run aborted", slog.String("op", op), slog.Any("error", err))
}

// pause sleeps for d unless the run context is cancelled first.
func (e *Engine) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func status(s domain.CampaignStatus) *domain.CampaignStatus { return &s }

func progress(p int) *int { return &p }

func category(c domain.ResponseCategory) *domain.ResponseCategory { return &c }
