package usecase

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seqSampler returns the given values in order, cycling when exhausted.
// Safe for concurrent draws.
func seqSampler(vals ...float64) port.Sampler {
	var (
		mu sync.Mutex
		i  int
	)
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		v := vals[i%len(vals)]
		i++
		return v
	}
}

// memCampaignRepo is an in-memory port.CampaignRepository. It deep-copies
// on every read and write so stored snapshots never alias caller memory,
// and it records every successful patch for assertions. patchHook, when
// set, runs before each patch with the repo lock held; it may inject
// failures or mutate the campaigns map directly.
type memCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	patches   []port.CampaignPatch
	patchHook func(applied int, patch port.CampaignPatch) error
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{campaigns: make(map[string]*domain.Campaign)}
}

func (m *memCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns[c.ID] = cloneCampaign(c)
	return nil
}

func (m *memCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneCampaign(c), nil
}

func (m *memCampaignRepo) GetByOwner(ctx context.Context, id, userID string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return cloneCampaign(c), nil
}

func (m *memCampaignRepo) ListByOwner(ctx context.Context, userID string, limit int) ([]*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Campaign{}
	for _, c := range m.campaigns {
		if c.UserID == userID {
			out = append(out, cloneCampaign(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCampaignRepo) ApplyPatch(ctx context.Context, id string, patch port.CampaignPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.patchHook != nil {
		if err := m.patchHook(len(m.patches), patch); err != nil {
			return err
		}
	}
	c, ok := m.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Progress != nil {
		c.Progress = *patch.Progress
	}
	if patch.Targets != nil {
		c.Targets = cloneTargets(patch.Targets)
	}
	if patch.Stats != nil {
		stats := *patch.Stats
		c.Stats = &stats
	}
	if patch.CompletedAt != nil {
		completedAt := *patch.CompletedAt
		c.CompletedAt = &completedAt
	}
	recorded := patch
	recorded.Targets = cloneTargets(patch.Targets)
	m.patches = append(m.patches, recorded)
	return nil
}

func (m *memCampaignRepo) Delete(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.campaigns, id)
	return nil
}

// Patches returns a copy of every successfully applied patch, in order.
func (m *memCampaignRepo) Patches() []port.CampaignPatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]port.CampaignPatch, len(m.patches))
	copy(out, m.patches)
	return out
}

func (m *memCampaignRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.campaigns)
}

func cloneCampaign(c *domain.Campaign) *domain.Campaign {
	cp := *c
	cp.Targets = cloneTargets(c.Targets)
	if c.Stats != nil {
		stats := *c.Stats
		cp.Stats = &stats
	}
	if c.CompletedAt != nil {
		completedAt := *c.CompletedAt
		cp.CompletedAt = &completedAt
	}
	return &cp
}

func cloneTargets(targets []domain.Target) []domain.Target {
	if targets == nil {
		return nil
	}
	out := make([]domain.Target, len(targets))
	for i, t := range targets {
		out[i] = t
		if t.ResponseCategory != nil {
			category := *t.ResponseCategory
			out[i].ResponseCategory = &category
		}
		if t.SentAt != nil {
			sentAt := *t.SentAt
			out[i].SentAt = &sentAt
		}
		if t.RepliedAt != nil {
			repliedAt := *t.RepliedAt
			out[i].RepliedAt = &repliedAt
		}
	}
	return out
}

// memUserRepo is an in-memory port.UserRepository. Create enforces email
// uniqueness like the real table; createHook, when set, runs first and may
// inject failures.
type memUserRepo struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	createHook func(u *domain.User) error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createHook != nil {
		if err := m.createHook(u); err != nil {
			return err
		}
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return &domain.ConflictError{Detail: "Email already registered"}
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}
