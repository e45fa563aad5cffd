package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Targets and stats live in JSONB columns; every update is a
// single UPDATE statement, so readers always observe a committed row and
// never a half-applied patch.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, user_id, name, brief, target_limit, status, progress, targets, stats, created_at, completed_at`

// Create persists a new campaign record.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	targets, err := json.Marshal(c.Targets)
	if err != nil {
		return fmt.Errorf("marshal targets: %w", err)
	}
	var stats []byte
	if c.Stats != nil {
		if stats, err = json.Marshal(c.Stats); err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.UserID, c.Name, c.Brief, c.Limit, c.Status, c.Progress, targets, stats, c.CreatedAt, c.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID returns a campaign without owner scoping. Used only by the
// execution run, which operates by id.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

// GetByOwner returns a campaign only when userID owns it.
func (r *CampaignRepository) GetByOwner(ctx context.Context, id, userID string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 AND user_id = $2`, id, userID)
	return scanCampaign(row)
}

// ListByOwner returns up to limit campaigns for userID, newest first.
func (r *CampaignRepository) ListByOwner(ctx context.Context, userID string, limit int) ([]*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns
WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// ApplyPatch updates only the fields set on patch, in one statement.
func (r *CampaignRepository) ApplyPatch(ctx context.Context, id string, patch port.CampaignPatch) error {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	pos := 1

	if patch.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", pos))
		args = append(args, *patch.Status)
		pos++
	}
	if patch.Progress != nil {
		set = append(set, fmt.Sprintf("progress = $%d", pos))
		args = append(args, *patch.Progress)
		pos++
	}
	if patch.Targets != nil {
		raw, err := json.Marshal(patch.Targets)
		if err != nil {
			return fmt.Errorf("marshal targets: %w", err)
		}
		set = append(set, fmt.Sprintf("targets = $%d", pos))
		args = append(args, raw)
		pos++
	}
	if patch.Stats != nil {
		raw, err := json.Marshal(patch.Stats)
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		set = append(set, fmt.Sprintf("stats = $%d", pos))
		args = append(args, raw)
		pos++
	}
	if patch.CompletedAt != nil {
		set = append(set, fmt.Sprintf("completed_at = $%d", pos))
		args = append(args, *patch.CompletedAt)
		pos++
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d", strings.Join(set, ", "), pos)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply campaign patch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a campaign owned by userID.
func (r *CampaignRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanCampaign reads one campaign row, unmarshalling the JSONB columns.
func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c          domain.Campaign
		targetsRaw []byte
		statsRaw   []byte
	)
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Brief,
		&c.Limit,
		&c.Status,
		&c.Progress,
		&targetsRaw,
		&statsRaw,
		&c.CreatedAt,
		&c.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	c.Targets = []domain.Target{}
	if len(targetsRaw) > 0 {
		if err := json.Unmarshal(targetsRaw, &c.Targets); err != nil {
			return nil, fmt.Errorf("unmarshal targets: %w", err)
		}
	}
	if len(statsRaw) > 0 {
		if err := json.Unmarshal(statsRaw, &c.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
	}
	return &c, nil
}
