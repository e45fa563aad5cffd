package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"coldreach/internal/adapter/usecase"
	"coldreach/internal/core/domain"
)

// Seed inserts a demo account with a few finished campaigns so the API has
// data to show immediately after a fresh install. Existing rows are left
// alone.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userID := uuid.NewString()
	tag, err := pool.Exec(ctx, `INSERT INTO users (id, email, name, password_hash, created_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT (email) DO NOTHING`,
		userID, "demo@coldreach.local", "Demo User", string(hash))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// already seeded
		return nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 1; i <= 3; i++ {
		limit := 5 + r.Intn(15)
		targets := usecase.GenerateTargets(limit)
		sentAt := time.Now().Add(-time.Duration(i) * 24 * time.Hour)
		for j := range targets {
			ts := sentAt.Add(time.Duration(j) * time.Minute)
			targets[j].Status = domain.TargetDelivered
			targets[j].SentAt = &ts
			category := domain.ResponseNoReply
			switch v := r.Float64(); {
			case v < 0.25:
				category = domain.ResponsePositive
			case v < 0.40:
				category = domain.ResponseNegative
			}
			if category != domain.ResponseNoReply {
				repliedAt := ts.Add(time.Hour)
				targets[j].Status = domain.TargetReplied
				targets[j].RepliedAt = &repliedAt
			}
			targets[j].ResponseCategory = &category
		}
		stats := usecase.AggregateStats(targets)

		targetsJSON, err := json.Marshal(targets)
		if err != nil {
			return err
		}
		statsJSON, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		completedAt := sentAt.Add(time.Hour * 2)
		_, err = pool.Exec(ctx, `INSERT INTO campaigns
(id, user_id, name, brief, target_limit, status, progress, targets, stats, created_at, completed_at)
VALUES ($1,$2,$3,$4,$5,$6,100,$7,$8,$9,$10)`,
			uuid.NewString(), userID,
			fmt.Sprintf("Demo outreach %d", i),
			"Introduce our contract engineering services to growth-stage startups",
			limit, domain.StatusCompleted, targetsJSON, statsJSON, sentAt, completedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
