package usecase

import (
	"math"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

// AggregateStats computes the aggregate over a finalized target list.
func AggregateStats(targets []domain.Target) domain.CampaignStats {
	stats := domain.CampaignStats{Total: len(targets)}
	for i := range targets {
		switch targets[i].Status {
		case domain.TargetSent:
			stats.Sent++
		case domain.TargetDelivered:
			stats.Sent++
			stats.Delivered++
		case domain.TargetReplied:
			stats.Sent++
			stats.Delivered++
			stats.Replied++
		}
		if targets[i].ResponseCategory == nil {
			continue
		}
		switch *targets[i].ResponseCategory {
		case domain.ResponsePositive:
			stats.Positive++
		case domain.ResponseNegative:
			stats.Negative++
		case domain.ResponseNoReply:
			stats.NoReply++
		}
	}
	return stats
}

// AggregateDashboard sums per-campaign stats field-wise across a user's
// campaigns and derives the response rate.
func AggregateDashboard(campaigns []*domain.Campaign) *port.DashboardStats {
	out := &port.DashboardStats{TotalCampaigns: len(campaigns)}
	for _, c := range campaigns {
		if c.IsActive() {
			out.ActiveCampaigns++
		}
		if c.Stats == nil {
			continue
		}
		out.TotalEmailsSent += c.Stats.Sent
		out.TotalPositive += c.Stats.Positive
		out.TotalNegative += c.Stats.Negative
		out.TotalNoReply += c.Stats.NoReply
	}
	if out.TotalEmailsSent > 0 {
		rate := float64(out.TotalPositive+out.TotalNegative) / float64(out.TotalEmailsSent) * 100
		out.ResponseRate = math.Round(rate*10) / 10
	}
	return out
}
