package domain

import "time"

// TargetStatus enumerates a target's delivery state. Status only moves
// forward through pending -> sent -> delivered|replied.
type TargetStatus string

const (
	TargetPending   TargetStatus = "pending"
	TargetSent      TargetStatus = "sent"
	TargetDelivered TargetStatus = "delivered"
	TargetReplied   TargetStatus = "replied"
)

// ResponseCategory classifies a simulated reply outcome.
type ResponseCategory string

const (
	ResponsePositive ResponseCategory = "positive"
	ResponseNegative ResponseCategory = "negative"
	ResponseNoReply  ResponseCategory = "no_reply"
)

// Target is one simulated contact within a campaign. ResponseCategory is
// nil until the run resolves outcomes; SentAt and RepliedAt are stamped at
// most once each, with RepliedAt >= SentAt when both are present.
type Target struct {
	Email            string            `json:"email"`
	Company          string            `json:"company"`
	Status           TargetStatus      `json:"status"`
	ResponseCategory *ResponseCategory `json:"response_category"`
	SentAt           *time.Time        `json:"sent_at"`
	RepliedAt        *time.Time        `json:"replied_at"`
}
