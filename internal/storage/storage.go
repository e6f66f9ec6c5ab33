// Package storage persists completed moderation decisions. The decision core
// itself is stateless; this log exists for the surrounding review tooling.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/moderalabs/modera/internal/domain"
)

// ErrNotFound is returned when a decision does not exist.
var ErrNotFound = errors.New("decision not found")

// Decision is one persisted moderation decision, flattened for storage.
type Decision struct {
	ID              string
	MessageID       string
	SenderID        string
	MessageText     string
	PIIPresence     bool
	PIICategory     domain.PIICategory
	PIIIntent       *bool
	PrimaryCategory domain.ContentCategory
	CategoryScores  map[domain.ContentCategory]float64
	Action          domain.Action
	ActionReason    string
	FlagForReview   bool
	CreatedAt       time.Time
}

// FromRecord flattens a DecisionRecord for persistence.
func FromRecord(record *domain.DecisionRecord) *Decision {
	d := &Decision{
		ID:            record.ID,
		FlagForReview: record.FlagForReview,
	}
	if record.Message != nil {
		d.MessageID = record.Message.ID
		d.SenderID = record.Message.SenderID
		d.MessageText = record.Message.Text
	}
	if record.PII != nil {
		d.PIIPresence = record.PII.Presence
		d.PIICategory = record.PII.Category
		d.PIIIntent = record.PII.Intent
	}
	if record.Content != nil {
		d.PrimaryCategory = record.Content.PrimaryCategory
		d.CategoryScores = record.Content.Categories
	}
	if record.RecommendedAction != nil {
		d.Action = record.RecommendedAction.Action
		d.ActionReason = record.RecommendedAction.Reason
	}
	return d
}

// ListOptions filters and bounds a decision listing.
type ListOptions struct {
	SenderID string
	Flagged  *bool
	Limit    int
}

// DecisionStore is the persistence port for moderation decisions.
type DecisionStore interface {
	SaveDecision(ctx context.Context, decision *Decision) error
	GetDecision(ctx context.Context, id string) (*Decision, error)
	ListDecisions(ctx context.Context, opts ListOptions) ([]*Decision, error)
	Close() error
}
