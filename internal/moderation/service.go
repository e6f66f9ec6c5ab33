package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/moderalabs/modera/internal/domain"
)

const unavailableReason = "moderation service unavailable; defaulting to manual review"

// Service is the entry point around the orchestrator. It guarantees the
// caller always receives a DecisionRecord: any unrecovered failure, including
// a panic, is converted into a warn-and-flag record biased toward human
// review rather than silent approval.
type Service struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

// NewService creates the moderation entry point.
func NewService(orchestrator *Orchestrator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orchestrator: orchestrator, logger: logger}
}

// Evaluate moderates one message. It never returns an error.
func (s *Service) Evaluate(ctx context.Context, msg *domain.Message) (record *domain.DecisionRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("evaluation panic",
				slog.String("message_id", msg.ID),
				slog.String("panic", fmt.Sprint(r)),
			)
			record = failsafeRecord(msg)
		}
	}()

	record, err := s.orchestrator.Evaluate(ctx, msg)
	if err != nil {
		s.logger.Error("evaluation failed",
			slog.String("message_id", msg.ID),
			slog.String("error", err.Error()),
		)
		return failsafeRecord(msg)
	}
	return record
}

// failsafeRecord is the terminal record substituted when an evaluation could
// not complete: a warning plus a mandatory human review.
func failsafeRecord(msg *domain.Message) *domain.DecisionRecord {
	return &domain.DecisionRecord{
		ID:      uuid.New().String(),
		Message: msg,
		RecommendedAction: &domain.ActionDecision{
			Action: domain.ActionWarn,
			Reason: unavailableReason,
		},
		FlagForReview: true,
	}
}
