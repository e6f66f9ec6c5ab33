// Package moderation is the decision core: it sequences the detectors and
// reasoning agents over one message and folds their results into a single
// DecisionRecord.
package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/moderalabs/modera/internal/domain"
)

// PIIScanner finds personal information in text. Implementations never fail:
// detector outages resolve to a fallback or the empty result.
type PIIScanner interface {
	Detect(ctx context.Context, text string) []domain.PIIFinding
}

// ContentScanner classifies text against the harmful-content categories.
// Implementations never fail: outages resolve to the fail-open safe default.
type ContentScanner interface {
	Classify(ctx context.Context, text string) *domain.ContentResult
}

// IntentJudge decides whether the sender intends to disclose personal
// information.
type IntentJudge interface {
	Infer(ctx context.Context, text string) (bool, error)
}

// ActionPlanner proposes an action for a harmful-content category.
type ActionPlanner interface {
	Decide(ctx context.Context, category domain.ContentCategory, text string) (*domain.ActionDecision, error)
}

const piiWarnReason = "message discloses personal information"

// Orchestrator runs one evaluation through the fixed state sequence:
// PII scan, conditional intent scan, content scan, conditional action
// decision, review flagging. The PII and content scans have no data
// dependency on each other and run concurrently; everything else is ordered.
type Orchestrator struct {
	pii     PIIScanner
	content ContentScanner
	intent  IntentJudge
	action  ActionPlanner

	reviewThreshold float64
	logger          *slog.Logger
}

// NewOrchestrator wires the four collaborators into an orchestrator.
func NewOrchestrator(pii PIIScanner, content ContentScanner, intent IntentJudge, action ActionPlanner, reviewThreshold float64, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		pii:             pii,
		content:         content,
		intent:          intent,
		action:          action,
		reviewThreshold: reviewThreshold,
		logger:          logger,
	}
}

// Evaluate produces the decision record for one message. Detector outages
// are absorbed by the scanners; a reasoning-agent failure surfaces as an
// error for the entry point to contain.
func (o *Orchestrator) Evaluate(ctx context.Context, msg *domain.Message) (*domain.DecisionRecord, error) {
	record := &domain.DecisionRecord{
		ID:      uuid.New().String(),
		Message: msg,
	}

	var findings []domain.PIIFinding
	var content *domain.ContentResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		findings = o.pii.Detect(gctx, msg.Text)
		return nil
	})
	g.Go(func() error {
		content = o.content.Classify(gctx, msg.Text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	record.PII = &domain.PIIResult{}
	if len(findings) > 0 {
		record.PII.Presence = true
		record.PII.Category = findings[0].Category

		intent, err := o.intent.Infer(ctx, msg.Text)
		if err != nil {
			return nil, fmt.Errorf("intent scan: %w", err)
		}
		record.PII.Intent = &intent
	}

	record.Content = content

	switch {
	case content.PrimaryCategory != domain.ContentSafe:
		decision, err := o.action.Decide(ctx, content.PrimaryCategory, msg.Text)
		if err != nil {
			return nil, fmt.Errorf("action decision: %w", err)
		}
		record.RecommendedAction = decision
	case record.PII.Presence:
		// No agent call needed: a PII-only disclosure always maps to a warn.
		record.RecommendedAction = &domain.ActionDecision{
			Action: domain.ActionWarn,
			Reason: piiWarnReason,
		}
	}

	record.FlagForReview = o.shouldFlag(record)

	o.logger.Info("evaluation complete",
		slog.String("decision_id", record.ID),
		slog.String("message_id", msg.ID),
		slog.Bool("pii", record.PII.Presence),
		slog.String("primary_category", string(content.PrimaryCategory)),
		slog.Bool("flagged", record.FlagForReview),
	)

	return record, nil
}
