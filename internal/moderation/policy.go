package moderation

import "github.com/moderalabs/modera/internal/domain"

// shouldFlag applies the review-flagging policy over a populated record.
// A record is flagged when any of these hold:
//   - the recommended action is more severe than a warning
//   - personal information was detected
//   - two or more content categories exceed the moderate-confidence threshold
//
// The flag is computed once, after all other fields are set, so it is
// monotonic within an evaluation.
func (o *Orchestrator) shouldFlag(record *domain.DecisionRecord) bool {
	if a := record.RecommendedAction; a != nil {
		if a.Action == domain.ActionRemove || a.Action == domain.ActionBanPendingReview {
			return true
		}
	}

	if record.PII != nil && record.PII.Presence {
		return true
	}

	if record.Content != nil {
		over := 0
		for _, score := range record.Content.Categories {
			if score > o.reviewThreshold {
				over++
			}
		}
		if over >= 2 {
			return true
		}
	}

	return false
}
