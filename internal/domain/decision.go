package domain

// PIIFinding is one detected span of personal information.
type PIIFinding struct {
	Category   PIICategory `json:"category"`
	Span       string      `json:"span"`
	Confidence float64     `json:"confidence"`
}

// PIIResult summarizes the PII scan for a message.
type PIIResult struct {
	Presence bool `json:"presence"`
	// Category is the highest-confidence finding's category; empty when
	// Presence is false.
	Category PIICategory `json:"category,omitempty"`
	// Intent reports whether the sender appears to intend the disclosure.
	// Nil when no PII was found and the intent scan was skipped.
	Intent *bool `json:"intent,omitempty"`
}

// ContentResult holds the classifier's verdict for a message.
type ContentResult struct {
	PrimaryCategory ContentCategory `json:"primary_category"`
	// Categories is the raw score table as returned by the classifier.
	// Labels absent from the map score zero; the returned set is preserved
	// verbatim so the full table stays inspectable.
	Categories map[ContentCategory]float64 `json:"categories"`
}

// Score returns the confidence for a label, zero when absent.
func (c *ContentResult) Score(cat ContentCategory) float64 {
	if c == nil {
		return 0
	}
	return c.Categories[cat]
}

// ActionDecision is a recommended moderation action with its rationale.
type ActionDecision struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

// DecisionRecord is the working and final state of one evaluation.
// It is created with only Message set, populated in a fixed order by the
// orchestrator, and immutable once returned.
type DecisionRecord struct {
	ID                string          `json:"id"`
	Message           *Message        `json:"message"`
	PII               *PIIResult      `json:"pii_result,omitempty"`
	Content           *ContentResult  `json:"content_result,omitempty"`
	RecommendedAction *ActionDecision `json:"recommended_action,omitempty"`
	FlagForReview     bool            `json:"flag_for_review"`
}
