// Package domain holds the moderation data model: messages, findings, and
// the decision record that one evaluation produces.
package domain

// Message is one chat message submitted for moderation.
// It is owned by the caller and never mutated by the core.
type Message struct {
	ID       string `json:"id"`
	SenderID string `json:"sender_id"`
	Text     string `json:"text"`
}
