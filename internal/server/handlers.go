package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moderalabs/modera/internal/domain"
	"github.com/moderalabs/modera/internal/storage"
)

// moderateRequest is the inbound payload for one moderation call.
type moderateRequest struct {
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	Text      string `json:"text"`
}

func (s *Server) handleModerate(w http.ResponseWriter, r *http.Request) {
	var req moderateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.MessageID == "" {
		req.MessageID = uuid.New().String()
	}

	msg := &domain.Message{
		ID:       req.MessageID,
		SenderID: req.SenderID,
		Text:     req.Text,
	}

	// The moderation service never fails; it substitutes a flagged
	// fail-safe record instead.
	record := s.moderator.Evaluate(r.Context(), msg)

	// The decision log is best effort: a storage outage must not turn a
	// completed evaluation into a client error.
	if err := s.store.SaveDecision(r.Context(), storage.FromRecord(record)); err != nil {
		s.logger.Error("failed to persist decision",
			slog.String("decision_id", record.ID),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	decision, err := s.store.GetDecision(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "decision not found")
			return
		}
		s.logger.Error("failed to load decision", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	writeJSON(w, http.StatusOK, decisionPayload(decision))
}

func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	opts := storage.ListOptions{
		SenderID: r.URL.Query().Get("sender_id"),
	}
	if v := r.URL.Query().Get("flagged"); v != "" {
		flagged, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid flagged filter")
			return
		}
		opts.Flagged = &flagged
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		opts.Limit = limit
	}

	decisions, err := s.store.ListDecisions(r.Context(), opts)
	if err != nil {
		s.logger.Error("failed to list decisions", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	payload := make([]map[string]any, 0, len(decisions))
	for _, d := range decisions {
		payload = append(payload, decisionPayload(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{"decisions": payload})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decisionPayload(d *storage.Decision) map[string]any {
	payload := map[string]any{
		"id":               d.ID,
		"message_id":       d.MessageID,
		"sender_id":        d.SenderID,
		"pii_presence":     d.PIIPresence,
		"primary_category": d.PrimaryCategory,
		"flag_for_review":  d.FlagForReview,
		"created_at":       d.CreatedAt,
	}
	if d.PIICategory != "" {
		payload["pii_category"] = d.PIICategory
	}
	if d.PIIIntent != nil {
		payload["pii_intent"] = *d.PIIIntent
	}
	if len(d.CategoryScores) > 0 {
		payload["category_scores"] = d.CategoryScores
	}
	if d.Action != "" {
		payload["action"] = d.Action
		payload["action_reason"] = d.ActionReason
	}
	return payload
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
