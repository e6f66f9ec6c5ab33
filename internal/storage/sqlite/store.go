// Package sqlite is a SQLite implementation of the decision log.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/moderalabs/modera/internal/domain"
	"github.com/moderalabs/modera/internal/storage"
)

// Store is a SQLite implementation of storage.DecisionStore.
type Store struct {
	db *sql.DB
}

var _ storage.DecisionStore = (*Store)(nil)

// New creates a new SQLite store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			message_id TEXT NOT NULL,
			sender_id TEXT NOT NULL,
			message_text TEXT NOT NULL,
			pii_presence INTEGER NOT NULL DEFAULT 0,
			pii_category TEXT,
			pii_intent INTEGER,
			primary_category TEXT,
			category_scores TEXT,
			action TEXT,
			action_reason TEXT,
			flag_for_review INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_sender ON decisions(sender_id)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_flagged ON decisions(flag_for_review)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

// SaveDecision persists one moderation decision.
func (s *Store) SaveDecision(ctx context.Context, decision *storage.Decision) error {
	if decision.CreatedAt.IsZero() {
		decision.CreatedAt = time.Now()
	}

	var scores sql.NullString
	if len(decision.CategoryScores) > 0 {
		scoresJSON, err := json.Marshal(decision.CategoryScores)
		if err != nil {
			return fmt.Errorf("failed to marshal category scores: %w", err)
		}
		scores = sql.NullString{String: string(scoresJSON), Valid: true}
	}

	var piiCategory, primaryCategory, action, actionReason sql.NullString
	if decision.PIICategory != "" {
		piiCategory = sql.NullString{String: string(decision.PIICategory), Valid: true}
	}
	if decision.PrimaryCategory != "" {
		primaryCategory = sql.NullString{String: string(decision.PrimaryCategory), Valid: true}
	}
	if decision.Action != "" {
		action = sql.NullString{String: string(decision.Action), Valid: true}
		actionReason = sql.NullString{String: decision.ActionReason, Valid: true}
	}

	var piiIntent sql.NullInt64
	if decision.PIIIntent != nil {
		v := int64(0)
		if *decision.PIIIntent {
			v = 1
		}
		piiIntent = sql.NullInt64{Int64: v, Valid: true}
	}

	query := `INSERT INTO decisions (
		id, message_id, sender_id, message_text,
		pii_presence, pii_category, pii_intent,
		primary_category, category_scores,
		action, action_reason, flag_for_review, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		decision.ID, decision.MessageID, decision.SenderID, decision.MessageText,
		boolToInt(decision.PIIPresence), piiCategory, piiIntent,
		primaryCategory, scores,
		action, actionReason, boolToInt(decision.FlagForReview), decision.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}

	return nil
}

// GetDecision retrieves a decision by ID.
func (s *Store) GetDecision(ctx context.Context, id string) (*storage.Decision, error) {
	query := `SELECT id, message_id, sender_id, message_text,
		pii_presence, pii_category, pii_intent,
		primary_category, category_scores,
		action, action_reason, flag_for_review, created_at
	FROM decisions WHERE id = ?`

	decision, err := scanDecision(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return decision, nil
}

// ListDecisions lists decisions newest first, applying the given filters.
func (s *Store) ListDecisions(ctx context.Context, opts storage.ListOptions) ([]*storage.Decision, error) {
	var conditions []string
	var args []any

	if opts.SenderID != "" {
		conditions = append(conditions, "sender_id = ?")
		args = append(args, opts.SenderID)
	}
	if opts.Flagged != nil {
		conditions = append(conditions, "flag_for_review = ?")
		args = append(args, boolToInt(*opts.Flagged))
	}

	query := `SELECT id, message_id, sender_id, message_text,
		pii_presence, pii_category, pii_intent,
		primary_category, category_scores,
		action, action_reason, flag_for_review, created_at
	FROM decisions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*storage.Decision
	for rows.Next() {
		decision, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		decisions = append(decisions, decision)
	}
	return decisions, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(row rowScanner) (*storage.Decision, error) {
	var d storage.Decision
	var piiPresence, flagged int
	var piiCategory, primaryCategory, scores, action, actionReason sql.NullString
	var piiIntent sql.NullInt64

	err := row.Scan(&d.ID, &d.MessageID, &d.SenderID, &d.MessageText,
		&piiPresence, &piiCategory, &piiIntent,
		&primaryCategory, &scores,
		&action, &actionReason, &flagged, &d.CreatedAt)
	if err != nil {
		return nil, err
	}

	d.PIIPresence = piiPresence != 0
	d.FlagForReview = flagged != 0
	if piiCategory.Valid {
		d.PIICategory = domain.PIICategory(piiCategory.String)
	}
	if piiIntent.Valid {
		v := piiIntent.Int64 != 0
		d.PIIIntent = &v
	}
	if primaryCategory.Valid {
		d.PrimaryCategory = domain.ContentCategory(primaryCategory.String)
	}
	if scores.Valid {
		if err := json.Unmarshal([]byte(scores.String), &d.CategoryScores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category scores: %w", err)
		}
	}
	if action.Valid {
		d.Action = domain.Action(action.String)
		d.ActionReason = actionReason.String
	}

	return &d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
