// Package memory is an in-memory decision log for tests and storage.type=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/moderalabs/modera/internal/storage"
)

// Store is an in-memory implementation of storage.DecisionStore.
type Store struct {
	mu        sync.RWMutex
	decisions map[string]*storage.Decision
}

var _ storage.DecisionStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{decisions: make(map[string]*storage.Decision)}
}

// SaveDecision stores a decision.
func (s *Store) SaveDecision(ctx context.Context, decision *storage.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if decision.CreatedAt.IsZero() {
		decision.CreatedAt = time.Now()
	}
	copied := *decision
	s.decisions[decision.ID] = &copied
	return nil
}

// GetDecision retrieves a decision by ID.
func (s *Store) GetDecision(ctx context.Context, id string) (*storage.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decision, ok := s.decisions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *decision
	return &copied, nil
}

// ListDecisions lists decisions newest first.
func (s *Store) ListDecisions(ctx context.Context, opts storage.ListOptions) ([]*storage.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var decisions []*storage.Decision
	for _, d := range s.decisions {
		if opts.SenderID != "" && d.SenderID != opts.SenderID {
			continue
		}
		if opts.Flagged != nil && d.FlagForReview != *opts.Flagged {
			continue
		}
		copied := *d
		decisions = append(decisions, &copied)
	}

	sort.Slice(decisions, func(i, j int) bool {
		return decisions[i].CreatedAt.After(decisions[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(decisions) > limit {
		decisions = decisions[:limit]
	}
	return decisions, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
