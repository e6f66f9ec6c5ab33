package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moderalabs/modera/internal/domain"
	"github.com/moderalabs/modera/internal/storage"
)

func TestStore_SaveGetList(t *testing.T) {
	store := New()
	ctx := context.Background()

	d1 := &storage.Decision{ID: "d1", SenderID: "u1", PrimaryCategory: domain.ContentSafe, FlagForReview: true, CreatedAt: time.Now().Add(-time.Minute)}
	d2 := &storage.Decision{ID: "d2", SenderID: "u2", PrimaryCategory: domain.ContentHate, CreatedAt: time.Now()}

	for _, d := range []*storage.Decision{d1, d2} {
		if err := store.SaveDecision(ctx, d); err != nil {
			t.Fatalf("SaveDecision() error = %v", err)
		}
	}

	got, err := store.GetDecision(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDecision() error = %v", err)
	}
	if got.SenderID != "u1" || !got.FlagForReview {
		t.Errorf("unexpected decision: %+v", got)
	}

	if _, err := store.GetDecision(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	all, err := store.ListDecisions(ctx, storage.ListOptions{})
	if err != nil {
		t.Fatalf("ListDecisions() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(all))
	}
	if all[0].ID != "d2" {
		t.Error("expected newest first")
	}

	flagged := true
	filtered, err := store.ListDecisions(ctx, storage.ListOptions{Flagged: &flagged})
	if err != nil {
		t.Fatalf("ListDecisions() error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "d1" {
		t.Errorf("unexpected flagged filter result: %+v", filtered)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.SaveDecision(ctx, &storage.Decision{ID: "d1", SenderID: "u1"}); err != nil {
		t.Fatalf("SaveDecision() error = %v", err)
	}

	got, _ := store.GetDecision(ctx, "d1")
	got.SenderID = "mutated"

	again, _ := store.GetDecision(ctx, "d1")
	if again.SenderID != "u1" {
		t.Error("store must not expose internal state to mutation")
	}
}
