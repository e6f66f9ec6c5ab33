package detector

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestFailover_PrimarySucceeds(t *testing.T) {
	fallbackCalled := false

	result, err := Failover(context.Background(), slog.Default(), "test",
		func(ctx context.Context) (string, error) { return "primary", nil },
		func(ctx context.Context) (string, error) {
			fallbackCalled = true
			return "fallback", nil
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "primary" {
		t.Errorf("expected primary result, got %q", result)
	}
	if fallbackCalled {
		t.Error("fallback should not run when primary succeeds")
	}
}

func TestFailover_FallsBack(t *testing.T) {
	result, err := Failover(context.Background(), slog.Default(), "test",
		func(ctx context.Context) (string, error) { return "", errors.New("boom") },
		func(ctx context.Context) (string, error) { return "fallback", nil },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "fallback" {
		t.Errorf("expected fallback result, got %q", result)
	}
}

func TestFailover_BothFail(t *testing.T) {
	_, err := Failover(context.Background(), slog.Default(), "test",
		func(ctx context.Context) (int, error) { return 0, errors.New("primary down") },
		func(ctx context.Context) (int, error) { return 0, errors.New("fallback down") },
	)
	if err == nil {
		t.Fatal("expected error when both paths fail")
	}
}
