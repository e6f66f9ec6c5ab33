package detector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moderalabs/modera/internal/api/classify"
	"github.com/moderalabs/modera/internal/domain"
)

func newClassifier(t *testing.T, baseURL string) *ContentClassifier {
	t.Helper()
	client := classify.NewClient("test-key", classify.WithBaseURL(baseURL))
	return NewContentClassifier(client, 5*time.Second, nil)
}

func classifierServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestContentClassifier_PrimaryIsMaxScore(t *testing.T) {
	srv := classifierServer(t, `{"results": [
		{"label": "safe", "score": 0.2},
		{"label": "hate", "score": 0.7},
		{"label": "violence", "score": 0.1}
	]}`)
	defer srv.Close()

	result := newClassifier(t, srv.URL).Classify(context.Background(), "some text")

	if result.PrimaryCategory != domain.ContentHate {
		t.Errorf("expected hate, got %s", result.PrimaryCategory)
	}
	if len(result.Categories) != 3 {
		t.Errorf("expected verbatim score table of 3 entries, got %d", len(result.Categories))
	}
	if result.Score(domain.ContentHarassment) != 0 {
		t.Error("absent category must score zero")
	}
}

func TestContentClassifier_TiePrefersSafe(t *testing.T) {
	srv := classifierServer(t, `{"results": [
		{"label": "hate", "score": 0.5},
		{"label": "safe", "score": 0.5}
	]}`)
	defer srv.Close()

	result := newClassifier(t, srv.URL).Classify(context.Background(), "some text")
	if result.PrimaryCategory != domain.ContentSafe {
		t.Errorf("exact tie must prefer safe, got %s", result.PrimaryCategory)
	}
}

func TestContentClassifier_TieBetweenHarmfulUsesEnumOrder(t *testing.T) {
	srv := classifierServer(t, `{"results": [
		{"label": "violence", "score": 0.8},
		{"label": "sexual", "score": 0.8}
	]}`)
	defer srv.Close()

	result := newClassifier(t, srv.URL).Classify(context.Background(), "some text")
	if result.PrimaryCategory != domain.ContentSexual {
		t.Errorf("tie must resolve by enumeration order, got %s", result.PrimaryCategory)
	}
}

func TestContentClassifier_FailOpenOnServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	result := newClassifier(t, srv.URL).Classify(context.Background(), "some text")

	if result.PrimaryCategory != domain.ContentSafe {
		t.Errorf("expected safe default, got %s", result.PrimaryCategory)
	}
	if len(result.Categories) != 1 || result.Categories[domain.ContentSafe] != 1.0 {
		t.Errorf("expected {safe: 1.0}, got %v", result.Categories)
	}
}

func TestContentClassifier_FailOpenOnMalformedPayload(t *testing.T) {
	srv := classifierServer(t, `{not json`)
	defer srv.Close()

	result := newClassifier(t, srv.URL).Classify(context.Background(), "some text")
	if result.PrimaryCategory != domain.ContentSafe {
		t.Errorf("expected safe default, got %s", result.PrimaryCategory)
	}
}

func TestContentClassifier_FailOpenOnEmptyResults(t *testing.T) {
	srv := classifierServer(t, `{"results": []}`)
	defer srv.Close()

	result := newClassifier(t, srv.URL).Classify(context.Background(), "some text")
	if len(result.Categories) != 1 || result.Categories[domain.ContentSafe] != 1.0 {
		t.Errorf("expected {safe: 1.0}, got %v", result.Categories)
	}
}
