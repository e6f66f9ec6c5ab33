package classify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moderalabs/modera/internal/testutil"
)

func TestClient_Classify(t *testing.T) {
	recorder, cleanup := testutil.NewVCRRecorder(t, "classify_message")
	defer cleanup()

	client := NewClient("test-key",
		WithBaseURL("https://classify.test"),
		WithHTTPClient(testutil.VCRHTTPClient(recorder)),
	)

	resp, err := client.Classify(context.Background(), &ClassifyRequest{Text: "you are all worthless"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Results))
	}
	if resp.Results[1].Label != "hate" || resp.Results[1].Score != 0.81 {
		t.Errorf("unexpected result %+v", resp.Results[1])
	}
}

func TestClient_ClassifyMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{invalid`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.Classify(context.Background(), &ClassifyRequest{Text: "hi"}); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestClient_ClassifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.Classify(context.Background(), &ClassifyRequest{Text: "hi"}); err == nil {
		t.Fatal("expected error for non-success status")
	}
}
