package entity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moderalabs/modera/internal/testutil"
)

func TestClient_Recognize(t *testing.T) {
	recorder, cleanup := testutil.NewVCRRecorder(t, "entity_recognize")
	defer cleanup()

	client := NewClient("test-key",
		WithBaseURL("https://entity.test"),
		WithHTTPClient(testutil.VCRHTTPClient(recorder)),
	)

	resp, err := client.Recognize(context.Background(), &RecognizeRequest{Text: "My email is a@b.com, thanks!"})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	if len(resp.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(resp.Entities))
	}
	if resp.Entities[0].Label != "EMAIL_ADDRESS" {
		t.Errorf("unexpected label %q", resp.Entities[0].Label)
	}
	if resp.Entities[0].Text != "a@b.com" {
		t.Errorf("unexpected text %q", resp.Entities[0].Text)
	}
	if resp.Entities[0].Score != 0.97 {
		t.Errorf("unexpected score %f", resp.Entities[0].Score)
	}
}

func TestClient_RecognizeSendsBearerAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"entities": []}`))
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))
	if _, err := client.Recognize(context.Background(), &RecognizeRequest{Text: "hi"}); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer credential, got %q", gotAuth)
	}
}

func TestClient_RecognizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.Recognize(context.Background(), &RecognizeRequest{Text: "hi"}); err == nil {
		t.Fatal("expected error for non-success status")
	}
}

func TestClient_RecognizeContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.Recognize(ctx, &RecognizeRequest{Text: "hi"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
