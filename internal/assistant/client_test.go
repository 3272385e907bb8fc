package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientComplete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"action":"balance"}`}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model", Temperature: 0.3})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}

	reply, err := client.Complete(context.Background(), "system prompt", "user text")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if reply != `{"action":"balance"}` {
		t.Fatalf("unexpected reply %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 {
		t.Fatalf("unexpected request %+v", gotReq)
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "user text" {
		t.Fatalf("unexpected messages %+v", gotReq.Messages)
	}
}

func TestHTTPClientCompleteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestHTTPClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(Options{}); err != ErrMissingBaseURL {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
}

func TestHTTPClientPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestHTTPClientPingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error for 5xx status")
	}
}
