package reader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/infrastructure/resilience"
)

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    1,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     1 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})
}

func TestExtractSendsDocumentsAndParsesAnswers(t *testing.T) {
	var captured extractRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"answers":[
			{"answer":"38 points","score":0.93,"document_index":0},
			{"answer":"the Lakers","score":0.41,"document_index":1}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, "deepset/roberta-base-squad2", testExecutor())
	docs := []domain.Document{
		{Content: "LeBron scored 38 points.", Meta: map[string]any{"title": "recap"}},
		{Content: "The Lakers won at home."},
	}

	candidates, err := client.Extract(context.Background(), "How many points?", docs, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if captured.Model != "deepset/roberta-base-squad2" || captured.TopK != 3 {
		t.Fatalf("unexpected request: %+v", captured)
	}
	if len(captured.Documents) != 2 {
		t.Fatalf("expected 2 documents sent, got %d", len(captured.Documents))
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Answer != "38 points" || candidates[0].Score != 0.93 {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[0].Document == nil || candidates[0].Document.Meta["title"] != "recap" {
		t.Fatalf("expected document attribution, got %+v", candidates[0].Document)
	}
}

func TestExtractOutOfRangeAttributionYieldsNilDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"answers":[{"answer":"x","score":0.8,"document_index":7}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "m", testExecutor())
	candidates, err := client.Extract(context.Background(), "q", []domain.Document{{Content: "doc"}}, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(candidates) != 1 || candidates[0].Document != nil {
		t.Fatalf("expected nil document for bad attribution, got %+v", candidates)
	}
}

func TestExtractSkipsRequestWithoutDocuments(t *testing.T) {
	client := New("http://localhost:1", "m", testExecutor())
	candidates, err := client.Extract(context.Background(), "q", nil, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if candidates != nil {
		t.Fatalf("expected no candidates, got %+v", candidates)
	}
}

func TestExtractIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "m", testExecutor())
	_, err := client.Extract(context.Background(), "q", []domain.Document{{Content: "doc"}}, 3)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error kind for 502, got %v", err)
	}
}

func TestExtractRetriesRetryableStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"answers":[{"answer":"a","score":0.9,"document_index":0}]}`))
	}))
	defer server.Close()

	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     1 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})
	client := New(server.URL, "m", exec)

	candidates, err := client.Extract(context.Background(), "q", []domain.Document{{Content: "doc"}}, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected retry after 503, got %d attempts", attempts)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
}
