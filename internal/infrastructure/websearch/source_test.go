package websearch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

type searcherFake struct {
	results []domain.SearchResult
	err     error
}

func (f *searcherFake) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fetcherFake struct {
	content map[string]string
	err     map[string]error
}

func (f *fetcherFake) FetchContent(_ context.Context, pageURL string) (string, error) {
	if err := f.err[pageURL]; err != nil {
		return "", err
	}
	return f.content[pageURL], nil
}

func longText(prefix string) string {
	return prefix + " " + strings.Repeat("word ", 30)
}

func TestDocumentsCarrySearchProvenance(t *testing.T) {
	searcher := &searcherFake{results: []domain.SearchResult{
		{Title: "Recap", URL: "https://a.example.com", Snippet: "short"},
	}}
	fetcher := &fetcherFake{content: map[string]string{
		"https://a.example.com": longText("full article"),
	}}

	source := NewDocumentSource(searcher, fetcher, nil)
	source.now = func() time.Time { return time.Unix(1700000000, 0) }

	docs, err := source.Documents(context.Background(), "lebron news", 5)
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	meta := docs[0].Meta
	if meta["title"] != "Recap" || meta["url"] != "https://a.example.com" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta["source"] != "web_search" || meta["query"] != "lebron news" {
		t.Fatalf("unexpected provenance: %+v", meta)
	}
	if meta["search_rank"] != 1 || meta["timestamp"] != int64(1700000000) {
		t.Fatalf("unexpected rank/timestamp: %+v", meta)
	}
}

func TestDocumentsFallBackToSnippetOnFetchFailure(t *testing.T) {
	searcher := &searcherFake{results: []domain.SearchResult{
		{Title: "A", URL: "https://a.example.com", Snippet: longText("snippet for a")},
		{Title: "B", URL: "https://b.example.com", Snippet: longText("snippet for b")},
	}}
	fetcher := &fetcherFake{
		content: map[string]string{"https://b.example.com": longText("full b")},
		err:     map[string]error{"https://a.example.com": errors.New("timeout")},
	}

	source := NewDocumentSource(searcher, fetcher, nil)
	docs, err := source.Documents(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected both documents, got %d", len(docs))
	}
	if !strings.HasPrefix(docs[0].Content, "snippet for a") {
		t.Fatalf("expected snippet fallback, got %q", docs[0].Content)
	}
	if docs[1].Meta["search_rank"] != 2 {
		t.Fatalf("expected original rank preserved, got %+v", docs[1].Meta)
	}
}

func TestDocumentsSkipThinContent(t *testing.T) {
	searcher := &searcherFake{results: []domain.SearchResult{
		{Title: "Thin", URL: "https://thin.example.com", Snippet: "too short"},
	}}
	fetcher := &fetcherFake{}

	source := NewDocumentSource(searcher, fetcher, nil)
	docs, err := source.Documents(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected thin result skipped, got %d docs", len(docs))
	}
}

func TestDocumentsPropagateSearchError(t *testing.T) {
	source := NewDocumentSource(&searcherFake{err: errors.New("no key")}, &fetcherFake{}, nil)
	if _, err := source.Documents(context.Background(), "q", 5); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDocumentsStopOnCancelledContext(t *testing.T) {
	searcher := &searcherFake{results: []domain.SearchResult{
		{Title: "A", URL: "https://a.example.com", Snippet: longText("sa")},
	}}
	source := NewDocumentSource(searcher, &fetcherFake{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.Documents(ctx, "q", 5); err == nil {
		t.Fatalf("expected context error")
	}
}
