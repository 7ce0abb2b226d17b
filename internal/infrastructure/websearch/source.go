// Package websearch turns live search results into request-scoped documents
// ready for indexing.
package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/core/ports"
)

// minDocumentContent filters out results whose fetched page and snippet are
// both too thin to answer from.
const minDocumentContent = 50

// DocumentSource builds one-shot document sets from a web search. Each page
// fetch failure is isolated: the document falls back to the search snippet
// or is skipped entirely.
type DocumentSource struct {
	searcher ports.WebSearcher
	fetcher  ports.PageFetcher
	logger   *slog.Logger
	now      func() time.Time
}

func NewDocumentSource(searcher ports.WebSearcher, fetcher ports.PageFetcher, logger *slog.Logger) *DocumentSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentSource{
		searcher: searcher,
		fetcher:  fetcher,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *DocumentSource) Documents(ctx context.Context, query string, numResults int) ([]domain.Document, error) {
	results, err := s.searcher.Search(ctx, query, numResults)
	if err != nil {
		return nil, fmt.Errorf("search web: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	docs := make([]domain.Document, 0, len(results))
	for i, result := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := s.fetcher.FetchContent(ctx, result.URL)
		if err != nil {
			s.logger.Warn("page_fetch_failed", "url", result.URL, "error", err)
			content = ""
		}
		if content == "" {
			content = result.Snippet
		}
		if len(strings.TrimSpace(content)) <= minDocumentContent {
			continue
		}

		docs = append(docs, domain.Document{
			Content: content,
			Meta: map[string]any{
				"title":       result.Title,
				"url":         result.URL,
				"source":      "web_search",
				"query":       query,
				"search_rank": i + 1,
				"timestamp":   s.now().Unix(),
			},
		})
	}
	return docs, nil
}
