package ports

import (
	"context"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

// DocumentIndex ranks the documents of one collection by lexical relevance.
// Implementations must be safe for concurrent searches; the indexed document
// set is fixed at construction.
type DocumentIndex interface {
	Search(ctx context.Context, query string, topK int) ([]domain.RankedDocument, error)
	Size() int
}

// IndexBuilder constructs a request-scoped index over freshly fetched
// documents. The returned index is owned by the current request.
type IndexBuilder func(docs []domain.Document) DocumentIndex

// AnswerExtractor extracts scored answer spans from candidate documents.
type AnswerExtractor interface {
	Extract(ctx context.Context, question string, docs []domain.Document, topK int) ([]domain.Candidate, error)
}

// WebSearcher returns ranked live search results for a query, deduplicated
// by URL.
type WebSearcher interface {
	Search(ctx context.Context, query string, numResults int) ([]domain.SearchResult, error)
}

// PageFetcher downloads a page and extracts its main textual content.
type PageFetcher interface {
	FetchContent(ctx context.Context, pageURL string) (string, error)
}

// WebDocumentSource builds a request-scoped document set from live search.
// The documents are discarded after the request.
type WebDocumentSource interface {
	Documents(ctx context.Context, query string, numResults int) ([]domain.Document, error)
}
