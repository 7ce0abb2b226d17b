package usecase

import (
	"context"
	"fmt"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/core/ports"
)

const (
	defaultRetrieveTopK = 10
	defaultExtractTopK  = 3
)

// SourcePipeline composes lexical retrieval with extractive reading over one
// document collection. The static source holds a process-lifetime pipeline;
// the web source builds a fresh one per request.
type SourcePipeline struct {
	index        ports.DocumentIndex
	extractor    ports.AnswerExtractor
	retrieveTopK int
	extractTopK  int
}

func NewSourcePipeline(index ports.DocumentIndex, extractor ports.AnswerExtractor) *SourcePipeline {
	return &SourcePipeline{
		index:        index,
		extractor:    extractor,
		retrieveTopK: defaultRetrieveTopK,
		extractTopK:  defaultExtractTopK,
	}
}

// Run returns the unfiltered answer candidates for the question. Errors are
// surfaced to the caller for logging; the orchestrator collapses them to an
// empty candidate list.
func (p *SourcePipeline) Run(ctx context.Context, question string) ([]domain.Candidate, error) {
	ranked, err := p.index.Search(ctx, question, p.retrieveTopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve documents: %w", err)
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	docs := make([]domain.Document, 0, len(ranked))
	for _, r := range ranked {
		docs = append(docs, r.Document)
	}

	candidates, err := p.extractor.Extract(ctx, question, docs, p.extractTopK)
	if err != nil {
		return nil, fmt.Errorf("extract answers: %w", err)
	}
	return candidates, nil
}
