package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/core/ports"
)

// AskUseCase is the hybrid QA orchestrator. Capability flags are fixed at
// construction: a nil static pipeline means the corpus failed to load and the
// static source stays disabled for the process lifetime; a nil web document
// source means no search credential is configured. The use case holds no
// per-request state.
type AskUseCase struct {
	staticPipeline *SourcePipeline
	extractor      ports.AnswerExtractor
	webDocs        ports.WebDocumentSource
	buildIndex     ports.IndexBuilder
	webResults     int
	logger         *slog.Logger
}

func NewAskUseCase(
	staticPipeline *SourcePipeline,
	extractor ports.AnswerExtractor,
	webDocs ports.WebDocumentSource,
	buildIndex ports.IndexBuilder,
	webResults int,
	logger *slog.Logger,
) *AskUseCase {
	if webResults <= 0 {
		webResults = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AskUseCase{
		staticPipeline: staticPipeline,
		extractor:      extractor,
		webDocs:        webDocs,
		buildIndex:     buildIndex,
		webResults:     webResults,
		logger:         logger,
	}
}

func (uc *AskUseCase) Capabilities() domain.Capabilities {
	return domain.Capabilities{
		KnowledgeBase: uc.staticPipeline != nil,
		WebSearch:     uc.webDocs != nil,
	}
}

// Ask answers the question from the static corpus and, when resolved on, the
// live web. A failing source degrades to zero candidates for this request
// only; the error never crosses this boundary.
func (uc *AskUseCase) Ask(ctx context.Context, question string, usage domain.WebUsage) (*domain.QAResponse, error) {
	useWeb := uc.resolveWebUsage(question, usage)

	var staticCandidates []domain.Candidate
	if uc.staticPipeline != nil {
		candidates, err := uc.staticPipeline.Run(ctx, question)
		if err != nil {
			uc.logger.Warn("static_pipeline_failed", "error", err)
		} else {
			staticCandidates = candidates
		}
	}

	var webCandidates []domain.Candidate
	if useWeb {
		candidates, err := uc.runWebPipeline(ctx, question)
		if err != nil {
			uc.logger.Warn("web_pipeline_failed", "error", err)
		} else {
			webCandidates = candidates
		}
	}

	merged := mergeCandidates(staticCandidates, webCandidates)
	if len(merged) == 0 {
		resp := domain.NoAnswerResponse()
		return &resp, nil
	}

	best := merged[0]
	return &domain.QAResponse{
		Answer:     best.Answer,
		Score:      best.Score,
		Source:     best.Source,
		Meta:       best.Meta,
		Context:    best.Context,
		AllAnswers: merged,
	}, nil
}

func (uc *AskUseCase) resolveWebUsage(question string, usage domain.WebUsage) bool {
	if uc.webDocs == nil {
		return false
	}
	switch usage {
	case domain.WebForcedOn:
		return true
	case domain.WebForcedOff:
		return false
	default:
		return isRealTime(question)
	}
}

func (uc *AskUseCase) runWebPipeline(ctx context.Context, question string) ([]domain.Candidate, error) {
	docs, err := uc.webDocs.Documents(ctx, question, uc.webResults)
	if err != nil {
		return nil, fmt.Errorf("collect web documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	pipeline := NewSourcePipeline(uc.buildIndex(docs), uc.extractor)
	return pipeline.Run(ctx, question)
}
