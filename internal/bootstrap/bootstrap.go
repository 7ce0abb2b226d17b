package bootstrap

import (
	"log/slog"
	"time"

	"github.com/sportspulse/sportspulse/internal/config"
	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/core/ports"
	"github.com/sportspulse/sportspulse/internal/core/usecase"
	"github.com/sportspulse/sportspulse/internal/infrastructure/index"
	"github.com/sportspulse/sportspulse/internal/infrastructure/reader"
	"github.com/sportspulse/sportspulse/internal/infrastructure/resilience"
	"github.com/sportspulse/sportspulse/internal/infrastructure/webpage"
	"github.com/sportspulse/sportspulse/internal/infrastructure/websearch"
	"github.com/sportspulse/sportspulse/internal/infrastructure/websearch/serpapi"
	"github.com/sportspulse/sportspulse/internal/observability/metrics"
)

const ServiceName = "sportspulse-api"

type App struct {
	Config config.Config

	Service ports.QuestionService
	Metrics *metrics.Metrics
}

// New wires the process. Source setup failures degrade the corresponding
// capability instead of aborting startup: a missing corpus disables the
// knowledge base, a missing search credential disables web search. Both
// disabled still yields a working service that answers with the sentinel.
func New(cfg config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	exec := resilience.NewExecutor(resilience.DefaultConfig())
	extractor := reader.New(cfg.ReaderURL, cfg.ReaderModel, exec)

	var staticPipeline *usecase.SourcePipeline
	docs, err := index.LoadCorpus(cfg.CorpusPath)
	if err != nil {
		logger.Warn("static_corpus_unavailable", "path", cfg.CorpusPath, "error", err)
	} else {
		staticIndex := index.New(docs)
		staticPipeline = usecase.NewSourcePipeline(staticIndex, extractor)
		logger.Info("static_corpus_loaded", "path", cfg.CorpusPath, "documents", staticIndex.Size())
	}

	var webDocs ports.WebDocumentSource
	if cfg.WebEnabled() {
		searcher := serpapi.New(cfg.SerpAPIURL, cfg.SerpAPIKey, exec)
		fetcher := webpage.NewFetcher(time.Duration(cfg.FetchTimeoutSeconds) * time.Second)
		webDocs = websearch.NewDocumentSource(searcher, fetcher, logger)
		logger.Info("web_search_enabled", "results", cfg.WebResults)
	} else {
		logger.Warn("web_search_disabled", "reason", "SERPAPI_KEY not set")
	}

	buildIndex := ports.IndexBuilder(func(docs []domain.Document) ports.DocumentIndex {
		return index.New(docs)
	})

	service := usecase.NewAskUseCase(staticPipeline, extractor, webDocs, buildIndex, cfg.WebResults, logger)

	return &App{
		Config:  cfg,
		Service: service,
		Metrics: metrics.New(ServiceName),
	}
}
