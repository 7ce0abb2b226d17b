package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/observability/logging"
)

// The indexer converts scraped article dumps into the corpus file the API
// loads at startup. Articles without content are dropped; every kept
// document gets a stable id in its metadata.
func main() {
	in := flag.String("in", "processed_articles.json", "path to the processed articles file")
	out := flag.String("out", "models/documents.json", "path to write the corpus file")
	flag.Parse()

	logger := logging.NewJSONLogger("sportspulse-indexer", os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("read_articles_failed", "path", *in, "error", err)
		os.Exit(1)
	}

	var articles []domain.Document
	if err := json.Unmarshal(raw, &articles); err != nil {
		logger.Error("parse_articles_failed", "path", *in, "error", err)
		os.Exit(1)
	}

	docs := make([]domain.Document, 0, len(articles))
	skipped := 0
	for _, article := range articles {
		if strings.TrimSpace(article.Content) == "" {
			skipped++
			continue
		}
		if article.Meta == nil {
			article.Meta = map[string]any{}
		}
		if _, ok := article.Meta["id"]; !ok {
			article.Meta["id"] = uuid.NewString()
		}
		docs = append(docs, article)
	}

	if len(docs) == 0 {
		logger.Error("no_usable_articles", "path", *in, "skipped", skipped)
		os.Exit(1)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("create_output_dir_failed", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	encoded, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		logger.Error("encode_corpus_failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		logger.Error("write_corpus_failed", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("corpus_written", "path", *out, "documents", len(docs), "skipped", skipped)
}
