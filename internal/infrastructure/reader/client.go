// Package reader fronts an extractive question-answering model server. The
// server runs a span-extraction model (deepset/roberta-base-squad2 by
// default) and scores answer spans against the supplied documents.
package reader

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, model string, exec *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		exec:       exec,
	}
}

type extractRequest struct {
	Model     string   `json:"model"`
	Question  string   `json:"question"`
	Documents []string `json:"documents"`
	TopK      int      `json:"top_k"`
}

type extractResponse struct {
	Answers []struct {
		Answer        string  `json:"answer"`
		Score         float64 `json:"score"`
		DocumentIndex int     `json:"document_index"`
	} `json:"answers"`
}

// Extract returns the topK scored answer spans for the question over docs.
// Answers keep a reference to the document they were extracted from;
// out-of-range attribution from the server yields a nil document.
func (c *Client) Extract(ctx context.Context, question string, docs []domain.Document, topK int) ([]domain.Candidate, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Content)
	}

	request := extractRequest{
		Model:     c.model,
		Question:  question,
		Documents: texts,
		TopK:      topK,
	}

	var response extractResponse
	err := c.exec.Execute(ctx, "reader_extract", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/v1/extract", request, &response, "extract")
	}, classifyReaderError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("extract answers", err)
	}

	candidates := make([]domain.Candidate, 0, len(response.Answers))
	for _, ans := range response.Answers {
		candidate := domain.Candidate{
			Answer: ans.Answer,
			Score:  ans.Score,
		}
		if ans.DocumentIndex >= 0 && ans.DocumentIndex < len(docs) {
			candidate.Document = &docs[ans.DocumentIndex]
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
