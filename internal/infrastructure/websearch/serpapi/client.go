// Package serpapi queries the SerpAPI Google News engine for live sports
// results.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/infrastructure/resilience"
)

// queryAugmentation biases results toward the target domain. Fixed template,
// not user-configurable.
const queryAugmentation = " sports news NBA basketball"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey string, exec *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		exec:       exec,
	}
}

type serpResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serpResponse struct {
	NewsResults    []serpResult `json:"news_results"`
	OrganicResults []serpResult `json:"organic_results"`
}

// Search returns up to numResults unique results for the augmented query.
// News results rank ahead of organic ones; duplicates share a URL.
func (c *Client) Search(ctx context.Context, query string, numResults int) ([]domain.SearchResult, error) {
	if numResults <= 0 {
		numResults = 5
	}

	params := url.Values{
		"engine":  {"google"},
		"q":       {query + queryAugmentation},
		"api_key": {c.apiKey},
		"num":     {strconv.Itoa(numResults)},
		"tbm":     {"nws"},
	}
	reqURL := c.baseURL + "/search.json?" + params.Encode()

	var response serpResponse
	err := c.exec.Execute(ctx, "serpapi_search", func(callCtx context.Context) error {
		return c.getJSON(callCtx, reqURL, &response)
	}, classifySearchError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("search web", err)
	}

	return dedupeResults(response, numResults), nil
}

func dedupeResults(response serpResponse, numResults int) []domain.SearchResult {
	all := make([]serpResult, 0, len(response.NewsResults)+len(response.OrganicResults))
	all = append(all, response.NewsResults...)
	all = append(all, response.OrganicResults...)

	seen := make(map[string]struct{}, len(all))
	unique := make([]domain.SearchResult, 0, numResults)
	for _, r := range all {
		if r.Link == "" {
			continue
		}
		if _, ok := seen[r.Link]; ok {
			continue
		}
		seen[r.Link] = struct{}{}
		unique = append(unique, domain.SearchResult{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
		})
		if len(unique) >= numResults {
			break
		}
	}
	return unique
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("serpapi search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "serpapi status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("serpapi search status: %s", e.Status)
	}
	return fmt.Sprintf("serpapi search status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

func classifySearchError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		default:
			// Quota and key problems are terminal for the request.
			return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	class := classifySearchError(err)
	if class.Retryable || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}
