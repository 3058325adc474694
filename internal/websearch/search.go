// Package websearch queries the Serper web search API and renders results as
// prompt context.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/tidwall/gjson"

	"github.com/jonathan/hs-advisor/internal/sanitize"
)

const (
	// DefaultEndpoint is the Serper search endpoint
	DefaultEndpoint = "https://google.serper.dev/search"
	// DefaultNumResults is how many results are requested when num <= 0
	DefaultNumResults = 3
	// DefaultTimeout bounds each HTTP attempt
	DefaultTimeout = 15 * time.Second
	// DefaultAttempts is the number of tries for transient failures
	DefaultAttempts = 3

	maxErrorBody = 512
)

// Result is one organic search result
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Client calls the search API
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the search endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRetry sets the number of attempts and the base delay between them
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.delay = delay
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a search client. An empty apiKey is allowed; Search then
// reports ErrNoAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		attempts:   DefaultAttempts,
		delay:      500 * time.Millisecond,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// Search returns up to num organic results for query
func (c *Client) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if num <= 0 {
		num = DefaultNumResults
	}

	payload, err := json.Marshal(searchRequest{Query: query, Num: num})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	var body []byte
	err = retry.Do(
		func() error {
			var doErr error
			body, doErr = c.post(ctx, payload)
			return doErr
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("web search attempt failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	results := parseResults(body)
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	c.logger.Debug("web search completed", "query", query, "results", len(results))
	return results, nil
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}
	return body, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

func parseResults(body []byte) []Result {
	organic := gjson.GetBytes(body, "organic").Array()
	results := make([]Result, 0, len(organic))
	for _, item := range organic {
		results = append(results, Result{
			Title:   sanitize.StripTags(item.Get("title").String()),
			Snippet: sanitize.StripTags(item.Get("snippet").String()),
			Link:    item.Get("link").String(),
		})
	}
	return results
}
