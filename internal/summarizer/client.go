// Package summarizer calls the remote summarization API.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"newsum/internal/config"
	"newsum/internal/summary"
)

// DefaultPath is the summarize endpoint on the API origin.
const DefaultPath = "/api/summarize"

// User-facing failure messages.
const (
	MessageUnreachable = "기사 본문을 가져올 수 없거나 너무 짧습니다."
	MessageServerError = "서버 오류가 발생했습니다."
	MessagePrefix      = "요약 실패: "
)

// ErrEmptyURL is returned when Summarize is called without a URL.
var ErrEmptyURL = errors.New("url is required")

// APIError is a non-2xx answer from the summarization API. Body holds the
// response body as plain text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("summarize API returned status %d: %s", e.StatusCode, e.Body)
}

// Client issues one request per Summarize call. There is no retry.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL (scheme and host, e.g.
// "http://127.0.0.1:8000"). A zero timeout means no client-side timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       DefaultPath,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientFromConfig builds a Client from the api section of cfg.
func NewClientFromConfig(cfg *config.Config) *Client {
	c := NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	if cfg.API.Path != "" {
		c.path = cfg.API.Path
	}
	return c
}

// Endpoint is the full URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL + c.path
}

type summarizeRequest struct {
	URL string `json:"url"`
}

// Summarize sends articleURL to the API and returns the three summary variants.
func (c *Client) Summarize(ctx context.Context, articleURL string) (*summary.Summary, error) {
	articleURL = strings.TrimSpace(articleURL)
	if articleURL == "" {
		return nil, ErrEmptyURL
	}

	jsonData, err := json.Marshal(summarizeRequest{URL: articleURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Summarizer] request for %s failed: %v", articleURL, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		log.Printf("[Summarizer] %s answered %d for %s", c.Endpoint(), resp.StatusCode, articleURL)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result summary.Summary
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[Summarizer] ✓ %s summarized in %s (id=%s)", articleURL, time.Since(start).Round(time.Millisecond), result.ID)
	return &result, nil
}

// UserMessage maps a Summarize error to the message shown to the user:
// status 422 means the article body was unreachable or too short, anything
// else is reported as a generic server error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if StatusCode(err) == http.StatusUnprocessableEntity {
		return MessageUnreachable
	}
	return MessageServerError
}

// StatusCode returns the HTTP status carried by err, or 0 for transport errors.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
