package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"civiscore/internal/util"
)

// APIError is a non-2xx response from the upstream legislative API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("congress api error %d: %s", e.Status, e.Message)
}

// Client talks to the upstream legislative data API. Every request carries the
// credential and response-format parameters, and a fixed pacing delay runs
// before it goes out: a short one for record-level detail fetches, a longer one
// for page fetches. The pacing is a static quota contract, not backoff, and
// there is no retry here; callers decide what a failed fetch means.
type Client struct {
	base        string
	apiKey      string
	httpClient  *http.Client
	recordDelay time.Duration
	pageDelay   time.Duration
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithDelays(record, page time.Duration) Option {
	return func(c *Client) {
		c.recordDelay = record
		c.pageDelay = page
	}
}

func NewClient(base, apiKey string, opts ...Option) *Client {
	c := &Client{
		base:        strings.TrimRight(base, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		recordDelay: 50 * time.Millisecond,
		pageDelay:   300 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch retrieves a single record-level document (bill detail, vote members).
func (c *Client) Fetch(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, path, query, out, c.recordDelay)
}

// FetchPage retrieves one listing page. Pagination looping belongs to the
// caller; the client returns exactly what the upstream returns.
func (c *Client) FetchPage(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, path, query, out, c.pageDelay)
}

func (c *Client) do(ctx context.Context, path string, query url.Values, out any, delay time.Duration) error {
	if c.apiKey == "" {
		return util.ErrMissingAPIKey
	}
	if err := pause(ctx, delay); err != nil {
		return err
	}
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	u := c.base + "/" + strings.TrimLeft(path, "/") + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build congress request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("congress request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode congress response: %w", err)
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
