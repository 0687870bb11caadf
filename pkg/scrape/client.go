package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single upstream fetch end to end.
	DefaultTimeout = 12 * time.Second

	maxBodySize = 10 * 1024 * 1024

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrFetchTimeout is the cancellation cause attached to a fetch that runs out
// of time. Callers classify timeouts with errors.Is against this sentinel,
// never by inspecting error text.
var ErrFetchTimeout = errors.New("upstream request timed out")

// UpstreamError reports a non-2xx response from the source site or API. It is
// produced by callers of Fetch when the outcome is not OK.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

// FetchOutcome is the result of one bounded fetch. A non-2xx response is not
// an error: OK is false, Status holds the upstream code and Body is empty.
type FetchOutcome struct {
	OK     bool
	Status int
	Body   string
}

// Client performs bounded-time GETs against a source site with browser-like
// headers. It is safe for concurrent use; every call carries its own timeout
// and the zero shared state beyond the underlying http.Client.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration

	// APIKey, when set, is attached as an X-Api-Key header on every request.
	// Used only for structured-API sources.
	APIKey string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// Fetch GETs rawURL and returns its outcome. HTTP-level failure (non-2xx) is
// reported through the outcome; only transport failure (timeout, DNS,
// connection reset) returns an error. Timeouts carry ErrFetchTimeout.
func (c *Client) Fetch(ctx context.Context, rawURL string) (FetchOutcome, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, ErrFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchOutcome{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FetchOutcome{}, fmt.Errorf("fetch %s: %w", rawURL, fetchCause(ctx, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FetchOutcome{OK: false, Status: resp.StatusCode}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return FetchOutcome{}, fmt.Errorf("read body of %s: %w", rawURL, fetchCause(ctx, err))
	}

	return FetchOutcome{OK: true, Status: resp.StatusCode, Body: string(body)}, nil
}

// fetchCause substitutes the context's cancellation cause for err when the
// request was cut off by the fetch deadline, so a timeout surfaces as
// ErrFetchTimeout instead of a generic transport error.
func fetchCause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrFetchTimeout) {
		return ErrFetchTimeout
	}
	return err
}
