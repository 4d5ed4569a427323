// ABOUTME: HTTP fetcher that retrieves raw feed documents with a bounded timeout.
// ABOUTME: Surfaces network errors and non-2xx statuses as errors with DoS protection via a response size limit.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// DefaultTimeout bounds a fetch when the caller supplies no other limit.
const DefaultTimeout = 30 * time.Second

// Client fetches remote feed documents.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetcher whose requests time out after the given
// duration. A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves a URL and returns the raw response body.
// Returns an error for network failures and for any non-200 status code.
// The body is capped at MaxResponseSize to protect against runaway responses.
func (c *Client) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "currents/1.0 (RSS reader)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return body, nil
}
