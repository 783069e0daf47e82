package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
)

// Client fetches activity content over HTTP. One fetch is a single blocking
// GET bounded by the configured timeout; there are no retries.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client whose requests time out after the given duration.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// FetchVariables retrieves the JSON document at url and extracts the template
// variables from it. A transport error, non-2xx status, or undecodable body
// fails the fetch as a whole; callers fall back to empty variables.
func (c *Client) FetchVariables(ctx context.Context, url string) (prompt.Variables, error) {
	if url == "" {
		return nil, fmt.Errorf("content URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("content endpoint returned %d", resp.StatusCode)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse JSON response: %w", err)
	}

	return Extract(doc), nil
}
