// Package suggest calls the external suggestion collaborator: given a
// free-text prompt and the catalog's calculator names, it returns the subset
// the collaborator considers relevant. Returned names are trusted as-is, so
// callers must tolerate names that are not in the catalog.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// request is the collaborator's wire format.
type request struct {
	Prompt          string   `json:"prompt"`
	CalculatorNames []string `json:"calculatorNames"`
}

// Client posts suggestion requests to one collaborator endpoint.
type Client struct {
	http  *retryablehttp.Client
	url   string
	token string
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each request attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.HTTPClient.Timeout = d }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// NewClient creates a suggestion client for the given endpoint URL.
func NewClient(url string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 2
	retryClient.HTTPClient.Timeout = 10 * time.Second

	c := &Client{http: retryClient, url: url}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Suggest asks the collaborator which of the named calculators fit the
// prompt. The returned names are not validated against names.
func (c *Client) Suggest(ctx context.Context, prompt string, names []string) ([]string, error) {
	payload, err := json.Marshal(request{Prompt: prompt, CalculatorNames: names})
	if err != nil {
		return nil, fmt.Errorf("encode suggestion request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, payload)
	if err != nil {
		return nil, fmt.Errorf("build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call suggestion service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read suggestion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion service returned %s", resp.Status)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("suggestion response is not valid JSON")
	}

	result := gjson.GetBytes(body, "suggestedCalculators")
	if !result.Exists() {
		return nil, fmt.Errorf("suggestion response has no suggestedCalculators field")
	}
	items := result.Array()
	suggested := make([]string, 0, len(items))
	for _, item := range items {
		suggested = append(suggested, item.String())
	}
	return suggested, nil
}
