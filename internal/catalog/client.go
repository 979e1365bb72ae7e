// Package catalog queries an external book-metadata API by ISBN or title.
package catalog

import (
	"context"
	"github.com/go-json-experiment/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// notFound is the canonical empty result. Items is non-nil so JSON encodes
// it as [] rather than null.
var notFound = Result{Found: false, Items: []Volume{}}

// Client provides access to the external book catalog API.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new catalog client.
// Rate limited to one request per second with a small burst, so a misbehaving
// caller cannot exhaust the upstream quota.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
	}
}

// Search looks up books in the catalog. ISBN queries take precedence over
// title queries. Every failure mode collapses into a not-found result: the
// catalog is a best-effort enrichment source and callers never need to
// distinguish "upstream down" from "no matches".
func (c *Client) Search(ctx context.Context, q Query) Result {
	term := c.searchTerm(q)
	if term == "" {
		return notFound
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.logger.Warn("catalog rate limit wait aborted", "error", err)
		return notFound
	}

	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	params.Set("q", term)

	searchURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("searching catalog", "term", term)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		c.logger.Warn("catalog request build failed", "error", err)
		return notFound
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", "error", err)
		return notFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog returned non-OK status", "status", resp.StatusCode)
		return notFound
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		c.logger.Warn("catalog response parse failed", "error", err)
		return notFound
	}

	if searchResp.TotalItems == 0 || len(searchResp.Items) == 0 {
		return notFound
	}

	return Result{Found: true, Items: searchResp.Items}
}

// searchTerm builds the upstream query term for a Query.
func (c *Client) searchTerm(q Query) string {
	if isbn := strings.TrimSpace(q.ISBN); isbn != "" {
		return "isbn:" + isbn
	}
	return strings.TrimSpace(q.Title)
}
