// Package chuck is the gateway to the chucknorris.io joke API.
//
// The upstream is a black box with two operations: fetch the category list
// and fetch a random joke, optionally filtered by category. Every failure
// mode — transport error, timeout, non-success status — collapses into the
// single domain.ErrUpstreamUnavailable condition. No retries.
package chuck

import (
	"context"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
	"jokebox/src/infra/config"
)

// Client wraps the upstream joke API behind the JokeFeed port.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

var _ ports.JokeFeed = (*Client)(nil)

// New creates a gateway client with the configured base URL and per-call
// timeout. The timeout is the only bound; exceeding it is treated the same
// as any other transport failure.
func New(cfg config.FeedConfig, log *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout),
		log: log,
	}
}

// randomPayload mirrors the upstream random-joke response body.
type randomPayload struct {
	ID         string   `json:"id"`
	Value      string   `json:"value"`
	Categories []string `json:"categories"`
}

// Categories fetches the list of joke categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&categories).
		Get("/categories")
	if err != nil {
		c.log.Warn("categories fetch failed", "error", err)
		return nil, domain.NewUpstreamError("failed to fetch categories")
	}
	if !resp.IsSuccess() {
		c.log.Warn("categories fetch failed", "status", resp.StatusCode())
		return nil, domain.NewUpstreamError("failed to fetch categories")
	}
	return categories, nil
}

// Random fetches a random joke, optionally filtered by category.
// The normalized category is the first of the upstream's reported list.
func (c *Client) Random(ctx context.Context, category string) (*ports.RandomJoke, error) {
	var payload randomPayload
	req := c.http.R().
		SetContext(ctx).
		SetResult(&payload)
	if category != "" {
		req.SetQueryParam("category", category)
	}

	resp, err := req.Get("/random")
	if err != nil {
		c.log.Warn("random fetch failed", "error", err)
		return nil, domain.NewUpstreamError("failed to fetch joke")
	}
	if !resp.IsSuccess() {
		c.log.Warn("random fetch failed", "status", resp.StatusCode())
		return nil, domain.NewUpstreamError("failed to fetch joke")
	}

	joke := &ports.RandomJoke{
		ExternalID: payload.ID,
		Value:      payload.Value,
	}
	if len(payload.Categories) > 0 {
		joke.Category = &payload.Categories[0]
	}
	return joke, nil
}
