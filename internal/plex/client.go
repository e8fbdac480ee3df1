// Package plex implements the Plex catalog adapter over the Plex Media
// Server HTTP API (JSON responses, token auth).
package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	URL        string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	} else if httpClient.Timeout == 0 {
		// Copy so the caller's shared client is not mutated.
		clone := *httpClient
		clone.Timeout = timeout
		httpClient = &clone
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

func (c *Client) request(ctx context.Context, method, endpoint string) (*http.Response, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	rel, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	fullURL := base.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Plex defaults to XML; ask for JSON.
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Plex-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}

func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	resp, err := c.request(ctx, http.MethodGet, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// Ping verifies the server is reachable and the token is valid.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.get(ctx, "/identity", nil); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Sections returns the server's library sections.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	var resp sectionsResponse
	if err := c.get(ctx, "/library/sections", &resp); err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	return resp.MediaContainer.Directory, nil
}

// SectionItems returns every item in a library section.
func (c *Client) SectionItems(ctx context.Context, sectionKey string) ([]Metadata, error) {
	var resp metadataResponse
	if err := c.get(ctx, "/library/sections/"+sectionKey+"/all", &resp); err != nil {
		return nil, fmt.Errorf("listing section %s: %w", sectionKey, err)
	}
	return resp.MediaContainer.Metadata, nil
}

// Episodes returns all episodes of a show across seasons.
func (c *Client) Episodes(ctx context.Context, showRatingKey string) ([]Metadata, error) {
	var resp metadataResponse
	if err := c.get(ctx, "/library/metadata/"+showRatingKey+"/allLeaves", &resp); err != nil {
		return nil, fmt.Errorf("listing episodes of %s: %w", showRatingKey, err)
	}
	return resp.MediaContainer.Metadata, nil
}

// Scrobble marks an item watched (true) or unwatched (false).
func (c *Client) Scrobble(ctx context.Context, ratingKey string, watched bool) error {
	action := "scrobble"
	if !watched {
		action = "unscrobble"
	}

	query := url.Values{}
	query.Set("key", ratingKey)
	query.Set("identifier", "com.plexapp.plugins.library")

	resp, err := c.request(ctx, http.MethodGet, "/:/"+action+"?"+query.Encode())
	if err != nil {
		return fmt.Errorf("%s %s: %w", action, ratingKey, err)
	}
	resp.Body.Close()
	return nil
}
