// Package jellyfin implements the Jellyfin catalog adapter over the
// Jellyfin REST API.
package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	URL        string
	APIKey     string
	Username   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	username   string
	httpClient *http.Client
	deviceID   string
	hostname   string

	// userID is resolved lazily from the configured username and cached
	// for the lifetime of the client (one command invocation).
	userID string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "plexjellyfin"
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
		apiKey:     cfg.APIKey,
		username:   cfg.Username,
		httpClient: httpClient,
		hostname:   hostname,
		deviceID:   fmt.Sprintf("plexjellyfin-%s-%d", hostname, time.Now().UnixNano()),
	}
}

func (c *Client) authHeader() string {
	return fmt.Sprintf(`MediaBrowser Token="%s", Client="plexjellyfin", Device="%s", DeviceId="%s", Version="1.0.0"`,
		c.apiKey, c.hostname, c.deviceID)
}

func (c *Client) request(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	rel, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	fullURL := base.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", c.authHeader())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
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
	resp, err := c.request(ctx, http.MethodGet, endpoint, nil)
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

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
		body = bytes.NewReader(jsonBytes)
	}

	resp, err := c.request(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	resp, err := c.request(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Ping verifies the server is reachable and the key is valid.
func (c *Client) Ping(ctx context.Context) error {
	var info SystemInfo
	if err := c.get(ctx, "/System/Info", &info); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// UserID resolves the configured username to a Jellyfin user GUID.
func (c *Client) UserID(ctx context.Context) (string, error) {
	if c.userID != "" {
		return c.userID, nil
	}

	var users []User
	if err := c.get(ctx, "/Users", &users); err != nil {
		return "", fmt.Errorf("listing users: %w", err)
	}

	for _, u := range users {
		if strings.EqualFold(u.Name, c.username) {
			c.userID = u.ID
			return c.userID, nil
		}
	}

	return "", fmt.Errorf("user %q not found on server", c.username)
}
