// Package fetch retrieves profile documents and assets from a remote
// registry over plain HTTP GET. No retries happen at this layer; a failed
// fetch surfaces to the caller, who decides whether to re-request.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/vk/xrprofiles/internal/ctxlog"
)

// ProfileListFile is the well-known index document a remote registry serves.
const ProfileListFile = "profilesList.json"

// ListEntry is one entry of the remote registry's index: where the profile
// document lives relative to the registry base URL.
type ListEntry struct {
	Path       string `json:"path"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

// Client fetches registry content from a base URL.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client for the given registry base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &Client{http: c}
}

// Close releases the underlying HTTP client's resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// ProfileList fetches and decodes the registry's index document, keyed by
// profile id.
func (c *Client) ProfileList(ctx context.Context) (map[string]ListEntry, error) {
	raw, err := c.get(ctx, ProfileListFile)
	if err != nil {
		return nil, err
	}
	var list map[string]ListEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ProfileListFile, err)
	}
	return list, nil
}

// ProfileDocument fetches the raw bytes of one profile document. Validation
// and expansion stay with the registry loader; this only moves bytes.
func (c *Client) ProfileDocument(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, path)
}

// Asset fetches the raw bytes of a 3D model or other asset file.
func (c *Client) Asset(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, path)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Fetching remote registry file.", "path", path)

	res, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: registry returned %s", path, res.Status())
	}
	return res.Bytes(), nil
}
