// Package objstore is a thin REST client for the hosted object storage
// service that keeps the profile images. It covers the two calls the app
// needs: upload an object and derive its public URL.
package objstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config configures the storage client.
type Config struct {
	// BaseURL is the project URL of the storage service.
	BaseURL string
	// APIKey is sent as a bearer token on every request.
	APIKey string
	// Bucket is the bucket objects are written to.
	Bucket string
}

// Client performs storage REST calls over plain HTTP.
type Client struct {
	cfg        Config
	prefix     string
	httpClient *http.Client
}

// New creates a storage client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("storage base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("storage API key is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	return &Client{
		cfg:        cfg,
		prefix:     strings.TrimRight(cfg.BaseURL, "/") + "/storage/v1/object",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Upload writes an object to the bucket.
func (c *Client) Upload(ctx context.Context, objectPath string, data []byte, contentType string) error {
	if objectPath == "" {
		return fmt.Errorf("object path is required")
	}

	endpoint := c.prefix + "/" + c.cfg.Bucket + "/" + escapePath(objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// PublicURL returns the public URL of an object in the bucket.
func (c *Client) PublicURL(objectPath string) string {
	return c.prefix + "/public/" + c.cfg.Bucket + "/" + escapePath(objectPath)
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
