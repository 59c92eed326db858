// Package upload has the recap service client, key persistence and
// interactive prompts.
package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"

	"github.com/maxbolgarin/cliex"
)

const (
	// reportPath is the service endpoint receiving recap payloads,
	// relative to the configured server URL.
	reportPath = "api/report"

	// requestTimeout bounds a single upload round trip.
	requestTimeout = 30 * time.Second

	userAgent = "gitrecap/1.0 (https://github.com/gitrecap/gitrecap)"
)

// Client talks to the recap service over HTTP.
type Client struct {
	http *cliex.HTTP
}

var _ contract.Uploader = (*Client)(nil)

// NewClient builds an upload client for the recap service configured in cfg.
func NewClient(cfg *contract.Config) (*Client, error) {
	cli, err := cliex.NewWithConfig(cliex.Config{
		BaseURL:        cfg.ServerURL,
		UserAgent:      userAgent,
		RequestTimeout: requestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return &Client{http: cli}, nil
}

// Send POSTs the payload to the report endpoint and decodes the response.
// A response with Success false is not an error here; the caller decides
// how to surface the server-side reason.
func (c *Client) Send(ctx context.Context, payload *schema.UploadPayload) (*schema.UploadResponse, error) {
	var resp schema.UploadResponse
	if _, err := c.http.Post(ctx, reportPath, payload, &resp); err != nil {
		return nil, fmt.Errorf("recap service request failed: %w", err)
	}
	return &resp, nil
}
