// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/notion-export/internal/httputil"
	"github.com/pdiddy/notion-export/pkg/types"
)

// HTTPFetcher downloads resources over plain HTTP. It must not share the
// Notion API client: hosted file URLs are pre-signed and reject extra
// Authorization headers.
type HTTPFetcher struct {
	client *http.Client
	cfg    types.HTTPConfig
	log    logrus.FieldLogger
}

// NewHTTPFetcher returns a fetcher using client.
func NewHTTPFetcher(client *http.Client, cfg types.HTTPConfig, log logrus.FieldLogger) *HTTPFetcher {
	return &HTTPFetcher{client: client, cfg: cfg, log: log}
}

// Fetch issues a GET for rawURL and returns the response body. The caller
// closes it.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0, f.log)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Redacted())
	}
	return resp.Body, nil
}
