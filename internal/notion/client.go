// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notion is a minimal client for the Notion REST API covering the
// calls an export needs: querying a database for publishable pages, reading
// block children, and clearing the publish checkbox.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/pdiddy/notion-export/internal/httputil"
	"github.com/pdiddy/notion-export/pkg/types"
)

// apiBase is the Notion API root. Declared as a var so tests can substitute
// an httptest server.
var apiBase = "https://api.notion.com/v1"

// APIVersion is sent as the Notion-Version header on every request.
const APIVersion = "2022-06-28"

// APIError is returned for non-2xx responses from the Notion API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion API returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("notion API returned HTTP %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client talks to the Notion API on behalf of one integration token and
// one database.
type Client struct {
	http       *http.Client
	databaseID string
	cfg        types.ExportConfig
	log        logrus.FieldLogger
}

// NewClient returns a Client authenticating with token. The HTTP client
// used underneath is taken from ctx (oauth2.HTTPClient) when present.
func NewClient(ctx context.Context, token, databaseID string, cfg types.ExportConfig, log logrus.FieldLogger) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(ctx, src)
	hc.Timeout = cfg.Timeout
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{http: hc, databaseID: databaseID, cfg: cfg, log: log}
}

// do sends a request to path under apiBase and returns the parsed response
// body. body is JSON-encoded when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBase+path, reader)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Notion-Version", APIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0, c.log)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if gjson.ValidBytes(data) {
			parsed := gjson.ParseBytes(data)
			apiErr.Code = parsed.Get("code").String()
			apiErr.Message = parsed.Get("message").String()
		}
		return gjson.Result{}, fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%s %s: invalid JSON response", method, path)
	}
	return gjson.ParseBytes(data), nil
}
