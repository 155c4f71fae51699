// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/notion-export/pkg/types"
)

// QueryPublishable returns every page of the database whose publish
// checkbox is set, following pagination to the end.
func (c *Client) QueryPublishable(ctx context.Context) ([]types.PageMeta, error) {
	var pages []types.PageMeta
	cursor := ""
	for {
		body := map[string]any{
			"filter": map[string]any{
				"property": c.cfg.PublishProperty,
				"checkbox": map[string]any{"equals": true},
			},
		}
		if c.cfg.PageSize > 0 {
			body["page_size"] = c.cfg.PageSize
		}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		res, err := c.do(ctx, http.MethodPost, "/databases/"+c.databaseID+"/query", body)
		if err != nil {
			return nil, fmt.Errorf("querying database %s: %w", c.databaseID, err)
		}
		for _, page := range res.Get("results").Array() {
			pages = append(pages, decodePage(page, c.cfg))
		}

		if !res.Get("has_more").Bool() {
			return pages, nil
		}
		cursor = res.Get("next_cursor").String()
		if cursor == "" {
			return pages, nil
		}
	}
}

// MarkExported clears the publish checkbox of a page.
func (c *Client) MarkExported(ctx context.Context, pageID string) error {
	body := map[string]any{
		"properties": map[string]any{
			c.cfg.PublishProperty: map[string]any{"checkbox": false},
		},
	}
	if _, err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, body); err != nil {
		return fmt.Errorf("clearing %s on page %s: %w", c.cfg.PublishProperty, pageID, err)
	}
	return nil
}
