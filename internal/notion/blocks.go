// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/notion-export/pkg/types"
)

// RetrieveChildren fetches one page of a block's children. next is empty
// when there are no more results.
func (c *Client) RetrieveChildren(ctx context.Context, blockID string, pageSize int, cursor string) (blocks []types.Block, next string, err error) {
	params := url.Values{}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	if cursor != "" {
		params.Set("start_cursor", cursor)
	}
	path := "/blocks/" + blockID + "/children"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("retrieving children of %s: %w", blockID, err)
	}
	for _, raw := range res.Get("results").Array() {
		blocks = append(blocks, decodeBlock(raw))
	}
	if res.Get("has_more").Bool() {
		next = res.Get("next_cursor").String()
	}
	return blocks, next, nil
}

// LoadChildren returns the complete, ordered child list of a block.
func (c *Client) LoadChildren(ctx context.Context, blockID string) ([]types.Block, error) {
	var all []types.Block
	cursor := ""
	for {
		blocks, next, err := c.RetrieveChildren(ctx, blockID, c.cfg.PageSize, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, blocks...)
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}
