// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notion-export/internal/httputil"
	"github.com/pdiddy/notion-export/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := apiBase
	apiBase = ts.URL + "/v1"
	t.Cleanup(func() { apiBase = old })

	log, _ := test.NewNullLogger()
	cfg := types.DefaultExportConfig()
	cfg.Timeout = 5 * time.Second
	return NewClient(context.Background(), "secret-token", "db1", cfg, log)
}

func TestQueryPublishable_RequestAndPagination(t *testing.T) {
	var calls int32
	var bodies []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, APIVersion, r.Header.Get("Notion-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)

		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":true,"next_cursor":"cur2"}`, pageJSON)
			return
		}
		fmt.Fprint(w, `{"object":"list","results":[{"id":"p2","properties":{}}],"has_more":false,"next_cursor":null}`)
	})

	pages, err := c.QueryPublishable(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Hello", pages[0].Title)
	assert.Equal(t, "p2", pages[1].ID)

	require.Len(t, bodies, 2)
	assert.Equal(t, map[string]any{
		"property": "Publish",
		"checkbox": map[string]any{"equals": true},
	}, bodies[0]["filter"])
	assert.NotContains(t, bodies[0], "start_cursor")
	assert.Equal(t, "cur2", bodies[1]["start_cursor"])
}

func TestLoadChildren_FollowsCursor(t *testing.T) {
	var cursors []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/blocks/parent/children", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("page_size"))
		cursor := r.URL.Query().Get("start_cursor")
		cursors = append(cursors, cursor)

		if cursor == "" {
			fmt.Fprint(w, `{"results":[
				{"id":"a","type":"paragraph","paragraph":{"rich_text":[{"type":"text","plain_text":"one"}]}},
				{"id":"b","type":"divider","divider":{}}],
				"has_more":true,"next_cursor":"c2"}`)
			return
		}
		fmt.Fprint(w, `{"results":[
			{"id":"c","type":"bulleted_list_item","bulleted_list_item":{"rich_text":[]}}],
			"has_more":false,"next_cursor":null}`)
	})

	blocks, err := c.LoadChildren(context.Background(), "parent")
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{blocks[0].ID, blocks[1].ID, blocks[2].ID})
	assert.Equal(t, types.KindBulletedListItem, blocks[2].Kind)
	assert.Equal(t, []string{"", "c2"}, cursors)
}

func TestRetrieveChildren_NoMore(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("page_size"))
		assert.Equal(t, "xyz", r.URL.Query().Get("start_cursor"))
		fmt.Fprint(w, `{"results":[],"has_more":false,"next_cursor":"ignored"}`)
	})

	blocks, next, err := c.RetrieveChildren(context.Background(), "blk", 7, "xyz")
	require.NoError(t, err)
	assert.Empty(t, blocks)
	assert.Empty(t, next)
}

func TestMarkExported(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/pages/page-1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"object":"page","id":"page-1"}`)
	})

	require.NoError(t, c.MarkExported(context.Background(), "page-1"))
	assert.Equal(t, map[string]any{
		"properties": map[string]any{
			"Publish": map[string]any{"checkbox": false},
		},
	}, got)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find block."}`)
	})

	_, err := c.LoadChildren(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "object_not_found", apiErr.Code)
	assert.Contains(t, err.Error(), "Could not find block.")
}

func TestAPIError_NonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream down")
	})

	err := c.MarkExported(context.Background(), "p")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Code)
}

func TestRateLimitReplaysBody(t *testing.T) {
	old := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = old })

	var calls int32
	var lastBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		lastBody = string(data)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"object":"page"}`)
	})

	require.NoError(t, c.MarkExported(context.Background(), "p"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.JSONEq(t, `{"properties":{"Publish":{"checkbox":false}}}`, lastBody)
}
