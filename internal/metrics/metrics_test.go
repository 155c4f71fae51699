// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePage(t *testing.T) {
	r := NewRun()
	r.ObservePage(StatusExported, 200*time.Millisecond)
	r.ObservePage(StatusExported, time.Second)
	r.ObservePage(StatusFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Pages.WithLabelValues(StatusExported)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Pages.WithLabelValues(StatusFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.PageDuration))
}

func TestCounters(t *testing.T) {
	r := NewRun()
	r.AssetSaved()
	r.AssetSaved()
	r.Unsupported("synced_block")
	r.Unsupported("synced_block")
	r.Unsupported("breadcrumb")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Assets))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.UnsupportedBlocks.WithLabelValues("synced_block")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.UnsupportedBlocks))
}

func TestRunsAreIndependent(t *testing.T) {
	a, b := NewRun(), NewRun()
	a.AssetSaved()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Assets))
}

func TestWriteFile(t *testing.T) {
	r := NewRun()
	r.ObservePage(StatusExported, time.Second)
	r.AssetSaved()

	path := filepath.Join(t.TempDir(), "notion_export.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `notion_export_pages_total{status="exported"} 1`)
	assert.Contains(t, text, "notion_export_assets_total 1")
	assert.True(t, strings.Contains(text, "notion_export_page_duration_seconds_count 1"))
}

func TestWriteFileBadPath(t *testing.T) {
	r := NewRun()
	err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.Error(t, err)
}
