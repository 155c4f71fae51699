// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics collects per-run export counters and writes them in the
// node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page statuses used as the status label.
const (
	StatusExported = "exported"
	StatusFailed   = "failed"
)

// Run holds the metrics of one export run in its own registry.
type Run struct {
	registry *prometheus.Registry

	Pages             *prometheus.CounterVec
	Assets            prometheus.Counter
	UnsupportedBlocks *prometheus.CounterVec
	PageDuration      prometheus.Histogram
}

// NewRun returns a Run with all metrics registered.
func NewRun() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Run{
		registry: reg,
		Pages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notion_export_pages_total",
				Help: "Pages processed, by outcome",
			},
			[]string{"status"},
		),
		Assets: factory.NewCounter(prometheus.CounterOpts{
			Name: "notion_export_assets_total",
			Help: "Hosted files downloaded",
		}),
		UnsupportedBlocks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notion_export_unsupported_blocks_total",
				Help: "Blocks skipped because their kind has no rendering rule",
			},
			[]string{"kind"},
		),
		PageDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "notion_export_page_duration_seconds",
			Help:    "Time spent exporting one page",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
}

// ObservePage records the outcome and duration of one page.
func (r *Run) ObservePage(status string, d time.Duration) {
	r.Pages.WithLabelValues(status).Inc()
	r.PageDuration.Observe(d.Seconds())
}

// AssetSaved counts one downloaded asset.
func (r *Run) AssetSaved() {
	r.Assets.Inc()
}

// Unsupported counts one skipped block of the given raw kind.
func (r *Run) Unsupported(kind string) {
	r.UnsupportedBlocks.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes all metrics to path atomically.
func (r *Run) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
