// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used for Notion API calls and asset
// downloads.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notion-export/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExportConfig holds settings for an export run.
type ExportConfig struct {
	HTTPConfig `yaml:",inline"`

	// ContentDir is the root of the static-site content tree (default "content").
	ContentDir string `json:"content_dir" yaml:"content_dir"`

	// PublishProperty is the checkbox property selecting pages to export.
	PublishProperty string `json:"publish_property" yaml:"publish_property"`

	// SlugProperty is the rich text property holding the page slug.
	SlugProperty string `json:"slug_property" yaml:"slug_property"`

	// DateProperty is the date property holding the publish date.
	DateProperty string `json:"date_property" yaml:"date_property"`

	// Properties lists the optional front matter properties, in output order.
	Properties []string `json:"properties" yaml:"properties"`

	// Workers is the number of pages exported concurrently (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// ContinueOnError keeps the batch going after a page fails.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error"`

	// DryRun writes output but leaves the publish flags untouched.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// PageSize is the page size hint for block children requests.
	PageSize int `json:"page_size" yaml:"page_size"`

	// PageLinkBase prefixes child page deep links.
	PageLinkBase string `json:"page_link_base" yaml:"page_link_base"`

	// LedgerPath is the SQLite export history database. Empty disables it.
	LedgerPath string `json:"ledger_path" yaml:"ledger_path"`

	// MetricsFile receives Prometheus textfile metrics after a run. Empty
	// disables it.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

// DefaultExportConfig returns the configuration used when nothing is
// overridden.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "notion-export/0.1",
		},
		ContentDir:      "content",
		PublishProperty: "Publish",
		SlugProperty:    "Slug",
		DateProperty:    "Date",
		Properties:      []string{"Description", "Tags", "Categories", "Draft", "Keywords", "Aliases"},
		Workers:         1,
		ContinueOnError: true,
		PageSize:        100,
		PageLinkBase:    "https://www.notion.so/",
		LedgerPath:      ".notion-export/ledger.db",
	}
}
