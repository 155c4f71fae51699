// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notion-export/pkg/types"
)

func TestLoadExportConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	assert.Equal(t, types.DefaultExportConfig(), loadExportConfig(v))
}

func TestLoadExportConfigFromYAML(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
content_dir: site/content
publish_property: Ready
slug_property: URL
date_property: Published
properties: [Tags, Draft]
workers: 4
continue_on_error: false
dry_run: true
page_size: 50
timeout: 10s
ledger_path: ""
metrics_file: /var/lib/node_exporter/notion_export.prom
`)))

	cfg := loadExportConfig(v)
	assert.Equal(t, "site/content", cfg.ContentDir)
	assert.Equal(t, "Ready", cfg.PublishProperty)
	assert.Equal(t, "URL", cfg.SlugProperty)
	assert.Equal(t, "Published", cfg.DateProperty)
	assert.Equal(t, []string{"Tags", "Draft"}, cfg.Properties)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.ContinueOnError)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.LedgerPath)
	assert.Equal(t, "/var/lib/node_exporter/notion_export.prom", cfg.MetricsFile)
}

func TestLoadExportConfigEnv(t *testing.T) {
	t.Setenv("NOTION_EXPORT_WORKERS", "8")
	t.Setenv("NOTION_EXPORT_CONTENT_DIR", "out")

	v := viper.New()
	v.SetEnvPrefix("NOTION_EXPORT")
	v.AutomaticEnv()
	setDefaults(v)

	cfg := loadExportConfig(v)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "out", cfg.ContentDir)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}
