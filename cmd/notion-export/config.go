// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notion-export/pkg/types"
)

// secretsDir holds credential files, see internal/secrets.
const secretsDir = ".secrets/"

// setDefaults registers the default value of every config key.
func setDefaults(v *viper.Viper) {
	d := types.DefaultExportConfig()
	v.SetDefault("content_dir", d.ContentDir)
	v.SetDefault("publish_property", d.PublishProperty)
	v.SetDefault("slug_property", d.SlugProperty)
	v.SetDefault("date_property", d.DateProperty)
	v.SetDefault("properties", d.Properties)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("continue_on_error", d.ContinueOnError)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("page_link_base", d.PageLinkBase)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("ledger_path", d.LedgerPath)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("log_level", "info")
}

// loadExportConfig reads the export settings from v. Zero values fall back
// to the defaults.
func loadExportConfig(v *viper.Viper) types.ExportConfig {
	cfg := types.DefaultExportConfig()

	if s := v.GetString("content_dir"); s != "" {
		cfg.ContentDir = s
	}
	if s := v.GetString("publish_property"); s != "" {
		cfg.PublishProperty = s
	}
	if s := v.GetString("slug_property"); s != "" {
		cfg.SlugProperty = s
	}
	if s := v.GetString("date_property"); s != "" {
		cfg.DateProperty = s
	}
	if v.IsSet("properties") {
		cfg.Properties = v.GetStringSlice("properties")
	}
	if n := v.GetInt("workers"); n > 0 {
		cfg.Workers = n
	}
	if v.IsSet("continue_on_error") {
		cfg.ContinueOnError = v.GetBool("continue_on_error")
	}
	cfg.DryRun = v.GetBool("dry_run")
	if n := v.GetInt("page_size"); n > 0 {
		cfg.PageSize = n
	}
	if s := v.GetString("page_link_base"); s != "" {
		cfg.PageLinkBase = s
	}
	if d := v.GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	if s := v.GetString("user_agent"); s != "" {
		cfg.UserAgent = s
	}
	if v.IsSet("ledger_path") {
		cfg.LedgerPath = v.GetString("ledger_path")
	}
	cfg.MetricsFile = v.GetString("metrics_file")
	return cfg
}

// newLogger returns a stderr logger at the named level.
func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(lvl)
	return log, nil
}

func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func bindPersistentFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
