// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notion-export CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd exports the publishable pages of one database.
var rootCmd = &cobra.Command{
	Use:   "notion-export <token> <database-id>",
	Short: "Export published Notion pages as Hugo Markdown",
	Long: `notion-export queries a Notion database for pages whose publish checkbox is
set, renders each page to Markdown with YAML front matter, downloads its
hosted images and files next to the document, and clears the checkbox once
the page is written.

Documents land under the content directory: dated pages at
post/<year>/<month>/<day>/<slug>/index.md, slugs starting with "/" at
<slug>/index.md.

Pass "-" as the token to read it from .secrets/notion-token.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runExport,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notion-export.yaml or ~/.config/notion-export/notion-export.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("ledger", "", "export history database (default .notion-export/ledger.db)")

	rootCmd.Flags().String("content-dir", "", "root of the site content tree (default content)")
	rootCmd.Flags().Int("workers", 0, "pages exported concurrently (default 1)")
	rootCmd.Flags().Bool("continue-on-error", true, "keep going after a page fails")
	rootCmd.Flags().Bool("dry-run", false, "write output but leave publish checkboxes set")
	rootCmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics here after the run")

	bindFlags(rootCmd, map[string]string{
		"content_dir":       "content-dir",
		"workers":           "workers",
		"continue_on_error": "continue-on-error",
		"dry_run":           "dry-run",
		"metrics_file":      "metrics-file",
	})
	bindPersistentFlags(rootCmd, map[string]string{
		"log_level":   "log-level",
		"ledger_path": "ledger",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notion-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notion-export"))
		}
	}

	viper.SetEnvPrefix("NOTION_EXPORT")
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
