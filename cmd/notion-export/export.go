// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notion-export/internal/asset"
	"github.com/pdiddy/notion-export/internal/export"
	"github.com/pdiddy/notion-export/internal/ledger"
	"github.com/pdiddy/notion-export/internal/metrics"
	"github.com/pdiddy/notion-export/internal/notion"
	"github.com/pdiddy/notion-export/internal/secrets"
)

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadExportConfig(viper.GetViper())

	log, err := newLogger(viper.GetString("log_level"))
	if err != nil {
		return err
	}

	token, err := secrets.ResolveToken(args[0], secretsDir, log)
	if err != nil {
		return err
	}
	client := notion.NewClient(ctx, token, args[1], cfg, log)

	run := metrics.NewRun()
	fs := afero.NewOsFs()
	// Hosted file URLs are pre-signed; they get a client without the bearer token.
	fetcher := asset.NewHTTPFetcher(&http.Client{Timeout: cfg.Timeout}, cfg.HTTPConfig, log)
	assets := asset.NewMaterializer(fs, fetcher,
		asset.WithLogger(log),
		asset.WithSavedHook(run.AssetSaved),
	)

	opts := []export.Option{export.WithLogger(log), export.WithMetrics(run)}
	if cfg.LedgerPath != "" {
		store, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer store.Close()
		opts = append(opts, export.WithLedger(store))
	}

	exporter := export.New(client, client, assets, fs, cfg, opts...)
	result, runErr := exporter.Run(ctx, cmd.OutOrStdout())

	if cfg.MetricsFile != "" {
		if err := run.WriteFile(cfg.MetricsFile); err != nil {
			log.WithError(err).Warn("metrics not written")
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		log.Warnf("%d of %d pages failed; their publish flags are still set", result.Failed, result.Total())
	}
	return nil
}
