// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notion-export/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently exported pages",
	Long: `History prints the most recent entries of the export ledger, newest first.
Use --yaml for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		path := viper.GetString("ledger_path")
		if path == "" {
			return fmt.Errorf("no ledger configured")
		}
		store, err := ledger.Open(path)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if asYAML {
			return store.ExportYAML(cmd.Context(), out, limit)
		}

		entries, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "no exports recorded")
			return nil
		}
		for _, e := range entries {
			title := e.Title
			if title == "" {
				title = e.PageID
			}
			fmt.Fprintf(out, "%s  %-30s  %s  (%d assets)\n",
				e.ExportedAt.Local().Format(time.DateTime), title, e.DocPath, e.Assets)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of entries to show (0 for all)")
	historyCmd.Flags().Bool("yaml", false, "output entries as YAML")

	rootCmd.AddCommand(historyCmd)
}
