package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignite/campaign-insights/internal/catalog"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "List the sample campaigns",
		Long: `List the sample campaigns from the configured catalog.

The index printed next to each campaign can be passed to 'analyze --demo'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			src, err := newSource(cfg)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cmd.Context(), cfg, src)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	for i, f := range cat.Campaigns() {
		fmt.Fprintf(w, "[%d] %s\n", i, f.CampaignName)
		fmt.Fprintf(w, "    %s | $%.0f | %s | %s\n", f.Platform, f.Budget, f.Industry, f.TargetAudience)
		fmt.Fprintf(w, "    objectives: %s\n", strings.Join(f.Objectives, ", "))
	}
}
