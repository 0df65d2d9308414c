package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ignite/campaign-insights/internal/analysis"
	"github.com/ignite/campaign-insights/internal/api/ui"
	"github.com/ignite/campaign-insights/internal/catalog"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/source"
	"github.com/ignite/campaign-insights/internal/trendfeed"
	"github.com/ignite/campaign-insights/internal/view"
)

type analyzeOptions struct {
	form     domain.RawForm
	demo     int
	jsonOut  bool
	progress io.Writer
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{demo: -1}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a campaign and print the results",
		Long: `Submit a campaign to the analysis chains and print every result region.

The campaign comes from flags, or from the sample catalog with --demo.
A progress bar follows the four analysis stages while the run is in flight.

Examples:
  campaignctl analyze --demo 0
  campaignctl analyze --name "Spring Refresh" --platform "TikTok Ads" \
    --budget 42000 --audience "Gen Z shoppers" --industry Retail \
    --objective Sales --objective Engagement`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if f, ok := cmd.ErrOrStderr().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				opts.progress = f
			}
			return runAnalyze(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.form.CampaignName, "name", "", "Campaign name")
	cmd.Flags().StringVar(&opts.form.Platform, "platform", "", "Advertising platform")
	cmd.Flags().StringVar(&opts.form.Budget, "budget", "", "Budget in dollars")
	cmd.Flags().StringVar(&opts.form.TargetAudience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&opts.form.Industry, "industry", "", "Industry")
	cmd.Flags().StringArrayVar(&opts.form.Objectives, "objective", nil, "Campaign objective (repeatable)")
	cmd.Flags().IntVar(&opts.demo, "demo", -1, "Use the sample campaign at this index")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the rendered document as JSON")

	return cmd
}

func newSource(cfg *config.Config) (source.Source, error) {
	opts := []analysis.Option{analysis.WithLatencies(analysis.DefaultLatencies(cfg.Analysis.LatencyScale))}
	if feed := trendfeed.New(cfg.Trends); feed != nil {
		opts = append(opts, analysis.WithTrendSignals(feed))
	}
	return source.New(cfg.Analysis, analysis.New(opts...))
}

// loadCatalog reads the demo campaigns, from the analysis service itself
// when the catalog source is remote.
func loadCatalog(ctx context.Context, cfg *config.Config, src source.Source) (*catalog.Catalog, error) {
	var opts []catalog.LoadOption
	if lister, ok := src.(catalog.Lister); ok {
		opts = append(opts, catalog.WithLister(lister))
	}
	return catalog.Load(ctx, cfg.Catalog, opts...)
}

func runAnalyze(ctx context.Context, cfg *config.Config, opts analyzeOptions, out io.Writer) error {
	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	ctrl := view.New(view.ConfigFrom(cfg.View, cfg.Analysis), src, view.WithName("campaignctl"))
	defer ctrl.Close()

	raw := opts.form
	if opts.demo >= 0 {
		cat, err := loadCatalog(ctx, cfg, src)
		if err != nil {
			return err
		}
		form, ok := cat.At(opts.demo)
		if !ok {
			return fmt.Errorf("no sample campaign at index %d (catalog has %d)", opts.demo, cat.Len())
		}
		if err := ctrl.LoadDemo(form); err != nil {
			return err
		}
		raw = ctrl.Snapshot().Form
	}

	if err := ctrl.Submit(raw); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s (%s)", lastError(ctrl.Snapshot()), verr.Field)
		}
		return err
	}

	bar := newStageBar(opts.progress, len(ctrl.Snapshot().Stages))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ctrl.Changes():
			if !ok {
				return view.ErrClosed
			}
		}

		s := ctrl.Snapshot()
		if bar != nil {
			_ = bar.Set(s.CompletedStages())
		}
		switch s.State {
		case domain.StateResults:
			if bar != nil {
				_ = bar.Finish()
			}
			if opts.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.Document)
			}
			printDocument(out, s.Document)
			return nil
		case domain.StateForm:
			return errors.New(lastError(s))
		}
	}
}

func newStageBar(w io.Writer, stages int) *progressbar.ProgressBar {
	if w == nil || stages <= 0 {
		return nil
	}
	return progressbar.NewOptions(stages,
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func lastError(s view.Snapshot) string {
	for i := len(s.Notifications) - 1; i >= 0; i-- {
		if s.Notifications[i].Kind == domain.NotifyError {
			return s.Notifications[i].Message
		}
	}
	return "analysis did not complete"
}

func printDocument(w io.Writer, doc *view.Document) {
	fmt.Fprintf(w, "Campaign: %s\n\n", doc.CampaignName)
	summary := doc.TabRegions("")
	for _, r := range summary {
		if r.Kind == view.KindText {
			fmt.Fprintf(w, "%-24s %s\n", ui.RegionTitle(r.ID)+":", r.Text)
		}
	}
	for _, r := range summary {
		if r.Kind != view.KindText {
			printRegion(w, r)
		}
	}
	for _, tab := range domain.Tabs {
		fmt.Fprintf(w, "\n== %s ==\n", ui.TabLabel(tab))
		for _, r := range doc.TabRegions(tab) {
			printRegion(w, r)
		}
	}
}

func printRegion(w io.Writer, r view.Region) {
	fmt.Fprintf(w, "\n%s\n", ui.RegionTitle(r.ID))
	switch r.Kind {
	case view.KindText:
		fmt.Fprintf(w, "  %s\n", r.Text)
	case view.KindList:
		for _, item := range r.Items {
			fmt.Fprintf(w, "  • %s\n", item)
		}
	case view.KindFacts:
		for _, f := range r.Facts {
			fmt.Fprintf(w, "  %s: %s\n", f.Label, f.Text)
		}
	case view.KindBars:
		for _, b := range r.Bars {
			fmt.Fprintf(w, "  %-22s %4s %s\n", b.Label, b.Text, strings.Repeat("█", b.Percent/5))
		}
	}
}
