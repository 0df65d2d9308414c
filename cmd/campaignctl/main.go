package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ignite/campaign-insights/internal/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "campaignctl",
		Short: "Run campaign analyses from the terminal",
		Long: `campaignctl drives the same analysis screen as the web dashboard.

Available subcommands:
  analyze - Submit a campaign and print the rendered results
  demo    - List the sample campaigns`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.yaml (defaults apply when empty)")
	root.AddCommand(newAnalyzeCmd(), newDemoCmd())
	return root
}

// loadConfig applies .env and environment overrides like the server does.
// Without --config only defaults and the environment apply.
func loadConfig() (*config.Config, error) {
	return config.LoadFromEnv(configPath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
