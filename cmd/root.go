package cmd

import (
	"context"
	"os"

	"github.com/klokku/utilization/internal/app"
	"github.com/klokku/utilization/internal/config"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "utilization",
	Short:        "Utilization projection service",
	Long:         "Import time entries, project fiscal-year utilization and serve it over HTTP.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "./config/application.yaml", "Configuration file")
}

// openApplication loads the configuration and connects to the database. Callers close it.
func openApplication(ctx context.Context) (*app.Application, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	return app.NewApplication(ctx, cfg)
}
