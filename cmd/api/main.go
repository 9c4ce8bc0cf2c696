package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "insights-api",
		Short: "Insights display service",
		Long: `Serves labelled insight queries, breakdown label resolution and
filter change tracking over HTTP.

Running without a subcommand starts the server.`,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./insights.yaml)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCheckConfigCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
