// Package main implements the lexis-api server: the HTTP API over the
// spaced-repetition scheduler and its database migrations.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/lexis-api/internal/config"
	"github.com/spf13/cobra"
)

// configOptions is filled from the persistent flags of the root command.
var configOptions config.Options

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Spaced-repetition vocabulary and grammar API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configOptions.ConfigFile, "config", "", "YAML config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&configOptions.EnvFile, "env-file", "", "dotenv file (default .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
