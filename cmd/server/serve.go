package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexis-api/internal/config"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Loads configuration, opens storage (applying pending migrations for postgres) and serves the API until SIGINT or SIGTERM.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configOptions)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
		log.Info("server configuration loaded",
			slog.Int("port", cfg.Server.Port),
			slog.String("log_level", cfg.Server.LogLevel),
			slog.String("database_driver", cfg.Database.Driver))

		app, err := newApplication(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer app.cleanup()

		return app.startHTTPServer(cmd.Context(), app.setupRouter())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
