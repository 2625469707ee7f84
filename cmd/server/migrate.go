package main

import (
	"fmt"

	"github.com/phrazzld/lexis-api/internal/config"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Run database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configOptions)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.Database.Driver != driverPostgres {
			return fmt.Errorf("migrations require the postgres driver, configured driver is %q", cfg.Database.Driver)
		}

		log := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})

		db, err := postgres.Open(cmd.Context(), cfg.Database.URL, poolConfig(cfg.Database))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		return postgres.Migrate(cmd.Context(), db, args[0], log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
