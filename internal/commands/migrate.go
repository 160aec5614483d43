package commands

import (
	"github.com/spf13/cobra"

	"github.com/cbk-gemmy/finance-platform/internal/middleware"
	"github.com/cbk-gemmy/finance-platform/pkg/dbpkg"
)

func newMigrateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := middleware.NewLogger(config)

			if err := dbpkg.Migrate(config.DBDriver, config.DBSource); err != nil {
				logger.Error().Err(err).Msg("cannot migrate database")
				return err
			}

			logger.Info().Msg("database migrated")

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "directory holding app.env")

	return cmd
}
