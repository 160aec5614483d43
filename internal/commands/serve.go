package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbk-gemmy/finance-platform/cmd/httpserver"
	"github.com/cbk-gemmy/finance-platform/internal/middleware"
	"github.com/cbk-gemmy/finance-platform/pkg/configpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/dbpkg"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "directory holding app.env")

	return cmd
}

func loadConfig(path string) (configpkg.Config, error) {
	config, err := configpkg.Load(path)
	if err != nil {
		return config, fmt.Errorf("cannot load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func runServe(ctx context.Context, configPath string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := middleware.NewLogger(config)

	if config.MigrateOnStart {
		if err := dbpkg.Migrate(config.DBDriver, config.DBSource); err != nil {
			logger.Error().Err(err).Msg("cannot migrate database")
			return err
		}

		logger.Info().Msg("database migrated")
	}

	db, err := dbpkg.Setup(ctx, config.DBDriver, config.DBSource)
	if err != nil {
		logger.Error().Err(err).Msg("cannot connect to database")
		return err
	}
	defer db.Close()

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Error().Err(err).Msg("cannot create server")
		return err
	}

	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	logger.Info().Msg("server stopped")

	return nil
}
