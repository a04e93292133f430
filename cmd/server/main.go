package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirecall-server/internal/app"
	"github.com/vovakirdan/wirecall-server/internal/config"
	"github.com/vovakirdan/wirecall-server/internal/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:          "wirecall-server",
		Short:        "Signaling and chat relay for peer-to-peer call rooms",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLogger := log.New(overrides.LogLevel, true)

			cfg, path, err := config.Load(bootLogger, configPath)
			if err != nil {
				bootLogger.Error().Err(err).Str("path", path).Msg("failed to load config")
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel, !cfg.Production())
			logger.Info().Str("config", path).Str("env", cfg.Env).Msg("configuration loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(&cfg, logger)

			logger.Info().Str("addr", application.Addr()).Msg("starting wirecall server")
			if err := application.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("server exited with error")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&overrides.AllowedOrigin, "allowed-origin", "", "allowed cross-origin caller")
	flags.StringVar(&overrides.StaticDir, "static-dir", "", "client bundle directory")
	flags.StringVar(&overrides.Env, "env", "", "environment (production enables static hosting)")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	return cmd
}
