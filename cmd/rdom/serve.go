package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rdom/internal/config"
	"github.com/vango-dev/rdom/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the inspector server",
		Long: `Start the inspector HTTP server.

Routes:
  GET  /healthz   liveness probe
  GET  /metrics   Prometheus metrics
  POST /diff      trace a tree diff
  GET  /ws        websocket todo list session

Configuration is read from --config, or rdom.yaml in the working
directory when present.

Examples:
  rdom serve
  rdom serve --addr=:9090
  rdom serve --config=deploy/rdom.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := cfg.Logger(os.Stderr)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to rdom.yaml")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}

// loadConfig reads path, or rdom.yaml in the working directory, falling back
// to defaults when neither is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if config.Exists(".") {
		return config.Load(".")
	}
	return config.New(), nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	srv := server.New(server.FromConfig(cfg), server.WithLogger(logger.With("component", "server")))
	success(os.Stdout, "rdom inspector listening on %s", cfg.Server.Addr)
	info(os.Stdout, "metrics at http://localhost%s/metrics", cfg.Server.Addr)
	if cfg.Path() == "" {
		warn(os.Stdout, "no %s found, using defaults", config.ConfigFileName)
	}
	return srv.Run(ctx)
}
