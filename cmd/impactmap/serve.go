package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/di"
)

func serveCmd() *cobra.Command {
	var (
		tutorial bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP adapter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			loader, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tutorial") {
				cfg.Seed.LoadTutorial = tutorial
			}

			container, err := di.InitializeContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer container.Shutdown()
			logger := container.Logger

			if watch {
				watcher := config.NewWatcher(loader, cfg, logger.Logger)
				logger.Follow(watcher)
				watcher.OnChange(func(c *config.Config) {
					container.Service.Reconfigure(c.Domain)
				})
				if err := watcher.Start(); err != nil {
					logger.Warn("Config watcher unavailable", zap.Error(err))
				} else {
					defer watcher.Stop()
				}
			}

			srv := &http.Server{
				Addr:         cfg.Server.Address(),
				Handler:      container.Router.Setup(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("Starting server",
					zap.String("address", srv.Addr),
					zap.String("environment", string(cfg.Environment)),
					zap.Strings("config", cfg.LoadedFrom),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}

			logger.Info("Shutting down server...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server shutdown error", zap.Error(err))
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&tutorial, "tutorial", true, "Load the tutorial canvas on start")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload geometry, lookahead and log level when config files change")

	return cmd
}
