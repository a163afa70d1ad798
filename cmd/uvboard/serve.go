package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/uvboard/uvboard/config"
	"github.com/uvboard/uvboard/httpserver"
	"github.com/uvboard/uvboard/meteo"
	"github.com/uvboard/uvboard/observability"
)

var profileMode bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the UV and traffic dashboards over HTTP",
	RunE: func(_ *cobra.Command, _ []string) error {
		if profileMode {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		return runServe()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&profileMode, "profile", false, "write a CPU profile to the working directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := cfg.Logger(os.Stderr)
	metrics := observability.NewMetrics()
	meteoClient := meteo.NewClient(cfg.MeteoBaseURL, cfg.Latitude, cfg.Longitude, cfg.MeteoTimeout, logger)
	srv := httpserver.NewServer(cfg, meteoClient, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
