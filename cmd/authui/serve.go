package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chorus-tre/authui/internal/authapi"
	"github.com/chorus-tre/authui/internal/config"
	httpapp "github.com/chorus-tre/authui/internal/http"
	"github.com/chorus-tre/authui/internal/logging"
	"github.com/chorus-tre/authui/internal/login"
	"github.com/chorus-tre/authui/internal/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the login page HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.CommandPath())
	},
}

func runServe(commandPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: commandPath, Writer: os.Stderr})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := authapi.NewClient(cfg.AuthAPIURL,
		authapi.WithTimeout(cfg.AuthAPITimeout),
		authapi.WithUserAgent(userAgent()),
	)
	if err != nil {
		return err
	}

	srv, err := httpapp.NewEchoServer(cfg, login.NewSubmitter(client, logger), logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr, "auth_api", client.Endpoint(), "dev_auth", cfg.DevAuthEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if metrics.Enabled(cfg.MetricsAddr) {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.MetricsAddr, logger)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
