package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anti-theft-gps-tracker/internal/api"
	"anti-theft-gps-tracker/internal/cache"
	"anti-theft-gps-tracker/internal/processors/relay"
	"anti-theft-gps-tracker/internal/provider"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveRelay bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRelay, "relay", false, "Also relay GPS fixes from Kafka (overrides relay.enabled)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the form UI and JSON API",
	Long:  "Serves the three device forms and the /api/v1 endpoints.\nWith the relay enabled, GPS fixes read from Kafka are submitted as register_gps_event calls.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.InfoContext(ctx, "Starting service...")

	providers, err := provider.FromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build providers: %w", err)
	}
	defer providers.Close()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.New(api.Config{
			Providers:   providers,
			CORSOrigins: cfg.Server.CORSOrigins,
		}).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(gctx, "HTTP server listening", "addr", srv.Addr, "network", providers.Network())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.InfoContext(gctx, "Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if serveRelay || cfg.Relay.Enabled {
		g.Go(func() error {
			return runRelay(gctx, providers)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		return err
	}
	slog.InfoContext(ctx, "Service stopped")
	return nil
}

func runRelay(ctx context.Context, providers *provider.Providers) error {
	c := cache.New(cache.Config{
		Brokers:       cfg.Relay.Brokers,
		ConsumerTopic: cfg.Relay.ReceiptsTopic,
	})
	if err := c.Hydrate(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("failed to hydrate relay cache: %w", err)
	}
	if ctx.Err() != nil {
		return nil
	}

	r := relay.New(relay.Config{
		Brokers:         cfg.Relay.Brokers,
		ConsumerGroupID: cfg.Relay.GroupID,
		ConsumerTopic:   cfg.Relay.Topic,
		PublisherTopic:  cfg.Relay.ReceiptsTopic,
		Encoder:         providers.Encoder(),
		Wallet:          providers.Wallet(),
		Cache:           c,
	})
	defer r.Close(ctx)
	r.Run(ctx)
	return nil
}
