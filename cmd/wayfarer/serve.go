package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/wayfarer/internal/cli"
	"github.com/aretw0/wayfarer/internal/logging"
	wayfarerhttp "github.com/aretw0/wayfarer/pkg/adapters/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the wizard as an HTTP API",
	Long: `Starts the HTTP server exposing the wizard as a JSON API,
with a Server-Sent Events stream per session and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.HTTP.Addr = v
		}
		if cmd.Flags().Changed("watch") {
			cfg.Catalog.Watch, _ = cmd.Flags().GetBool("watch")
		}

		level := cfg.SlogLevel()
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		logger := logging.NewJSON(level)
		slog.SetDefault(logger)

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		rt, err := cli.Build(sc, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv, err := wayfarerhttp.NewServer(rt.Planner,
			wayfarerhttp.WithLogger(logger),
			wayfarerhttp.WithMetricsHandler(rt.Metrics.Handler()),
			wayfarerhttp.WithCORSOrigins(cfg.HTTP.CORSOrigins...),
			wayfarerhttp.WithAuthRateLimit(cfg.HTTP.AuthRPS, cfg.HTTP.AuthBurst),
		)
		if err != nil {
			return err
		}
		defer srv.Close()
		rt.Planner.OnChange(srv.Streams.Publish)

		httpSrv := &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      srv,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Wayfarer HTTP server listening", "addr", cfg.HTTP.Addr, "store", cfg.Store.Backend)
			serverErrors <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sc.Done():
			logger.Info("Shutting down server...", "signal", sc.Signal())
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpSrv.Shutdown(ctx); err != nil {
			// Open event streams keep connections busy past the deadline.
			logger.Warn("Forcing server close", "err", err)
			_ = httpSrv.Close()
		}
		logger.Info("Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().Bool("watch", false, "Reload the catalog when its source changes")
}
