package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/mcp"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/version"
)

const shutdownTimeout = 5 * time.Second

// newServeCmd creates the 'serve' command for running the MCP server.
func newServeCmd(opts *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the quote-discovery MCP server using stdio transport.

AI clients get the quotes_* tools: search, suggest, history, saved searches,
analytics, insights, recommendations, related quotes and corpus reload.

With --metrics-addr (or metrics.addr in the config) an HTTP listener serves
Prometheus metrics on /metrics and a liveness probe on /healthz.`,
		Example: `  # Run directly
  quote-discovery serve --corpus ~/quotes.json

  # Expose metrics
  quote-discovery serve --metrics-addr 127.0.0.1:9464`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for /metrics and /healthz")

	return cmd
}

// runServe serves MCP on stdio until stdin closes or a signal arrives.
func runServe(ctx context.Context, opts *rootOptions, metricsAddr string) error {
	serveOpts := *opts
	if serveOpts.logLevel == "" {
		serveOpts.logLevel = "info"
	}
	a, err := openApp(ctx, &serveOpts, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	logger := a.logger

	if metricsAddr == "" {
		metricsAddr = a.cfg.Metrics.Addr
	}
	var httpSrv *http.Server
	if metricsAddr != "" {
		httpSrv = &http.Server{
			Addr:              metricsAddr,
			Handler:           newHTTPRouter(a.session),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server starting", zap.String("addr", metricsAddr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	var reload mcp.CorpusLoader
	if a.corpusPath != "" {
		reload = a.loadCorpus
	}
	server := mcp.NewServer(a.session, reload, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			runErr = fmt.Errorf("server error: %w", err)
		}
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", zap.Error(err))
		}
		cancel()
	}
	if err := a.Close(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// newHTTPRouter serves /metrics and /healthz.
func newHTTPRouter(session *engine.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		var quotes int
		session.Do(func(e *engine.Engine) error {
			quotes = e.View().Len()
			return nil
		})
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, map[string]interface{}{
			"status":  "ok",
			"version": version.Version,
			"quotes":  quotes,
		})
	})
	return r
}
