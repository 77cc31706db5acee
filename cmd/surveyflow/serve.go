package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/surveyflow/surveyflow/internal/cli"
	httpAdapter "github.com/surveyflow/surveyflow/pkg/adapters/http"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve [graph]",
	Short: "Start the HTTP API",
	Long: `Serves the survey as a JSON API described by OpenAPI (see /swagger).
Engine metrics are exposed on /metrics unless http.metrics is false.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphArg(args)
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		logger, err := cli.CreateLogger(cfg.LogLevel, false)
		if err != nil {
			return err
		}

		hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger)}
		reg := prometheus.NewRegistry()
		if cfg.HTTP.Metrics {
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}
			hooks = append(hooks, metrics.Hooks())
		}

		survey, closeStore, err := cli.OpenSurvey(cfg, logger, hooks...)
		if err != nil {
			return err
		}
		defer closeStore()

		api, err := httpAdapter.NewHandler(survey, httpAdapter.WithLogger(logger))
		if err != nil {
			return err
		}
		router := chi.NewRouter()
		if cfg.HTTP.Metrics {
			router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		}
		router.Mount("/", api)

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Surveyflow Server", "addr", srv.Addr, "graph", cfg.Graph, "store", cfg.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			logger.Info("Surveyflow Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from http.addr, :8080)")
}
