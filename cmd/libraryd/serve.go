package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-records-go/library/httpapi"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/library/shell/config"
	"github.com/AntonStoeckl/library-records-go/library/shell/oteladapters"
	"github.com/AntonStoeckl/library-records-go/library/shell/promadapters"
)

const (
	metricsNamespace  = "library"
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	loginBurst        = 5
)

func newServeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until SIGINT or SIGTERM.

Domain events are handed to the sinks listed in EVENT_SINKS (log, postgres, redis).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			if err = cfg.RequireCredentials(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics := promadapters.NewMetricsCollector(registry, metricsNamespace)

	httpMetrics, err := promadapters.NewHTTPMetrics(registry, metricsNamespace)
	if err != nil {
		return err
	}

	var tracing shell.TracingCollector
	if cfg.OTELEnabled {
		provider := oteladapters.InstallTracerProvider(serviceName)
		defer shutdownTracing(provider.Shutdown, logger)

		tracing = oteladapters.NewTracingCollector(otel.Tracer(serviceName))
	}

	store, err := openStorage(ctx, cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer store.close()

	sink, releaseSink, err := newEventSink(ctx, cfg, logger, store.events)
	if err != nil {
		return err
	}
	defer releaseSink()

	emitter, err := shell.NewEmitter(
		sink,
		shell.WithQueueSize(cfg.EventQueueSize),
		shell.WithEmitterContextualLogger(logger),
		shell.WithEmitterMetrics(metrics),
	)
	if err != nil {
		return err
	}

	useCases, err := httpapi.NewUseCases(
		shell.Dependencies{
			Engine:    store.engine,
			Publisher: emitter,
			Logger:    logger,
		},
		httpapi.Observability{
			Metrics:          metrics,
			Tracing:          tracing,
			ContextualLogger: logger,
		},
	)
	if err != nil {
		return err
	}

	handler, err := httpapi.NewServer(
		useCases,
		cfg.APIKey,
		cfg.JWTSecret,
		httpapi.WithTokenTTL(cfg.JWTTTL),
		httpapi.WithLoginRate(cfg.LoginRatePerSec, loginBurst),
		httpapi.WithContextualLogger(logger),
		httpapi.WithHTTPMetrics(httpMetrics),
		httpapi.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})),
	)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server listening", "addr", cfg.HTTPAddr, "event_sinks", cfg.EventSinkNames())
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = emitter.Close(context.Background())
			return err
		}

	case <-ctx.Done():
		logger.InfoContext(ctx, "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "http server shutdown failed", "error", err.Error())
	}

	// the emitter drains its queue only after no handler can publish anymore
	if err = emitter.Close(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "event emitter shutdown failed", "error", err.Error())
	}

	return nil
}

func shutdownTracing(shutdown func(context.Context) error, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "tracer provider shutdown failed", "error", err.Error())
	}
}
