// Command trafficlight runs one signal and a set of vehicles waiting on it.
//
// Usage:
//
//	go run ./cmd/trafficlight -config cmd/trafficlight/ex.config.toml -waiters 4 -duration 30s
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/randomizedcoder/traffic-signal/internal/config"
	"github.com/randomizedcoder/traffic-signal/internal/observability"
	"github.com/randomizedcoder/traffic-signal/internal/signal"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (defaults if empty)")
	duration := flag.Duration("duration", 30*time.Second, "how long to run (0 = until interrupted)")
	waiters := flag.Int("waiters", 2, "vehicles waiting for green")
	poll := flag.Duration("poll", time.Second, "how often to print the current phase")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trafficlight: %v\n", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	logger := observability.InitLogger("trafficlight", cfg.LogLevel)

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	if err := run(ctx, logger, cfg, *waiters, *poll); err != nil {
		logger.Error().Err(err).Msg("trafficlight failed")
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func run(ctx context.Context, logger zerolog.Logger, cfg config.Config, waiters int, poll time.Duration) error {
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(logger, cfg.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	light := signal.New(append(signal.FromConfig(cfg), signal.WithLogger(logger))...)
	if err := light.Start(ctx); err != nil {
		return fmt.Errorf("start signal: %w", err)
	}
	defer light.Stop()

	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			drive(ctx, logger, light, id)
		}(i)
	}

	if poll <= 0 {
		poll = time.Second
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			logger.Info().Uint64("cycles", light.Cycles()).Msg("shutting down")
			return nil
		case <-ticker.C:
			logger.Info().
				Stringer("phase", light.CurrentPhase()).
				Int("pending", light.Pending()).
				Msg("signal")
		}
	}
}

// drive is one vehicle: wait for green, cross, come back around.
func drive(ctx context.Context, logger zerolog.Logger, light *signal.Controller, id int) {
	l := logger.With().Int("vehicle", id).Logger()
	for crossings := 1; ; crossings++ {
		if err := light.WaitForGreenContext(ctx); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				l.Warn().Err(err).Msg("wait aborted")
			}
			return
		}
		l.Info().Int("crossings", crossings).Msg("green light, crossing")
	}
}

func serveMetrics(logger zerolog.Logger, addr string) *http.Server {
	observability.RegisterMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}
