package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendboard/internal/adapters/auth"
	"trendboard/internal/adapters/backend"
	"trendboard/internal/adapters/cache"
	"trendboard/internal/adapters/fallback"
	"trendboard/internal/adapters/web"
	"trendboard/internal/config"
	"trendboard/internal/usecases"
	"trendboard/pkg/log"
	"trendboard/pkg/log/transporters"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trendboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	defer logger.Close()

	// Load the dataset served when the backend is unavailable
	data, err := fallback.Load(cfg.Fallback.Path)
	if err != nil {
		return fmt.Errorf("failed to load fallback data: %w", err)
	}

	// Initialize adapters
	tokens := auth.NewContextSource()
	client := backend.New(cfg.Backend, tokens)

	var trendFetcher usecases.TrendFetcher = client
	if cfg.Cache.TrendTTL > 0 {
		trendCache := cache.NewMemoryCache(cfg.Cache.TrendTTL)
		defer trendCache.Close()
		trendFetcher = cache.NewCachedFetcher(client, tokens, trendCache)
	}

	// Initialize use cases
	trendsUC := usecases.NewGetTrendsUseCase(trendFetcher, data)
	handlers := web.NewHandlers(web.UseCases{
		Trends:       trendsUC,
		Recommend:    usecases.NewRecommendContentUseCase(trendsUC, client, data),
		ToggleSave:   usecases.NewToggleSaveUseCase(client),
		Saved:        usecases.NewSavedContentUseCase(client, data),
		Profile:      usecases.NewProfileUseCase(client),
		TrendDetails: usecases.NewTrendDetailsUseCase(time.Now),
	}, cfg.Server.RequestTimeout)

	var rateLimiter *web.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = web.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
		defer rateLimiter.Stop()
	}

	app := web.NewApp(cfg.Server)
	web.SetupRoutes(app, handlers, rateLimiter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.GlobalInfo("starting server",
			"app", cfg.Server.AppName,
			"addr", cfg.Server.Addr(),
			"backend", cfg.Backend.BaseURL,
		)
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.GlobalInfo("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.GlobalError("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}

// newLogger builds the process logger from the log settings.
func newLogger(cfg config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var t log.Transporter
	switch cfg.Format {
	case "console":
		t = transporters.NewConsole()
	default:
		t = transporters.NewStdout()
	}
	return log.New(level, t), nil
}
