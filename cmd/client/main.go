package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/analytics"
	"github.com/slshults/gpra-web-sub001/internal/backend/httpapi"
	"github.com/slshults/gpra-web-sub001/internal/browser"
	"github.com/slshults/gpra-web-sub001/internal/config"
	"github.com/slshults/gpra-web-sub001/internal/deletion"
	"github.com/slshults/gpra-web-sub001/internal/domain"
	"github.com/slshults/gpra-web-sub001/internal/navigation"
	"github.com/slshults/gpra-web-sub001/internal/session"
)

// logWidget stands in for the embedded support widget when the coordinator
// runs headless
type logWidget struct {
	logger *zap.Logger
}

func (w logWidget) SetVisible(visible bool) {
	w.logger.Debug("support widget visibility", zap.Bool("visible", visible))
}

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting session coordinator")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.Environment == "development" {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}

	logger.Info("Configuration loaded successfully",
		zap.String("backend", cfg.BackendBaseURL),
		zap.Duration("poll_interval", cfg.PollInterval),
	)

	// Browser boundary and analytics
	env := browser.NewMemory()
	identity := analytics.NewIdentity(env)
	sink := analytics.NewLogSink(logger, identity)

	// Backend API client
	api := httpapi.NewClient(cfg.BackendBaseURL, cfg.HTTPTimeout, logger)

	// Session store with polling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewStore(api, env, sink, identity, api.LoginURL(), api.LogoutURL(), cfg.FlushGrace, logger)
	store.StartPolling(ctx, cfg.PollInterval)
	defer store.Dispose()

	logger.Info("Session polling started")

	// Navigation controller
	nav := navigation.NewController(
		store,
		env,
		sink,
		logWidget{logger: logger},
		func(page domain.Page) {
			logger.Info("restricted page blocked", zap.String("page", page.String()))
		},
		cfg.WidgetReapplyDelay,
		logger,
	)
	state := nav.Resolve()
	defer nav.Dispose()

	logger.Info("Navigation resolved",
		zap.String("page", state.ActivePage.String()),
		zap.String("source", string(state.Source)),
	)

	// Deletion flow
	machine := deletion.NewMachine(store, api, env, sink, api.LoginURL(), api.ExportURL(), cfg.FlushGrace, logger)
	defer machine.Dispose()

	notice := deletion.NewNoticeController(store, api, env, cfg.BackendBaseURL, logger)
	if schedule := notice.Schedule(); schedule != nil && !notice.Dismissed() {
		logger.Info("account deletion pending",
			zap.Time("scheduled_for", schedule.ScheduledDate),
			zap.String("kind", string(schedule.Kind)),
		)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping coordinator...")

	cancel()

	logger.Info("Coordinator stopped gracefully")
}
