package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/cors"
	"github.com/sbermejom01/api-BetsSoccer/internal/config"
	"github.com/sbermejom01/api-BetsSoccer/internal/database"
	server "github.com/sbermejom01/api-BetsSoccer/internal/http"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/notifier"
	"github.com/sbermejom01/api-BetsSoccer/internal/notifier/slack"
	"github.com/sbermejom01/api-BetsSoccer/internal/pubsub"
	"github.com/sbermejom01/api-BetsSoccer/internal/simulation"
	"github.com/sbermejom01/api-BetsSoccer/internal/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal("Server process stopped with error", "error", err)
	}
}

func run() error {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	leagueStore := store.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var feed notifier.Notifier = notifier.Nop{}
	if cfg.Slack.Enabled() {
		feed = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack not configured, league feed disabled")
	}
	events := pubsub.NewNoop()
	if cfg.ProjectID != "" {
		events = pubsub.New(cfg.ProjectID)
	} else {
		log.Info("GCP_PROJECT not set, events are not published")
	}
	defer events.Close()

	engine := simulation.New(leagueStore, feed, metricsSvc, events, simulation.Config{
		RoundDuration: cfg.Simulation.RoundDuration,
		MatchOverlap:  cfg.Simulation.MatchOverlap,
		FlushTimeout:  cfg.Simulation.FlushTimeout,
		League:        cfg.Simulation.League,
		DryRun:        cfg.DryRun,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The listener comes up first so /health answers and the API reports
	// "not ready" while the league loads.
	s := server.NewServer(engine, metricsSvc, metricsHandler, cfg)
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	}).Handler(s)

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := engine.Start(gctx); err != nil {
			return fmt.Errorf("failed to start simulation: %w", err)
		}

		// --- Record startup time ---
		startupDuration := time.Since(startTime)
		metricsSvc.SetStartupTime(startupDuration.Seconds())
		log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

		return engine.Run(gctx, cfg.Simulation.TickInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		// Create a context with a timeout for the shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}
		log.Info("Server gracefully stopped")
		return nil
	})

	err = g.Wait()
	log.Info("Server process shutting down")
	return err
}
