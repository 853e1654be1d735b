package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/config"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/database"
	server "github.com/mauv0809/field-clock/internal/http"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/notifier/slack"
	"github.com/mauv0809/field-clock/internal/pubsub"
	"github.com/mauv0809/field-clock/internal/scheduler"
	"github.com/mauv0809/field-clock/internal/storage"
	"github.com/mauv0809/field-clock/internal/teams"
	"github.com/mauv0809/field-clock/internal/zoom"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dialect, dbTeardown, err := openDatabase(cfg)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve match timezone: %s", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	stats := metrics.New(db, dialect)

	store, closeStore, err := openStore(cfg, db, dialect, metricsSvc)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %s", err)
	}
	defer closeStore()

	var sinks []notifier.Notifier
	var reports controller.ReportSender
	if cfg.Slack.Token != "" {
		slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc).DryRun(cfg.Slack.DryRun)
		sinks = append(sinks, slackNotifier)
		reports = slackNotifier
	} else {
		log.Info("Slack token not set, notifications stay local")
	}
	bus := notifier.NewBus(sinks...)

	var publisher pubsub.PubSubClient = pubsub.Noop{}
	if cfg.ProjectID != "" {
		publisher, err = pubsub.New(context.Background(), cfg.ProjectID, cfg.TopicPrefix)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	}
	defer publisher.Close()

	ctrl := controller.New(controller.Options{
		Store:            store,
		Metrics:          metricsSvc,
		Stats:            stats,
		Notifier:         bus,
		Publisher:        publisher,
		Reports:          reports,
		Zoom:             zoom.NewNamed(zoom.ProfileName(cfg.Match.ZoomProfile)),
		Location:         loc,
		AutoplayInterval: cfg.Match.AutoplayInterval,
		HalfTimeGap:      cfg.Match.HalfTimeGap,
		TeamA:            teams.Team{Name: cfg.Match.TeamA.Name, Color: cfg.Match.TeamA.Color},
		TeamB:            teams.Team{Name: cfg.Match.TeamB.Name, Color: cfg.Match.TeamB.Color},
	})
	defer ctrl.Close()
	restored := ctrl.Restore()
	log.Info("Match state restored", "any", restored.Any(), "bookmarks", restored.Bookmarks)

	jobs, err := scheduler.New(scheduler.Job{
		Name: "live-refresh",
		Spec: cfg.Match.LiveRefreshSpec,
		Run:  ctrl.RefreshLive,
	})
	if err != nil {
		log.Fatalf("Failed to schedule jobs: %s", err)
	}
	jobs.Start()
	defer jobs.Stop()

	s := server.NewServer(ctrl, bus, stats, metricsSvc, metricsHandler, cfg, publisher)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Streams are long lived; Shutdown waits for them up to the timeout.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// openDatabase prefers Postgres when a DSN is configured, then Turso, then a local file.
func openDatabase(cfg config.Config) (*sql.DB, database.Dialect, func(), error) {
	if cfg.Postgres.DSN != "" {
		db, teardown, err := database.InitPostgres(cfg.Postgres.DSN, cfg.MigrationsDir)
		return db, database.DialectPostgres, teardown, err
	}
	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if cfg.Turso.PrimaryURL != "" {
		return db, database.DialectTurso, teardown, err
	}
	return db, database.DialectSQLite, teardown, err
}

// openStore builds the configured key-value backend. The returned func releases it.
func openStore(cfg config.Config, db *sql.DB, dialect database.Dialect, m metrics.Metrics) (storage.KeyValueStore, func(), error) {
	switch storage.Backend(cfg.Storage.Backend) {
	case storage.BackendBolt:
		s, err := storage.NewBolt(cfg.Storage.BoltPath, m)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case storage.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s, err := storage.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, m)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case storage.BackendMemory:
		log.Warn("Using in-memory storage, match state is lost on restart")
		return storage.NewMock(), func() {}, nil
	default:
		log.Info("Using SQL storage", "dialect", dialect)
		return storage.NewSQL(db, dialect, m), func() {}, nil
	}
}
