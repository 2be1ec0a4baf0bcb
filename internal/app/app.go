package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shelfwatch/internal/bot"
	"shelfwatch/internal/config"
	"shelfwatch/internal/reminder"
	"shelfwatch/internal/storage"
	"shelfwatch/internal/storage/sqlite"
	"shelfwatch/internal/storage/stubs"
)

// staleSessionAge is how long an abandoned registration flow survives before
// the daily scheduler evicts it
const staleSessionAge = 24 * time.Hour

// App represents the application
type App struct {
	config    *config.Config
	logger    *zap.Logger
	db        storage.Storage
	bot       *bot.Bot
	scheduler *cron.Cron
	server    *http.Server
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting shelfwatch bot")

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initBot(); err != nil {
		return nil, err
	}

	if err := app.initScheduler(); err != nil {
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// initDatabase opens the store and ensures the schema exists
func (a *App) initDatabase() error {
	var db storage.Storage
	if a.config.UseMockDB {
		a.logger.Info("Using mock database")
		db = stubs.NewMockDB()
	} else {
		a.logger.Info("Opening SQLite database", zap.String("path", a.config.DatabasePath))
		sqliteDB, err := sqlite.New(a.config.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		db = sqliteDB
	}

	if err := db.Initialize(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.logger.Info("Database initialized successfully")

	a.db = db
	return nil
}

// initBot initializes the Telegram bot
func (a *App) initBot() error {
	loc, err := time.LoadLocation(a.config.ReminderTimezone)
	if err != nil {
		return fmt.Errorf("failed to load time zone %q: %w", a.config.ReminderTimezone, err)
	}

	telegramBot, err := bot.NewBot(a.config.TelegramToken, a.db, loc, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	a.bot = telegramBot
	return nil
}

// initScheduler wires the daily expiry scan
func (a *App) initScheduler() error {
	loc, err := time.LoadLocation(a.config.ReminderTimezone)
	if err != nil {
		return fmt.Errorf("failed to load time zone %q: %w", a.config.ReminderTimezone, err)
	}

	job := reminder.NewJob(a.db, a.bot, loc, a.logger)

	scheduler := cron.New(cron.WithLocation(loc))
	_, err = scheduler.AddFunc(reminder.Schedule, func() {
		job.Run(context.Background())
		if evicted := a.bot.EvictStaleSessions(staleSessionAge); evicted > 0 {
			a.logger.Info("Evicted stale sessions", zap.Int("count", evicted))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	a.scheduler = scheduler
	a.logger.Info("Reminder job scheduled",
		zap.String("schedule", reminder.Schedule),
		zap.String("timezone", a.config.ReminderTimezone),
	)
	return nil
}

// initHTTPServer starts a small HTTP server for health checks
func (a *App) initHTTPServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	a.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a.scheduler.Start()

	go func() {
		if err := a.bot.Start(); err != nil {
			a.logger.Fatal("Failed to start bot", zap.Error(err))
		}
	}()

	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	// Stop the timer first so no new scan starts mid-shutdown
	cronCtx := a.scheduler.Stop()
	<-cronCtx.Done()

	a.bot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	return nil
}
