package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"logbook/internal/bot"
	"logbook/internal/config"
	"logbook/internal/export"
	"logbook/internal/models"
	"logbook/internal/report"
	"logbook/internal/server"
	"logbook/internal/storage"
	"logbook/internal/storage/ch"
	"logbook/internal/storage/seed"
	"logbook/internal/storage/sqlite"
	"logbook/internal/storage/stubs"
)

// App represents the application
type App struct {
	config  *config.Config
	logger  *zap.Logger
	db      storage.Storage
	pilot   models.Pilot
	reports *report.Builder
	bot     *bot.Bot
	api     *server.Server
	server  *http.Server
}

// NewLogger creates the production logger, or a development one when dev is
// set
func NewLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// LoadConfig reads the environment (and .env file) and creates the logger
func LoadConfig() (*config.Config, *zap.Logger, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := NewLogger(cfg.LogDev)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
	return cfg, logger, nil
}

// New loads configuration from the environment and initializes the
// application
func New() (*App, error) {
	cfg, logger, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, logger)
}

// NewWithConfig initializes the application from an explicit configuration
func NewWithConfig(cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{config: cfg, logger: logger}

	logger.Info("Starting pilot logbook...", zap.String("storage", cfg.StorageDriver))

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSeed(); err != nil {
		app.db.Close()
		return nil, err
	}
	if err := app.initPilot(); err != nil {
		app.db.Close()
		return nil, err
	}

	app.reports = report.NewBuilder(app.db, logger)

	if err := app.initBot(); err != nil {
		app.db.Close()
		return nil, err
	}

	app.initHTTPServer()
	return app, nil
}

// initDatabase opens the configured store
func (a *App) initDatabase() error {
	var db storage.Storage
	switch a.config.StorageDriver {
	case config.DriverMemory:
		a.logger.Info("Using in-memory database")
		db = stubs.NewMockDB()
	case config.DriverSQLite:
		a.logger.Info("Using SQLite database", zap.String("path", a.config.SQLitePath))
		store, err := sqlite.NewStore(a.config.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open SQLite: %w", err)
		}
		db = store
	case config.DriverClickHouse:
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.String("user", a.config.ClickHouseUser),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		clickhouseDB, err := ch.NewClickHouseDB(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		db = clickhouseDB
	default:
		return fmt.Errorf("unknown storage driver %q", a.config.StorageDriver)
	}

	if err := db.Initialize(context.Background()); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.logger.Info("Database initialized successfully")

	a.db = db
	return nil
}

// initSeed loads the fixture ledger into an empty store
func (a *App) initSeed() error {
	if a.config.SeedFile == "" {
		return nil
	}
	f, err := seed.Load(a.config.SeedFile)
	if err != nil {
		return err
	}
	applied, err := seed.ApplyIfEmpty(context.Background(), a.db, f)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	if applied {
		a.logger.Info("Database seeded", zap.String("file", a.config.SeedFile))
	} else {
		a.logger.Info("Database already populated, seed skipped", zap.String("file", a.config.SeedFile))
	}
	return nil
}

// initPilot resolves whose logbook is served
func (a *App) initPilot() error {
	pilot, err := storage.ResolvePilot(context.Background(), a.db, a.config.PilotID)
	if err != nil {
		return fmt.Errorf("failed to resolve pilot: %w", err)
	}
	a.pilot = pilot
	a.logger.Info("Serving logbook", zap.String("pilot_id", pilot.ID.String()), zap.String("pilot", pilot.Name()))
	return nil
}

// initBot initializes the Telegram bot when a token is configured
func (a *App) initBot() error {
	if !a.config.BotEnabled() {
		a.logger.Info("TELEGRAM_BOT_TOKEN not set, bot disabled")
		return nil
	}

	telegramBot, err := bot.NewBot(a.config.TelegramToken, a.db, a.reports, a.pilot.ID, a.config.AllowedUserIDs, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	a.logger.Info("Bot created successfully", zap.Int64s("allowed_users", a.config.AllowedUserIDs))

	a.bot = telegramBot
	return nil
}

func (a *App) mode() string {
	switch {
	case a.bot == nil:
		return "api"
	case a.config.WebhookMode:
		return "webhook"
	default:
		return "polling"
	}
}

// initHTTPServer wires the JSON API, metrics and the bot webhook
func (a *App) initHTTPServer() {
	a.api = server.New(a.db, a.reports, a.pilot.ID, a.logger, server.NewMetrics())
	a.api.Mode = a.mode()
	if a.bot != nil && a.config.WebhookMode {
		a.api.Handle(bot.WebhookPath, a.bot.WebhookHandler(), http.MethodPost)
	}

	a.server = &http.Server{
		Addr:         ":" + a.config.Port,
		Handler:      a.api,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Handler returns the HTTP handler serving the API
func (a *App) Handler() http.Handler {
	return a.api
}

// Pilot returns the pilot whose logbook is served
func (a *App) Pilot() models.Pilot {
	return a.pilot
}

// Run starts the HTTP server and the bot and blocks until ctx is cancelled
// or an interrupt arrives
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	if a.bot != nil {
		if a.config.WebhookMode {
			a.logger.Info("Starting bot in WEBHOOK mode", zap.String("webhook_url", a.config.WebhookURL))
			if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
				a.Shutdown()
				return fmt.Errorf("failed to setup webhook: %w", err)
			}
		} else {
			go func() {
				if err := a.bot.Start(); err != nil {
					a.logger.Error("Bot polling stopped", zap.Error(err))
				}
			}()
		}
	}

	select {
	case <-ctx.Done():
	case err := <-errChan:
		a.Shutdown()
		return fmt.Errorf("HTTP server error: %w", err)
	}

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Export writes the static JSON export to a directory and/or the configured
// S3 bucket
func (a *App) Export(ctx context.Context, outputDir string, toS3 bool, asOf time.Time) ([]string, error) {
	var sinks []export.Sink
	if outputDir != "" {
		dir, err := export.NewDirSink(outputDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, dir)
	}
	if toS3 {
		e := a.config.Export
		bucket, err := export.NewS3Sink(ctx, export.S3Config{
			Bucket:    e.S3Bucket,
			Region:    e.S3Region,
			Endpoint:  e.S3Endpoint,
			Prefix:    e.S3Prefix,
			PathStyle: e.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, bucket)
	}
	return export.NewExporter(a.reports, a.logger, sinks...).Run(ctx, a.pilot.ID, asOf)
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	if a.bot != nil {
		a.bot.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	return a.Close()
}

// Close releases the database without touching the HTTP server
func (a *App) Close() error {
	defer a.logger.Sync()
	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database", zap.Error(err))
		return err
	}
	a.logger.Info("Shutdown complete")
	return nil
}

// Logger returns the application logger
func (a *App) Logger() *zap.Logger {
	return a.logger
}
