package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"go.uber.org/zap"

	"logbook/internal/app"
	"logbook/migrations"
)

const (
	devPassword = "devpassword"
	devSeedFile = "internal/storage/seed/testdata/logbook.yaml"
)

func main() {
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	logger.Info("Starting ClickHouse testcontainer...")

	clickhouseContainer, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:latest",
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(devPassword),
		clickhouse.WithDatabase("default"),
	)
	if err != nil {
		logger.Fatal("Failed to start ClickHouse container", zap.Error(err))
	}

	// Ensure container cleanup on exit
	defer func() {
		logger.Info("Stopping ClickHouse container...")
		if err := clickhouseContainer.Terminate(ctx); err != nil {
			logger.Warn("Failed to terminate container", zap.Error(err))
		}
	}()

	host, err := clickhouseContainer.Host(ctx)
	if err != nil {
		logger.Fatal("Failed to get container host", zap.Error(err))
	}
	port, err := clickhouseContainer.MappedPort(ctx, "9000/tcp")
	if err != nil {
		logger.Fatal("Failed to get container port", zap.Error(err))
	}
	logger.Info("ClickHouse started", zap.String("host", host), zap.String("port", port.Port()))

	if err := migrate(host, port.Port()); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Set environment variables for the application
	os.Setenv("STORAGE_DRIVER", "clickhouse")
	os.Setenv("CLICKHOUSE_HOST", host)
	os.Setenv("CLICKHOUSE_PORT", port.Port())
	os.Setenv("CLICKHOUSE_DATABASE", "default")
	os.Setenv("CLICKHOUSE_USER", "default")
	os.Setenv("CLICKHOUSE_PASSWORD", devPassword)
	os.Setenv("CLICKHOUSE_USE_TLS", "false")
	os.Setenv("WEBHOOK_MODE", "false")
	os.Setenv("LOG_DEV", "true")
	if os.Getenv("SEED_FILE") == "" {
		os.Setenv("SEED_FILE", devSeedFile)
	}
	if os.Getenv("PORT") == "" {
		os.Setenv("PORT", "8080")
	}

	if os.Getenv("TELEGRAM_BOT_TOKEN") == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN not set, running the API without the bot")
	}

	logger.Info("Starting application with ClickHouse backend...")

	application, err := app.New()
	if err != nil {
		logger.Error("Failed to create application", zap.Error(err))
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Application error", zap.Error(err))
	}
}

// migrate applies the embedded schema through database/sql
func migrate(host, port string) error {
	dsn := fmt.Sprintf("clickhouse://default:%s@%s:%s/default", devPassword, host, port)
	db, err := sql.Open("clickhouse", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return migrations.Up(db)
}
