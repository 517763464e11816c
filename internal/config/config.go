package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Storage drivers
const (
	DriverClickHouse = "clickhouse"
	DriverSQLite     = "sqlite"
	DriverMemory     = "memory"
)

// Config holds the application configuration
type Config struct {
	// Storage configuration
	StorageDriver string
	SQLitePath    string
	SeedFile      string // YAML ledger applied to an empty store at startup

	// PilotID selects whose logbook is served; uuid.Nil means the owner on file
	PilotID uuid.UUID

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	Port   string
	LogDev bool

	// Telegram bot, disabled when the token is empty
	TelegramToken  string
	AllowedUserIDs []int64
	WebhookMode    bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL     string // URL for webhook (required if WebhookMode is true)

	Export ExportConfig
}

// ExportConfig locates the S3 bucket receiving the static JSON export
type ExportConfig struct {
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3PathStyle bool
}

// BotEnabled reports whether a Telegram token was configured
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{
		StorageDriver: strings.ToLower(os.Getenv("STORAGE_DRIVER")),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		SeedFile:      os.Getenv("SEED_FILE"),
		Port:          os.Getenv("PORT"),
		LogDev:        os.Getenv("LOG_DEV") == "true",
	}

	if config.Port == "" {
		config.Port = "8080" // Default port
	}

	if raw := os.Getenv("PILOT_ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PILOT_ID: %w", err)
		}
		config.PilotID = id
	}

	switch config.StorageDriver {
	case "":
		config.StorageDriver = DriverClickHouse
		fallthrough
	case DriverClickHouse:
		if err := loadClickHouse(config); err != nil {
			return nil, err
		}
	case DriverSQLite:
		if config.SQLitePath == "" {
			config.SQLitePath = "logbook.db"
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected clickhouse, sqlite or memory)", config.StorageDriver)
	}

	if err := loadTelegram(config); err != nil {
		return nil, err
	}

	config.Export = ExportConfig{
		S3Bucket:    os.Getenv("EXPORT_S3_BUCKET"),
		S3Region:    os.Getenv("EXPORT_S3_REGION"),
		S3Endpoint:  os.Getenv("EXPORT_S3_ENDPOINT"),
		S3Prefix:    os.Getenv("EXPORT_S3_PREFIX"),
		S3PathStyle: os.Getenv("EXPORT_S3_PATH_STYLE") == "true",
	}

	return config, nil
}

func loadClickHouse(config *Config) error {
	config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
	if config.ClickHouseHost == "" {
		return fmt.Errorf("CLICKHOUSE_HOST is required for the clickhouse storage driver")
	}

	portStr := os.Getenv("CLICKHOUSE_PORT")
	if portStr == "" {
		config.ClickHousePort = 9000 // Default ClickHouse native port
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
		}
		config.ClickHousePort = port
	}

	config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
	if config.ClickHouseDatabase == "" {
		config.ClickHouseDatabase = "default"
	}

	config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
	if config.ClickHouseUser == "" {
		config.ClickHouseUser = "default"
	}

	// Password is optional, can be empty
	config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
	config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	return nil
}

func loadTelegram(config *Config) error {
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil
	}

	allowedIDsStr := os.Getenv("ALLOWED_USER_IDS")
	if allowedIDsStr == "" {
		return fmt.Errorf("ALLOWED_USER_IDS is required when TELEGRAM_BOT_TOKEN is set (comma-separated list of Telegram user IDs)")
	}
	for _, idStr := range strings.Split(allowedIDsStr, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID in ALLOWED_USER_IDS: %s", idStr)
		}
		config.AllowedUserIDs = append(config.AllowedUserIDs, id)
	}

	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = strings.TrimSuffix(os.Getenv("WEBHOOK_URL"), "/")
		if config.WebhookURL == "" {
			return fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}
	return nil
}
