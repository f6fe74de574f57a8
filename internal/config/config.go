package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	StockAPI StockAPIConfig
	MongoDB  MongoDBConfig
	Sheets   SheetsConfig
	Jobs     JobsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StockAPIConfig points at the remote product/purchase/sale/profit API.
type StockAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MongoDBConfig holds settings for the local sale journal. An empty URI
// disables journaling.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the sales summary export. An empty
// spreadsheet ID disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// JobsConfig holds scheduler-related settings.
type JobsConfig struct {
	CatalogRefreshCron string
	SalesExportCron    string
	Timezone           string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeoutSeconds, err := strconv.Atoi(getenvWithDefault("STOCK_API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid STOCK_API_TIMEOUT_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		StockAPI: StockAPIConfig{
			BaseURL: getenvWithDefault("STOCK_API_BASE_URL", "http://127.0.0.1:5000"),
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stock-manager"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Jobs: JobsConfig{
			CatalogRefreshCron: getenvWithDefault("CATALOG_REFRESH_CRON", "*/5 * * * *"),
			SalesExportCron:    getenvWithDefault("SALES_EXPORT_CRON", "0 20 * * *"),
			Timezone:           getenvWithDefault("TIMEZONE", "America/Argentina/Buenos_Aires"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.StockAPI.BaseURL == "" {
		return errors.New("STOCK_API_BASE_URL must be provided")
	}

	if c.StockAPI.Timeout <= 0 {
		return errors.New("STOCK_API_TIMEOUT_SECONDS must be positive")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	if c.Jobs.CatalogRefreshCron == "" {
		return errors.New("CATALOG_REFRESH_CRON must be provided")
	}

	if c.Jobs.SalesExportCron == "" {
		return errors.New("SALES_EXPORT_CRON must be provided")
	}

	if c.Jobs.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
