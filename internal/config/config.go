package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"searchsync"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"searchsync"`

	MigrationPath string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Connector definitions are registered under this name prefix; discovery
	// is a prefix match against it.
	ConnectorPrefix string `envconfig:"CONNECTOR_PREFIX" default:"datasource_mongodb_connection_"`

	SearchEndpoint   string `envconfig:"SEARCH_ENDPOINT"`
	SearchAPIKey     string `envconfig:"SEARCH_API_KEY"`
	SearchAPIVersion string `envconfig:"SEARCH_API_VERSION" default:"2021-04-30-Preview"`
	IndexPrefix      string `envconfig:"INDEX_PREFIX" default:"tenant_"`

	// Blob archival. Archival is disabled when no bucket is configured.
	ArchiveBucket         string `envconfig:"ARCHIVE_BUCKET"`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`
	EnableOCR             bool   `envconfig:"ENABLE_OCR" default:"false"`

	MaxChunkSize int `envconfig:"MAX_CHUNK_SIZE" default:"30000"`
	MaxBatchSize int `envconfig:"MAX_BATCH_SIZE" default:"500"`

	SyncSchedule            string `envconfig:"SYNC_SCHEDULE" default:"*/5 * * * *"`
	ConnectorTimeoutSeconds int    `envconfig:"CONNECTOR_TIMEOUT_SECONDS" default:"300"`

	// Server
	ServerPort int `envconfig:"SERVER_PORT" default:"8081"`

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Try loading .env from current dir and repo root
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	rootEnv := filepath.Join(cwd, "../.env")
	_ = godotenv.Load(rootEnv)

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SearchEndpoint == "" {
		return fmt.Errorf("%w: SEARCH_ENDPOINT", ErrMissingRequired)
	}
	if c.SearchAPIKey == "" {
		return fmt.Errorf("%w: SEARCH_API_KEY", ErrMissingRequired)
	}
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.IndexPrefix == "" {
		return fmt.Errorf("%w: INDEX_PREFIX", ErrMissingRequired)
	}
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("MAX_CHUNK_SIZE must be positive, got %d", c.MaxChunkSize)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("MAX_BATCH_SIZE must be positive, got %d", c.MaxBatchSize)
	}
	return nil
}
