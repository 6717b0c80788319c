package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults With Required Set", func(t *testing.T) {
		t.Setenv("SEARCH_ENDPOINT", "https://search.example.com")
		t.Setenv("SEARCH_API_KEY", "secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "postgres", cfg.DBHost)
		assert.Equal(t, 5432, cfg.DBPort)
		assert.Equal(t, "datasource_mongodb_connection_", cfg.ConnectorPrefix)
		assert.Equal(t, "2021-04-30-Preview", cfg.SearchAPIVersion)
		assert.Equal(t, "tenant_", cfg.IndexPrefix)
		assert.Equal(t, 30000, cfg.MaxChunkSize)
		assert.Equal(t, 500, cfg.MaxBatchSize)
		assert.Equal(t, "*/5 * * * *", cfg.SyncSchedule)
		assert.Equal(t, 300, cfg.ConnectorTimeoutSeconds)
		assert.Equal(t, 8081, cfg.ServerPort)
		assert.False(t, cfg.EnableOCR)
		assert.Empty(t, cfg.ArchiveBucket)
	})

	t.Run("Overrides From Environment", func(t *testing.T) {
		t.Setenv("SEARCH_ENDPOINT", "https://search.example.com")
		t.Setenv("SEARCH_API_KEY", "secret")
		t.Setenv("MAX_CHUNK_SIZE", "1000")
		t.Setenv("MAX_BATCH_SIZE", "50")
		t.Setenv("SYNC_SCHEDULE", "@every 1m")
		t.Setenv("ENABLE_OCR", "true")
		t.Setenv("ARCHIVE_BUCKET", "sync-archive")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 1000, cfg.MaxChunkSize)
		assert.Equal(t, 50, cfg.MaxBatchSize)
		assert.Equal(t, "@every 1m", cfg.SyncSchedule)
		assert.True(t, cfg.EnableOCR)
		assert.Equal(t, "sync-archive", cfg.ArchiveBucket)
	})

	t.Run("Missing Search Endpoint", func(t *testing.T) {
		t.Setenv("SEARCH_ENDPOINT", "")
		t.Setenv("SEARCH_API_KEY", "secret")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingRequired)
	})

	t.Run("Missing API Key", func(t *testing.T) {
		t.Setenv("SEARCH_ENDPOINT", "https://search.example.com")
		t.Setenv("SEARCH_API_KEY", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingRequired)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBHost:         "localhost",
			SearchEndpoint: "https://search.example.com",
			SearchAPIKey:   "secret",
			IndexPrefix:    "tenant_",
			MaxChunkSize:   30000,
			MaxBatchSize:   500,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Empty Index Prefix", func(t *testing.T) {
		cfg := valid()
		cfg.IndexPrefix = ""
		assert.ErrorIs(t, cfg.Validate(), ErrMissingRequired)
	})

	t.Run("Non Positive Chunk Size", func(t *testing.T) {
		cfg := valid()
		cfg.MaxChunkSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("Non Positive Batch Size", func(t *testing.T) {
		cfg := valid()
		cfg.MaxBatchSize = -1
		assert.Error(t, cfg.Validate())
	})
}
