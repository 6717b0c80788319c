package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchsync/internal/registry"
	"searchsync/internal/testutils"
)

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite := testutils.NewIntegrationSuite(t)
	suite.Setup()
	defer suite.Teardown()

	ctx := context.Background()

	insert := `INSERT INTO connectors (name, source_uri, database_name, collection_name, category, tenant_id, content_field, field_type, title_field)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := suite.DB.ExecContext(ctx, insert,
		"datasource_mongodb_connection_articles", "mongodb://src:27017", "appdb", "articles", "news", "ACME",
		"content", "markdown", "headline")
	require.NoError(t, err)

	_, err = suite.DB.ExecContext(ctx, insert,
		"datasource_mongodb_connection_files", "mongodb://src:27017", "appdb", "files", "docs", "ACME",
		nil, nil, nil)
	require.NoError(t, err)

	// A row outside the naming convention must not be discovered.
	_, err = suite.DB.ExecContext(ctx, insert,
		"unrelated_connection", "mongodb://src:27017", "otherdb", "stuff", "misc", "ACME",
		nil, nil, nil)
	require.NoError(t, err)

	store := registry.NewPostgresStore(suite.DB, "datasource_mongodb_connection_")

	t.Run("List Honors Prefix", func(t *testing.T) {
		connectors, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, connectors, 2)

		assert.Equal(t, "datasource_mongodb_connection_articles", connectors[0].Name)
		assert.Equal(t, "markdown", connectors[0].FieldType)
		assert.Nil(t, connectors[0].LastSyncedAt)

		assert.Equal(t, "datasource_mongodb_connection_files", connectors[1].Name)
		assert.Empty(t, connectors[1].ContentField)
	})

	t.Run("UpdateWatermark Round Trips", func(t *testing.T) {
		connectors, err := store.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, connectors)

		ts := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, store.UpdateWatermark(ctx, connectors[0].ID, ts))

		after, err := store.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, after[0].LastSyncedAt)
		assert.WithinDuration(t, ts, *after[0].LastSyncedAt, time.Second)
	})
}
