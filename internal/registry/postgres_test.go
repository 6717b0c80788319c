package registry

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listQuery = `SELECT id, name, source_uri, database_name, collection_name, category, tenant_id, content_field, field_type, title_field, last_synced_at FROM connectors WHERE name LIKE \$1 \|\| '%' ORDER BY name`

func connectorColumns() []string {
	return []string{"id", "name", "source_uri", "database_name", "collection_name", "category", "tenant_id", "content_field", "field_type", "title_field", "last_synced_at"}
}

func TestPostgresStore_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Scans Rows With Optional Fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		synced := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(connectorColumns()).
			AddRow("id-1", "datasource_mongodb_connection_articles", "mongodb://src:27017", "appdb", "articles", "news", "ACME",
				"content", "markdown", "headline", synced).
			AddRow("id-2", "datasource_mongodb_connection_files", "mongodb://src:27017", "appdb", "files", "docs", "ACME",
				nil, nil, nil, nil)

		mock.ExpectQuery(listQuery).
			WithArgs("datasource_mongodb_connection_").
			WillReturnRows(rows)

		store := NewPostgresStore(db, "datasource_mongodb_connection_")
		connectors, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, connectors, 2)

		first := connectors[0]
		assert.Equal(t, "id-1", first.ID)
		assert.Equal(t, "appdb", first.Database)
		assert.Equal(t, "articles", first.Collection)
		assert.Equal(t, "content", first.ContentField)
		assert.Equal(t, "markdown", first.FieldType)
		assert.Equal(t, "headline", first.TitleField)
		require.NotNil(t, first.LastSyncedAt)
		assert.Equal(t, synced, *first.LastSyncedAt)

		second := connectors[1]
		assert.Empty(t, second.ContentField)
		assert.Empty(t, second.FieldType)
		assert.Empty(t, second.TitleField)
		assert.Nil(t, second.LastSyncedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Matching Connectors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(listQuery).
			WithArgs("datasource_mongodb_connection_").
			WillReturnRows(sqlmock.NewRows(connectorColumns()))

		store := NewPostgresStore(db, "datasource_mongodb_connection_")
		connectors, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, connectors)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(listQuery).
			WithArgs("datasource_mongodb_connection_").
			WillReturnError(errors.New("connection refused"))

		store := NewPostgresStore(db, "datasource_mongodb_connection_")
		_, err = store.List(ctx)
		assert.Error(t, err)
	})
}

func TestPostgresStore_UpdateWatermark(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates Timestamp", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ts := time.Now().UTC()
		mock.ExpectExec(`UPDATE connectors SET last_synced_at = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(ts, "id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		store := NewPostgresStore(db, "datasource_mongodb_connection_")
		require.NoError(t, store.UpdateWatermark(ctx, "id-1", ts))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exec Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ts := time.Now().UTC()
		mock.ExpectExec(`UPDATE connectors SET`).
			WithArgs(ts, "id-1").
			WillReturnError(sql.ErrConnDone)

		store := NewPostgresStore(db, "datasource_mongodb_connection_")
		assert.Error(t, store.UpdateWatermark(ctx, "id-1", ts))
	})
}
