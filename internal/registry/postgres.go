package registry

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

type PostgresStore struct {
	db     *sql.DB
	prefix string
}

// NewPostgresStore returns a store listing only connectors whose name carries
// the given prefix, matching the registry naming convention.
func NewPostgresStore(db *sql.DB, prefix string) *PostgresStore {
	return &PostgresStore{db: db, prefix: prefix}
}

func (s *PostgresStore) List(ctx context.Context) ([]Connector, error) {
	query := `SELECT id, name, source_uri, database_name, collection_name, category, tenant_id, content_field, field_type, title_field, last_synced_at FROM connectors WHERE name LIKE $1 || '%' ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query, s.prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connectors []Connector
	for rows.Next() {
		var c Connector
		var contentField, fieldType, titleField sql.NullString
		var lastSyncedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.SourceURI, &c.Database, &c.Collection, &c.Category, &c.TenantID,
			&contentField, &fieldType, &titleField, &lastSyncedAt); err != nil {
			return nil, err
		}
		c.ContentField = contentField.String
		c.FieldType = fieldType.String
		c.TitleField = titleField.String
		if lastSyncedAt.Valid {
			t := lastSyncedAt.Time
			c.LastSyncedAt = &t
		}
		connectors = append(connectors, c)
	}
	return connectors, rows.Err()
}

func (s *PostgresStore) UpdateWatermark(ctx context.Context, id string, ts time.Time) error {
	query := `UPDATE connectors SET last_synced_at = $1, updated_at = NOW() WHERE id = $2`
	_, err := s.db.ExecContext(ctx, query, ts, id)
	return err
}
