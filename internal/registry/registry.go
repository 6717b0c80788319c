// Package registry reads connector definitions from the configuration store
// and writes back sync watermarks. Definitions themselves are created and
// edited by an external administrative process; this service only lists them
// and advances last_synced_at after a successful push.
package registry

import (
	"context"
	"time"
)

// Connector describes one synchronization unit: a MongoDB collection or
// GridFS bucket to be mirrored into a tenant-scoped search index.
type Connector struct {
	ID         string
	Name       string
	SourceURI  string
	Database   string
	Collection string
	Category   string
	TenantID   string

	// ContentField names the document field holding the searchable content,
	// with FieldType as its declared type hint (text, markdown, html,
	// binary). Both are empty for untyped collections.
	ContentField string
	FieldType    string
	TitleField   string

	// LastSyncedAt is advisory: it records the last successful push but is
	// not used to filter source reads, which are full rescans. It is kept so
	// a future change-feed query has its lower bound.
	LastSyncedAt *time.Time
}

type Store interface {
	List(ctx context.Context) ([]Connector, error)
	UpdateWatermark(ctx context.Context, id string, ts time.Time) error
}
