// Package sync walks every registered connector, classifies its source
// collection, extracts and chunks searchable text from each item, and pushes
// the resulting documents to the search sink.
package sync

import (
	"context"
	"time"

	"searchsync/internal/extract"
	"searchsync/internal/registry"
	"searchsync/internal/search"
	"searchsync/internal/source"
)

// ItemKind is the per-connector classification, resolved once before the item
// loop.
type ItemKind int

const (
	// KindGeneric marks untyped documents that are stringified structurally.
	KindGeneric ItemKind = iota
	// KindDeclaredField marks documents with a configured content field and
	// type hint.
	KindDeclaredField
	// KindBinaryBucket marks collections backed by a binary object bucket.
	KindBinaryBucket
)

func (k ItemKind) String() string {
	switch k {
	case KindDeclaredField:
		return "declared-field"
	case KindBinaryBucket:
		return "binary-bucket"
	default:
		return "generic"
	}
}

// SourceConn is one connector's open source connection.
type SourceConn interface {
	HasBinaryObjects(ctx context.Context, database, bucket string) (bool, error)
	Records(ctx context.Context, database, collection string) ([]source.Record, error)
	BinaryObjects(ctx context.Context, database, bucket string) ([]source.BinaryObject, error)
	Close(ctx context.Context) error
}

// Opener establishes a source connection for one connector definition.
type Opener interface {
	Open(ctx context.Context, uri string) (SourceConn, error)
}

// Registry lists connector definitions and records sync watermarks.
type Registry interface {
	List(ctx context.Context) ([]registry.Connector, error)
	UpdateWatermark(ctx context.Context, id string, ts time.Time) error
}

// TextExtractor extracts plain text from a typed field value.
type TextExtractor interface {
	Extract(ctx context.Context, value any, hint string) (extract.Content, error)
}

// BlobExtractor extracts plain text and a sniffed MIME type from raw bytes.
type BlobExtractor interface {
	Extract(ctx context.Context, data []byte) (extract.Content, error)
}

// Archiver stores an original payload and returns its URL. May be nil when
// archival is not configured.
type Archiver interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (string, error)
}

// Sink receives one upsert batch per flush.
type Sink interface {
	IndexBatch(ctx context.Context, index string, docs []search.Document) error
}

// Item carries the per-item metadata the assembler folds into each document.
type Item struct {
	ID          string
	Title       string
	Description string
	Image       string
	FileURL     string
	MIMEType    string
	Size        int64
	UploadedAt  time.Time
}

// Chunk is one bounded slice of an item's extracted text.
type Chunk struct {
	Text    string
	Ordinal int
}
