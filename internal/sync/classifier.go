package sync

import (
	"context"

	"searchsync/internal/registry"
)

// Classify resolves the item-kind for one connector. Binary-bucket presence
// always wins over a configured content field: in the source model a
// namespace is either a bucket or a document collection, never both. The
// probe looks for a single object; mixed-content collections are unsupported.
func Classify(ctx context.Context, conn registry.Connector, src SourceConn) (ItemKind, error) {
	hasBinary, err := src.HasBinaryObjects(ctx, conn.Database, conn.Collection)
	if err != nil {
		return KindGeneric, err
	}
	if hasBinary {
		return KindBinaryBucket, nil
	}
	if conn.ContentField != "" {
		return KindDeclaredField, nil
	}
	return KindGeneric, nil
}
