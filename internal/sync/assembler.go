package sync

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"searchsync/internal/registry"
	"searchsync/internal/search"
)

const defaultDescription = "No description available"

// Assembler builds canonical search documents from chunks. It is total:
// every missing optional field has a defaulting rule, so assembly never
// fails given a chunk and a connector.
type Assembler struct {
	IndexPrefix string
}

// IndexName derives the tenant-scoped destination index. Tenant identifiers
// are case-folded so differing casings of the same tenant share one index.
func (a Assembler) IndexName(tenantID string) string {
	return a.IndexPrefix + strings.ToLower(tenantID)
}

func (a Assembler) Assemble(chunk Chunk, item Item, conn registry.Connector) search.Document {
	doc := search.Document{
		ID:          DocumentID(conn.Database, conn.Collection, item.ID, chunk.Ordinal),
		Title:       item.Title,
		Content:     chunk.Text,
		Description: item.Description,
		Image:       item.Image,
		Category:    conn.Category,
		FileURL:     item.FileURL,
		MIMEType:    item.MIMEType,
		Size:        item.Size,
	}
	if doc.Title == "" {
		doc.Title = "Document " + item.ID
	}
	if doc.Description == "" {
		doc.Description = defaultDescription
	}
	if !item.UploadedAt.IsZero() {
		t := item.UploadedAt
		doc.UploadedAt = &t
	}
	return doc
}

// DocumentID is a deterministic function of the source namespace, collection,
// item id and chunk ordinal: repeated passes over unchanged content produce
// the same id, and sibling chunks always differ in their ordinal suffix. The
// item id is embedded (sanitized) for readability; the hash disambiguates ids
// that collide after sanitization.
func DocumentID(database, collection, itemID string, ordinal int) string {
	sum := sha256.Sum256([]byte(database + "|" + collection + "|" + itemID))
	return fmt.Sprintf("%s-%x-%d", sanitizeKey(itemID), sum[:8], ordinal)
}

// sanitizeKey maps an arbitrary identifier onto the character set the search
// service allows in document keys (letters, digits, '_', '-', '=').
func sanitizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '=':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
