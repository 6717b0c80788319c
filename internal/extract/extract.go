// Package extract turns source field values and raw binary buffers into
// search-ready plain text. TextExtractor handles values with a declared type
// hint; BlobExtractor handles unknown binary buffers by sniffing their
// leading bytes.
package extract

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content is the plain-text result of extraction, plus the detected MIME type
// when the input was binary. FileURL is filled in later, after the original
// payload has been archived.
type Content struct {
	Text    string
	MIME    string
	FileURL string
}

var (
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrEmptyPayload    = errors.New("empty payload")
)

// Declared field-type hints understood by TextExtractor. Anything else falls
// back to generic stringification.
const (
	HintText     = "text"
	HintPlain    = "plain"
	HintMarkdown = "markdown"
	HintHTML     = "html"
	HintBinary   = "binary"
	HintPDF      = "pdf"
)

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return stringify(v)
}

func asBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case primitive.Binary:
		return b.Data, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("field value is %T, not binary", v)
	}
}

// stringify renders an arbitrary value as human-readable text. BSON extended
// JSON keeps Mongo-specific types (ObjectIDs, dates) legible.
func stringify(v any) string {
	out, err := bson.MarshalExtJSONIndent(v, false, false, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// Stringify is the generic-document path: the whole record is serialized as
// readable text so untyped collections still become searchable.
func Stringify(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	return stringify(fields)
}
