package extract

import (
	"context"
	"fmt"
	"strings"

	"jaytaylor.com/html2text"
)

// TextExtractor produces plain text from a typed field value, dispatching on
// the connector's declared field-type hint. Binary hints delegate to the
// BlobExtractor on the raw bytes.
type TextExtractor struct {
	blob *BlobExtractor
}

func NewTextExtractor(blob *BlobExtractor) *TextExtractor {
	return &TextExtractor{blob: blob}
}

func (e *TextExtractor) Extract(ctx context.Context, value any, hint string) (Content, error) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case HintText, HintPlain, "string":
		return Content{Text: asString(value)}, nil

	case HintMarkdown, "md":
		return Content{Text: MarkdownToText(asString(value))}, nil

	case HintHTML:
		text, err := html2text.FromString(asString(value), html2text.Options{TextOnly: true})
		if err != nil {
			return Content{}, fmt.Errorf("html: %w", err)
		}
		return Content{Text: text}, nil

	case HintBinary, HintPDF, "blob":
		data, err := asBytes(value)
		if err != nil {
			return Content{}, err
		}
		return e.blob.Extract(ctx, data)

	default:
		// Unrecognized hints fall back to generic stringification rather
		// than failing the item.
		return Content{Text: asString(value)}, nil
	}
}
