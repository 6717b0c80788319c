package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"jaytaylor.com/html2text"
)

// OCRClient extracts text from an image buffer. Implemented by the Vision
// adapter; nil when OCR is disabled.
type OCRClient interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// BlobExtractor sniffs the MIME type of a raw buffer from its leading bytes
// and applies the matching text-extraction strategy. The detected type is
// returned alongside the text so the archived copy can be tagged correctly.
type BlobExtractor struct {
	ocr OCRClient
}

func NewBlobExtractor(ocr OCRClient) *BlobExtractor {
	return &BlobExtractor{ocr: ocr}
}

func (e *BlobExtractor) Extract(ctx context.Context, data []byte) (Content, error) {
	if len(data) == 0 {
		return Content{}, ErrEmptyPayload
	}

	mt := mimetype.Detect(data)
	mime := mt.String()

	switch {
	case mt.Is("application/pdf"):
		text, err := pdfToText(data)
		if err != nil {
			return Content{}, fmt.Errorf("pdf: %w", err)
		}
		return Content{Text: text, MIME: mime}, nil

	case mt.Is("text/html"), mt.Is("text/xml"):
		text, err := html2text.FromString(string(data), html2text.Options{TextOnly: true})
		if err != nil {
			return Content{}, fmt.Errorf("html: %w", err)
		}
		return Content{Text: text, MIME: mime}, nil

	case mt.Is("text/markdown"):
		return Content{Text: MarkdownToText(string(data)), MIME: mime}, nil

	case strings.HasPrefix(mime, "text/"):
		return Content{Text: string(data), MIME: mime}, nil

	case strings.HasPrefix(mime, "image/"):
		if e.ocr == nil {
			return Content{}, fmt.Errorf("%w: %s (ocr disabled)", ErrUnsupportedType, mime)
		}
		text, err := e.ocr.DetectText(ctx, data)
		if err != nil {
			return Content{}, fmt.Errorf("ocr: %w", err)
		}
		return Content{Text: text, MIME: mime}, nil

	default:
		return Content{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func pdfToText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
