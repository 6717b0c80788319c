package search

import "time"

// Document is the canonical unit pushed to the search sink. Its ID is a
// deterministic function of the source item and chunk ordinal, so repeated
// submission of unchanged content lands on the same destination document
// (merge-or-upload, never duplicate-insert).
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category"`

	FileURL    string     `json:"fileUrl,omitempty"`
	MIMEType   string     `json:"mimeType,omitempty"`
	Size       int64      `json:"size,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}
