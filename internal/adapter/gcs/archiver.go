// Package gcs archives original binary payloads to a Cloud Storage bucket so
// search results can link back to the source file.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Archiver struct {
	client *storage.Client
	bucket string
}

func NewArchiver(ctx context.Context, bucket, credentialsFile string) (*Archiver, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Archiver{client: client, bucket: bucket}, nil
}

// Upload writes the buffer under the given object name with its content type
// and returns the object's public URL.
func (a *Archiver) Upload(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = mimeType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %q: %w", name, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucket, name), nil
}

func (a *Archiver) Close() error {
	return a.client.Close()
}
