// Package vision adapts the Cloud Vision API to the pipeline's OCR interface.
package vision

import (
	"context"
	"fmt"

	visionapi "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

type Client struct {
	api *visionapi.ImageAnnotatorClient
}

func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	api, err := visionapi.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &Client{api: api}, nil
}

// DetectText runs document text detection on an image buffer and returns the
// full extracted text. An image with no detectable text yields an empty
// string, not an error.
func (c *Client) DetectText(ctx context.Context, image []byte) (string, error) {
	annotation, err := c.api.DetectDocumentText(ctx, &visionpb.Image{Content: image}, nil)
	if err != nil {
		return "", fmt.Errorf("detect document text: %w", err)
	}
	if annotation == nil {
		return "", nil
	}
	return annotation.GetText(), nil
}

func (c *Client) Close() error {
	return c.api.Close()
}
