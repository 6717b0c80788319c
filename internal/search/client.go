// Package search submits document batches to the destination search service.
// One batch upsert call is made per connector per pass; every document is
// tagged with a merge-or-upload action so resubmission is idempotent.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const actionMergeOrUpload = "mergeOrUpload"

type Client struct {
	endpoint   string
	apiKey     string
	apiVersion string
	client     *http.Client
}

func NewClient(endpoint, apiKey, apiVersion string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		apiVersion: apiVersion,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type indexAction struct {
	Action string `json:"@search.action"`
	Document
}

// IndexBatch upserts the documents into the named index in one call. The
// response body is logged, not parsed beyond the status check.
func (c *Client) IndexBatch(ctx context.Context, index string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	actions := make([]indexAction, 0, len(docs))
	for _, d := range docs {
		actions = append(actions, indexAction{Action: actionMergeOrUpload, Document: d})
	}
	payload := struct {
		Value []indexAction `json:"value"`
	}{Value: actions}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/index?api-version=%s", c.endpoint, index, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit batch: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("search api error: status %d: %s", resp.StatusCode, respBody)
	}

	slog.InfoContext(ctx, "batch indexed", "index", index, "documents", len(docs), "status", resp.StatusCode, "response", string(respBody))
	return nil
}
