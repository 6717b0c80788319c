// Package runctx carries the identity of one scheduled sync run, and of the
// connector currently being processed, through the context so every log line
// can be correlated back to its run.
package runctx

import (
	"context"

	"github.com/google/uuid"
)

type key int

const (
	runIDKey key = iota
	connectorKey
)

// NewRunID returns a fresh identifier for one scheduled pass.
func NewRunID() string {
	return uuid.New().String()
}

func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

func WithConnector(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, connectorKey, name)
}

func Connector(ctx context.Context) string {
	if name, ok := ctx.Value(connectorKey).(string); ok {
		return name
	}
	return ""
}
