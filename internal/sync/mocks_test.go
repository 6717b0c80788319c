package sync_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"searchsync/internal/extract"
	"searchsync/internal/registry"
	"searchsync/internal/search"
	"searchsync/internal/source"
	syncpkg "searchsync/internal/sync"
)

// Mocks

type MockRegistry struct{ mock.Mock }

func (m *MockRegistry) List(ctx context.Context) ([]registry.Connector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.Connector), args.Error(1)
}

func (m *MockRegistry) UpdateWatermark(ctx context.Context, id string, ts time.Time) error {
	args := m.Called(ctx, id, ts)
	return args.Error(0)
}

type MockOpener struct{ mock.Mock }

func (m *MockOpener) Open(ctx context.Context, uri string) (syncpkg.SourceConn, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(syncpkg.SourceConn), args.Error(1)
}

type MockSourceConn struct{ mock.Mock }

func (m *MockSourceConn) HasBinaryObjects(ctx context.Context, database, bucket string) (bool, error) {
	args := m.Called(ctx, database, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *MockSourceConn) Records(ctx context.Context, database, collection string) ([]source.Record, error) {
	args := m.Called(ctx, database, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]source.Record), args.Error(1)
}

func (m *MockSourceConn) BinaryObjects(ctx context.Context, database, bucket string) ([]source.BinaryObject, error) {
	args := m.Called(ctx, database, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]source.BinaryObject), args.Error(1)
}

func (m *MockSourceConn) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSink struct{ mock.Mock }

func (m *MockSink) IndexBatch(ctx context.Context, index string, docs []search.Document) error {
	args := m.Called(ctx, index, docs)
	return args.Error(0)
}

type MockArchiver struct{ mock.Mock }

func (m *MockArchiver) Upload(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	args := m.Called(ctx, name, mimeType, data)
	return args.String(0), args.Error(1)
}

type MockTextExtractor struct{ mock.Mock }

func (m *MockTextExtractor) Extract(ctx context.Context, value any, hint string) (extract.Content, error) {
	args := m.Called(ctx, value, hint)
	return args.Get(0).(extract.Content), args.Error(1)
}
