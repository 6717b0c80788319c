package sync

import (
	"context"

	"searchsync/internal/search"
)

// batchBuilder accumulates documents for one connector and flushes them to
// the sink whenever the bound is reached, keeping memory bounded on very
// large collections. Submitted counts documents actually pushed.
type batchBuilder struct {
	sink      Sink
	index     string
	max       int
	docs      []search.Document
	submitted int
}

func newBatchBuilder(sink Sink, index string, max int) *batchBuilder {
	return &batchBuilder{sink: sink, index: index, max: max}
}

func (b *batchBuilder) Add(ctx context.Context, doc search.Document) error {
	b.docs = append(b.docs, doc)
	if len(b.docs) >= b.max {
		return b.Flush(ctx)
	}
	return nil
}

func (b *batchBuilder) Flush(ctx context.Context) error {
	if len(b.docs) == 0 {
		return nil
	}
	if err := b.sink.IndexBatch(ctx, b.index, b.docs); err != nil {
		return err
	}
	b.submitted += len(b.docs)
	b.docs = b.docs[:0]
	return nil
}

func (b *batchBuilder) Submitted() int {
	return b.submitted
}
