package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"searchsync/internal/extract"
	"searchsync/internal/registry"
	"searchsync/internal/runctx"
	"searchsync/internal/source"
	"searchsync/internal/text"
)

type Options struct {
	IndexPrefix      string
	MaxChunkSize     int
	MaxBatchSize     int
	ConnectorTimeout time.Duration
}

// Orchestrator runs one full synchronization pass: for every registered
// connector it opens the source, classifies the collection, extracts and
// chunks each item, submits the resulting documents, and advances the
// connector's watermark on success. Connectors are processed sequentially
// and fail independently.
type Orchestrator struct {
	registry  Registry
	opener    Opener
	text      TextExtractor
	blob      BlobExtractor
	archiver  Archiver
	sink      Sink
	assembler Assembler
	opts      Options
}

func NewOrchestrator(reg Registry, opener Opener, textEx TextExtractor, blobEx BlobExtractor, archiver Archiver, sink Sink, opts Options) *Orchestrator {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = text.DefaultMaxChunkSize
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 500
	}
	if opts.ConnectorTimeout <= 0 {
		opts.ConnectorTimeout = 5 * time.Minute
	}
	if opts.IndexPrefix == "" {
		opts.IndexPrefix = "tenant_"
	}
	return &Orchestrator{
		registry:  reg,
		opener:    opener,
		text:      textEx,
		blob:      blobEx,
		archiver:  archiver,
		sink:      sink,
		assembler: Assembler{IndexPrefix: opts.IndexPrefix},
		opts:      opts,
	}
}

// Run executes one pass over every registered connector. A failing connector
// is logged and skipped; Run only returns an error when the registry itself
// cannot be listed.
func (o *Orchestrator) Run(ctx context.Context) error {
	ctx = runctx.WithRunID(ctx, runctx.NewRunID())
	slog.InfoContext(ctx, "starting connector sync pass")

	connectors, err := o.registry.List(ctx)
	if err != nil {
		return fmt.Errorf("list connectors: %w", err)
	}
	slog.InfoContext(ctx, "connectors discovered", "count", len(connectors))

	for _, conn := range connectors {
		cctx := runctx.WithConnector(ctx, conn.Name)
		cctx, cancel := context.WithTimeout(cctx, o.opts.ConnectorTimeout)
		slog.InfoContext(cctx, "processing collection", "database", conn.Database, "collection", conn.Collection)
		if err := o.syncConnector(cctx, conn); err != nil {
			slog.ErrorContext(cctx, "connector sync failed", "error", err)
		}
		cancel()
	}

	slog.InfoContext(ctx, "sync pass finished")
	return nil
}

func (o *Orchestrator) syncConnector(ctx context.Context, conn registry.Connector) error {
	src, err := o.opener.Open(ctx, conn.SourceURI)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if err := src.Close(ctx); err != nil {
			slog.WarnContext(ctx, "failed to close source connection", "error", err)
		}
	}()

	kind, err := Classify(ctx, conn, src)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	slog.InfoContext(ctx, "collection classified", "kind", kind.String())

	batch := newBatchBuilder(o.sink, o.assembler.IndexName(conn.TenantID), o.opts.MaxBatchSize)

	if kind == KindBinaryBucket {
		err = o.syncBinary(ctx, conn, src, batch)
	} else {
		err = o.syncRecords(ctx, conn, src, kind, batch)
	}
	if err != nil {
		return err
	}

	if err := batch.Flush(ctx); err != nil {
		return fmt.Errorf("submit batch: %w", err)
	}
	if batch.Submitted() == 0 {
		slog.InfoContext(ctx, "no documents produced")
		return nil
	}

	slog.InfoContext(ctx, "documents pushed", "count", batch.Submitted())
	if err := o.registry.UpdateWatermark(ctx, conn.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update watermark: %w", err)
	}
	return nil
}

func (o *Orchestrator) syncRecords(ctx context.Context, conn registry.Connector, src SourceConn, kind ItemKind, batch *batchBuilder) error {
	records, err := src.Records(ctx, conn.Database, conn.Collection)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	for _, rec := range records {
		content, err := o.extractRecord(ctx, conn, kind, rec)
		if err != nil {
			slog.WarnContext(ctx, "skipping record", "record_id", rec.ID, "error", err)
			continue
		}
		item := recordItem(conn, rec)
		item.FileURL = content.FileURL
		item.MIMEType = content.MIME
		if err := o.emit(ctx, conn, item, content.Text, batch); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) extractRecord(ctx context.Context, conn registry.Connector, kind ItemKind, rec source.Record) (extract.Content, error) {
	if kind == KindDeclaredField {
		value, ok := rec.Fields[conn.ContentField]
		if !ok {
			return extract.Content{}, fmt.Errorf("content field %q missing", conn.ContentField)
		}
		return o.text.Extract(ctx, value, conn.FieldType)
	}

	// Generic path: the whole record is stringified, and the rendering is
	// archived as text when an archiver is configured.
	content := extract.Content{Text: extract.Stringify(rec.Fields)}
	if o.archiver != nil && content.Text != "" {
		name := archiveName(conn, rec.ID+".txt")
		url, err := o.archiver.Upload(ctx, name, "text/plain", []byte(content.Text))
		if err != nil {
			slog.WarnContext(ctx, "archive failed, continuing without file url", "record_id", rec.ID, "error", err)
		} else {
			content.FileURL = url
		}
	}
	return content, nil
}

func (o *Orchestrator) syncBinary(ctx context.Context, conn registry.Connector, src SourceConn, batch *batchBuilder) error {
	objects, err := src.BinaryObjects(ctx, conn.Database, conn.Collection)
	if err != nil {
		return fmt.Errorf("fetch binary objects: %w", err)
	}

	for _, obj := range objects {
		content, err := o.blob.Extract(ctx, obj.Data)
		if err != nil {
			slog.WarnContext(ctx, "skipping binary object", "object_id", obj.ID, "name", obj.Name, "error", err)
			continue
		}

		item := Item{
			ID:         obj.ID,
			Title:      obj.Name,
			Size:       obj.Length,
			UploadedAt: obj.UploadedAt,
			MIMEType:   content.MIME,
		}
		if o.archiver != nil {
			url, err := o.archiver.Upload(ctx, archiveName(conn, objectName(obj)), content.MIME, obj.Data)
			if err != nil {
				slog.WarnContext(ctx, "archive failed, continuing without file url", "object_id", obj.ID, "error", err)
			} else {
				item.FileURL = url
			}
		}

		if err := o.emit(ctx, conn, item, content.Text, batch); err != nil {
			return err
		}
	}
	return nil
}

// emit chunks the extracted text and adds one document per chunk. Empty text
// yields zero chunks and therefore zero documents. A batch submission error
// is connector-fatal, unlike per-item extraction errors.
func (o *Orchestrator) emit(ctx context.Context, conn registry.Connector, item Item, extracted string, batch *batchBuilder) error {
	for i, c := range text.Split(extracted, o.opts.MaxChunkSize) {
		doc := o.assembler.Assemble(Chunk{Text: c, Ordinal: i}, item, conn)
		if err := batch.Add(ctx, doc); err != nil {
			return fmt.Errorf("submit batch: %w", err)
		}
	}
	return nil
}

// recordItem pulls the declared (or conventional) title, description and
// image fields off a structured record.
func recordItem(conn registry.Connector, rec source.Record) Item {
	titleField := conn.TitleField
	if titleField == "" {
		titleField = "title"
	}
	item := Item{ID: rec.ID}
	if v, ok := rec.Fields[titleField].(string); ok {
		item.Title = v
	}
	if v, ok := rec.Fields["description"].(string); ok {
		item.Description = v
	}
	if v, ok := rec.Fields["image"].(string); ok {
		item.Image = v
	}
	return item
}

func archiveName(conn registry.Connector, object string) string {
	return conn.Database + "/" + conn.Collection + "/" + object
}

func objectName(obj source.BinaryObject) string {
	if obj.Name == "" {
		return obj.ID
	}
	return obj.ID + "_" + obj.Name
}
