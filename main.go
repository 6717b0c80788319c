package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"searchsync/internal/adapter/gcs"
	"searchsync/internal/adapter/vision"
	"searchsync/internal/app"
	"searchsync/internal/config"
	"searchsync/internal/extract"
	"searchsync/internal/logger"
	"searchsync/internal/registry"
	"searchsync/internal/scheduler"
	"searchsync/internal/search"
	"searchsync/internal/source"
	syncer "searchsync/internal/sync"
)

// mongoOpener adapts the source package to the orchestrator's Opener
// interface.
type mongoOpener struct{}

func (mongoOpener) Open(ctx context.Context, uri string) (syncer.SourceConn, error) {
	return source.Open(ctx, uri)
}

func main() {
	// Initialize structured logger
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(log)

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Registry database + migrations
	db, err := app.Bootstrap(cfg)
	if err != nil {
		slog.Error("failed to bootstrap", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3. Adapters
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ocr extract.OCRClient
	if cfg.EnableOCR {
		visionClient, err := vision.NewClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			slog.Error("failed to create vision client", "error", err)
			os.Exit(1)
		}
		defer visionClient.Close()
		ocr = visionClient
	}

	var archiver syncer.Archiver
	if cfg.ArchiveBucket != "" {
		gcsArchiver, err := gcs.NewArchiver(ctx, cfg.ArchiveBucket, cfg.GoogleCredentialsFile)
		if err != nil {
			slog.Error("failed to create archiver", "error", err)
			os.Exit(1)
		}
		defer gcsArchiver.Close()
		archiver = gcsArchiver
	}

	blobExtractor := extract.NewBlobExtractor(ocr)
	textExtractor := extract.NewTextExtractor(blobExtractor)
	connectorStore := registry.NewPostgresStore(db, cfg.ConnectorPrefix)
	sink := search.NewClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.SearchAPIVersion)

	orchestrator := syncer.NewOrchestrator(
		connectorStore,
		mongoOpener{},
		textExtractor,
		blobExtractor,
		archiver,
		sink,
		syncer.Options{
			IndexPrefix:      cfg.IndexPrefix,
			MaxChunkSize:     cfg.MaxChunkSize,
			MaxBatchSize:     cfg.MaxBatchSize,
			ConnectorTimeout: time.Duration(cfg.ConnectorTimeoutSeconds) * time.Second,
		},
	)

	// 4. Scheduler
	sched, err := scheduler.New(cfg.SyncSchedule, orchestrator.Run)
	if err != nil {
		slog.Error("failed to create scheduler", "error", err, "schedule", cfg.SyncSchedule)
		os.Exit(1)
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()
	slog.Info("connector sync scheduler running", "schedule", cfg.SyncSchedule)

	// 5. Admin server
	if err := app.New(cfg.ServerPort).Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
