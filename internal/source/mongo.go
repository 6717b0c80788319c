// Package source reads items from a connector's MongoDB deployment: either
// structured documents from a regular collection, or binary objects from a
// GridFS bucket sharing the collection's name.
package source

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Record is one structured document from a source collection. Fields holds
// every field except _id, which is normalized into ID.
type Record struct {
	ID     string
	Fields map[string]any
}

// BinaryObject is one GridFS file, fully materialized into memory.
type BinaryObject struct {
	ID         string
	Name       string
	Data       []byte
	Length     int64
	UploadedAt time.Time
}

// Conn is a live connection to one connector's MongoDB deployment. It is
// opened per pass and must be closed on every exit path.
type Conn struct {
	client *mongo.Client
}

func Open(ctx context.Context, uri string) (*Conn, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	// Connect is lazy; ping so an unreachable deployment surfaces here,
	// where the caller treats it as connector-fatal.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Conn{client: client}, nil
}

func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Records fetches every document in the collection. No delta filter is
// applied; each pass is a full rescan.
func (c *Conn) Records(ctx context.Context, database, collection string) ([]Record, error) {
	cur, err := c.client.Database(database).Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var records []Record
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		rec := Record{Fields: make(map[string]any, len(doc))}
		for k, v := range doc {
			if k == "_id" {
				rec.ID = FormatID(v)
				continue
			}
			rec.Fields[k] = v
		}
		records = append(records, rec)
	}
	return records, cur.Err()
}

// HasBinaryObjects probes the GridFS bucket named after the collection for at
// least one stored file. A missing bucket yields an empty cursor, not an
// error.
func (c *Conn) HasBinaryObjects(ctx context.Context, database, bucket string) (bool, error) {
	b, err := c.bucket(database, bucket)
	if err != nil {
		return false, err
	}
	cur, err := b.Find(bson.D{}, options.GridFSFind().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("probe bucket: %w", err)
	}
	defer cur.Close(ctx)
	return cur.Next(ctx), cur.Err()
}

// BinaryObjects enumerates the bucket and materializes each file into a
// buffer.
func (c *Conn) BinaryObjects(ctx context.Context, database, bucket string) ([]BinaryObject, error) {
	b, err := c.bucket(database, bucket)
	if err != nil {
		return nil, err
	}
	cur, err := b.Find(bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list bucket: %w", err)
	}
	defer cur.Close(ctx)

	var objects []BinaryObject
	for cur.Next(ctx) {
		var f gridfs.File
		if err := cur.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode file: %w", err)
		}
		stream, err := b.OpenDownloadStream(f.ID)
		if err != nil {
			return nil, fmt.Errorf("open download stream %q: %w", f.Name, err)
		}
		data, err := io.ReadAll(stream)
		_ = stream.Close()
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", f.Name, err)
		}
		objects = append(objects, BinaryObject{
			ID:         FormatID(f.ID),
			Name:       f.Name,
			Data:       data,
			Length:     f.Length,
			UploadedAt: f.UploadDate,
		})
	}
	return objects, cur.Err()
}

func (c *Conn) bucket(database, name string) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(c.client.Database(database), options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, fmt.Errorf("bucket %q: %w", name, err)
	}
	return b, nil
}

// FormatID renders a Mongo _id value as a stable string. ObjectIDs become
// their hex form, everything else falls back to its default rendering.
func FormatID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprintf("%v", id)
	}
}
