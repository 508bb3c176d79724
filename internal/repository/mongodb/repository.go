package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	cattleCollection  = "cattle"
	milkCollection    = "milkRecords"
	weightCollection  = "weightRecords"
	medicalCollection = "medicalObservations"
)

// ErrNotFound indicates the referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrPermissionDenied indicates the record store rejected the operation for
// authorization reasons. This usually means a misconfigured access policy, not
// a transient fault, so callers should surface it distinctly.
var ErrPermissionDenied = errors.New("record store permission denied")

// Mongo server error codes that signal an authorization failure.
const (
	codeUnauthorized = 13
	codeAtlasError   = 8000
)

// Repository is the MongoDB-backed record store for the four entity
// collections. Documents are keyed by ObjectID; the domain sees hex strings.
type Repository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName, logger: logger}, nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) coll(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid document id %q: %w", id, err)
	}
	return oid, nil
}

// wrapStoreErr attaches operation context and maps authorization failures to
// ErrPermissionDenied so callers can distinguish them from transient faults.
func wrapStoreErr(op string, err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == codeUnauthorized || cmdErr.Code == codeAtlasError) {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// watchSnapshots opens a change stream on the named collection and forwards a
// full re-fetched snapshot on every change. No deltas: each notification fully
// replaces the previous in-memory collection, so consumers always recompute
// aggregations from scratch. The returned channel is closed when ctx is
// cancelled or the stream fails.
func watchSnapshots[T any](ctx context.Context, r *Repository, name string, fetch func(context.Context) ([]T, error)) (<-chan []T, error) {
	stream, err := r.coll(name).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, wrapStoreErr("watch "+name, err)
	}

	out := make(chan []T, 1)
	go func() {
		defer close(out)
		defer func() {
			if err := stream.Close(context.Background()); err != nil {
				r.logger.Warn("failed to close change stream", zap.String("collection", name), zap.Error(err))
			}
		}()

		// Initial snapshot so subscribers render without waiting for a change.
		if snap, err := fetch(ctx); err == nil {
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		} else {
			r.logger.Warn("initial snapshot fetch failed", zap.String("collection", name), zap.Error(err))
		}

		for stream.Next(ctx) {
			snap, err := fetch(ctx)
			if err != nil {
				r.logger.Warn("snapshot refetch failed", zap.String("collection", name), zap.Error(err))
				continue
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Warn("change stream terminated", zap.String("collection", name), zap.Error(err))
		}
	}()

	return out, nil
}
