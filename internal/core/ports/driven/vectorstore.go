package driven

import (
	"context"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// VectorStore wraps an external approximate-nearest-neighbour index.
//
// The store is a remote stateful service; the adapter assumes
// single-writer semantics during a load and tolerates partial batch
// failure (failed items are logged and skipped, never retried here).
type VectorStore interface {
	// EnsureCollection creates the collection if it does not exist.
	// Idempotent; validates the schema before any network call.
	EnsureCollection(ctx context.Context, schema domain.CollectionSchema) error

	// GetCollection fetches the stored schema for a collection.
	// The boolean reports whether the collection exists.
	GetCollection(ctx context.Context, class string) (*domain.CollectionSchema, bool, error)

	// DropCollection deletes a collection. Best-effort: "not found"
	// style errors are swallowed and logged.
	DropCollection(ctx context.Context, class string) error

	// Load persists embedded chunks in batches of batchSize. Chunks with
	// a nil embedding are skipped. Returns the number of objects stored.
	Load(ctx context.Context, class string, chunks []domain.Chunk, batchSize int) (int, error)

	// Search returns the nearest stored entries to the query vector,
	// ordered by ascending distance, at most opts.Limit of them.
	Search(ctx context.Context, class string, vector []float32, opts domain.SearchOptions) ([]domain.QueryResult, error)
}
