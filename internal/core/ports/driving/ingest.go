package driving

import (
	"context"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// IngestService runs the chunking-and-embedding pipeline: expand records
// into token-bounded chunks, embed them and load them into the store.
type IngestService interface {
	// Expand runs the post-processing pipeline over the records and
	// returns the token-bounded chunks, densely renumbered per record.
	// Purely computational; never contacts the embedding service.
	Expand(ctx context.Context, records []domain.SourceRecord) ([]domain.Chunk, error)

	// Embed fills in the chunks' vectors in place, in order. The whole
	// batch is rejected before the first call if any chunk's token count
	// meets the configured ceiling; per-item failures leave a nil vector.
	Embed(ctx context.Context, chunks []domain.Chunk) error

	// Ingest runs Expand, Embed and the store load end to end.
	// Returns the number of objects stored.
	Ingest(ctx context.Context, records []domain.SourceRecord) (int, error)
}
