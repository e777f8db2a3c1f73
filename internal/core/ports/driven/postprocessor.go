package driven

import (
	"context"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// PostProcessor processes a source record to produce or rewrite chunks.
// PostProcessors are chained in a pipeline: the chunker creates chunks
// from the record content, later stages (context prefixing, token-bound
// normalization) receive and rewrite them.
type PostProcessor interface {
	// Name returns the processor name for logging.
	Name() string

	// Process takes a record and the chunks produced so far.
	// A chunk-creating processor receives nil and returns new chunks.
	Process(ctx context.Context, rec *domain.SourceRecord, chunks []domain.Chunk) ([]domain.Chunk, error)
}
