// Package postprocessors chains chunk-producing and chunk-rewriting
// processors into the record expansion pipeline.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
)

// Pipeline runs a record through all processors in order. The first
// processor typically creates chunks from the record content; later
// processors receive and rewrite them.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline from the given processors.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process expands one record into its chunks.
func (p *Pipeline) Process(ctx context.Context, rec *domain.SourceRecord) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	var err error
	for _, proc := range p.processors {
		chunks, err = proc.Process(ctx, rec, chunks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", proc.Name(), err)
		}
	}
	return chunks, nil
}
