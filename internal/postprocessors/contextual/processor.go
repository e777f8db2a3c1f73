// Package contextual prefixes chunk content with configured record
// fields to give retrieval more signal.
package contextual

import (
	"context"
	"fmt"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// Delimiter separates a context value from the text it prefixes.
const Delimiter = "||"

// Processor rewrites each chunk's content as "<field value>||<content>",
// once per configured context field, in declaration order. Applying
// several fields nests prefixes left to right, so the most recently
// applied value ends up closest to the original text.
//
// Prefixing is not idempotent: running the processor twice accumulates
// prefixes. The pipeline applies it exactly once per run.
type Processor struct {
	fields []string
}

// New creates a contextual prefix processor for the given record fields.
// Unknown field names are rejected up front.
func New(fields []string) (*Processor, error) {
	probe := domain.SourceRecord{}
	for _, f := range fields {
		if _, ok := probe.Field(f); !ok {
			return nil, fmt.Errorf("%w: unknown context field %q", domain.ErrInvalidConfiguration, f)
		}
	}
	return &Processor{fields: fields}, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "contextual"
}

// Process rewrites the content of every chunk in place.
func (p *Processor) Process(_ context.Context, rec *domain.SourceRecord, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if len(p.fields) == 0 {
		return chunks, nil
	}
	for _, field := range p.fields {
		value, _ := rec.Field(field)
		for i := range chunks {
			chunks[i].Content = value + Delimiter + chunks[i].Content
		}
	}
	return chunks, nil
}
