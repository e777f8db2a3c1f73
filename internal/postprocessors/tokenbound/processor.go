// Package tokenbound normalizes chunk text for embedding and annotates
// each chunk with its token count under the embedding model's vocabulary.
package tokenbound

import (
	"context"
	"strings"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
)

// Processor cleans chunk content and counts tokens. It is purely
// computational and never contacts the embedding service; the token
// ceiling itself is enforced by the ingest service before embedding.
type Processor struct {
	tokenizer driven.Tokenizer
}

// New creates a token-bound normalizer backed by the given tokenizer.
func New(tokenizer driven.Tokenizer) *Processor {
	return &Processor{tokenizer: tokenizer}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "tokenbound"
}

// Process normalizes every chunk's content in place and records its
// token count.
func (p *Processor) Process(_ context.Context, _ *domain.SourceRecord, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		chunks[i].Content = Normalize(chunks[i].Content)
		chunks[i].NTokens = len(p.tokenizer.Encode(chunks[i].Content))
	}
	return chunks, nil
}

// Normalize cleans text for embedding: newlines and carriage returns
// become single spaces, slashes are stripped, and runs of spaces
// collapse to one. Character replacement happens before whitespace
// collapsing; the order matters for reproducibility.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "/", "")
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	return text
}
