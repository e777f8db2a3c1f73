// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// SplitText splits text into windows of chunkSize characters, each
// overlapping the previous one by overlap characters. Windows start at
// offsets 0, stride, 2*stride, ... with stride = chunkSize - overlap;
// the final window may be shorter. Empty text yields zero chunks.
func SplitText(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidConfiguration, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must satisfy 0 <= overlap < chunk size %d",
			domain.ErrInvalidConfiguration, overlap, chunkSize)
	}

	stride := chunkSize - overlap
	var chunks []string
	for start := 0; start < len(text); start += stride {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks, nil
}

// Processor splits a source record's content into fixed-size chunks,
// copying every non-content field of the parent onto each chunk.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor. Malformed parameters (overlap
// meeting or exceeding the chunk size) are rejected here rather than
// clamped, since they would otherwise corrupt the windowing downstream.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidConfiguration, p.chunkSize)
	}
	if p.overlap < 0 || p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must satisfy 0 <= overlap < chunk size %d",
			domain.ErrInvalidConfiguration, p.overlap, p.chunkSize)
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the record content into chunks. Input chunks are
// ignored; this processor creates new chunks from the record.
func (p *Processor) Process(_ context.Context, rec *domain.SourceRecord, _ []domain.Chunk) ([]domain.Chunk, error) {
	parts, err := SplitText(rec.Content, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, domain.Chunk{
			ID:           ChunkID(rec.ID, i),
			RecordID:     rec.ID,
			Content:      part,
			Position:     i,
			Title:        rec.Title,
			Issuer:       rec.Issuer,
			SFSNumber:    rec.SFSNumber,
			IssuedDate:   rec.IssuedDate,
			InEffectDate: rec.InEffectDate,
		})
	}
	return chunks, nil
}

// ChunkID derives the deterministic chunk identifier from the parent
// record id and the chunk position. Re-running the pipeline over the
// same corpus produces the same ids, which keeps store loads idempotent.
func ChunkID(recordID string, position int) string {
	name := fmt.Sprintf("%s:%d", recordID, position)
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name)).String()
}
