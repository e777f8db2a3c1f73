package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
	"github.com/nordlaw/lagrum/internal/core/ports/driving"
	"github.com/nordlaw/lagrum/internal/logger"
	"github.com/nordlaw/lagrum/internal/postprocessors"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// Ingest pipeline defaults.
const (
	// DefaultTokenLimit is the per-chunk token ceiling enforced before
	// any embedding call is made.
	DefaultTokenLimit = 2000

	// DefaultBatchSize is the vector store load batch size.
	DefaultBatchSize = 64

	// DefaultEmbedDelay is the pause between consecutive embedding
	// calls used by the stock configuration. The embedding API is rate
	// limited; the loop is strictly sequential and never issues
	// concurrent requests.
	DefaultEmbedDelay = 100 * time.Millisecond
)

// IngestConfig tunes the chunking-and-embedding pipeline.
// Zero TokenLimit and BatchSize fall back to the defaults above.
type IngestConfig struct {
	Class      string
	TokenLimit int
	BatchSize  int

	// EmbedDelay is the pause between consecutive embedding calls.
	// Zero disables the pause entirely; negative values are rejected.
	EmbedDelay time.Duration
}

// IngestService expands records into chunks, embeds them and loads
// them into the vector store.
type IngestService struct {
	pipeline *postprocessors.Pipeline
	embedder driven.EmbeddingService
	store    driven.VectorStore
	cfg      IngestConfig
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	pipeline *postprocessors.Pipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	cfg IngestConfig,
) (*IngestService, error) {
	if cfg.Class == "" {
		return nil, fmt.Errorf("%w: collection class is required", domain.ErrInvalidConfiguration)
	}
	if cfg.TokenLimit <= 0 {
		cfg.TokenLimit = DefaultTokenLimit
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.EmbedDelay < 0 {
		return nil, fmt.Errorf("%w: embed delay %s must not be negative", domain.ErrInvalidConfiguration, cfg.EmbedDelay)
	}

	return &IngestService{
		pipeline: pipeline,
		embedder: embedder,
		store:    store,
		cfg:      cfg,
	}, nil
}

// Expand runs the post-processing pipeline over the records and returns
// the resulting chunks. Purely computational; never contacts the
// embedding service.
func (s *IngestService) Expand(ctx context.Context, records []domain.SourceRecord) ([]domain.Chunk, error) {
	logger.Section("Record Expansion")

	var chunks []domain.Chunk
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recordChunks, err := s.pipeline.Process(ctx, &records[i])
		if err != nil {
			return nil, fmt.Errorf("expanding record %s: %w", records[i].ID, err)
		}
		chunks = append(chunks, recordChunks...)
	}

	logger.Info("Expanded %d records into %d chunks", len(records), len(chunks))
	return chunks, nil
}

// Embed fills in the chunks' vectors in place, in order. The whole
// batch is rejected before the first call if any chunk's token count
// meets the configured ceiling. A failed embedding call leaves that
// chunk's vector nil and moves on; one bad chunk never aborts a long
// corpus run.
func (s *IngestService) Embed(ctx context.Context, chunks []domain.Chunk) error {
	if err := s.checkTokenCounts(chunks); err != nil {
		return err
	}

	logger.Section("Embedding")
	logger.Info("Embedding %d chunks with %s", len(chunks), s.embedder.ModelName())

	// A zero delay disables the limiter; the per-item context check
	// below keeps the loop cancellable either way.
	var limiter *rate.Limiter
	if s.cfg.EmbedDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(s.cfg.EmbedDelay), 1)
	}
	failures := 0

	for i := range chunks {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		vector, err := s.embedder.Embed(ctx, chunks[i].Content)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("Embedding chunk %s failed: %v", chunks[i].ID, err)
			chunks[i].Embedding = nil
			failures++
			continue
		}

		chunks[i].Embedding = vector
		logger.Item(i, len(chunks), "embedded chunk %s (%d tokens)", chunks[i].ID, chunks[i].NTokens)
	}

	if failures > 0 {
		logger.Warn("%d of %d chunks failed to embed and will be skipped at load time", failures, len(chunks))
	}
	return nil
}

// Ingest runs Expand, Embed and the store load end to end.
// Returns the number of objects stored.
func (s *IngestService) Ingest(ctx context.Context, records []domain.SourceRecord) (int, error) {
	chunks, err := s.Expand(ctx, records)
	if err != nil {
		return 0, err
	}

	if err := s.Embed(ctx, chunks); err != nil {
		return 0, err
	}

	schema := domain.NewCollectionSchema(s.cfg.Class, s.embedder.ModelName())
	if err := ensureSameModel(ctx, s.store, schema); err != nil {
		return 0, err
	}
	if err := s.store.EnsureCollection(ctx, schema); err != nil {
		return 0, fmt.Errorf("ensuring collection %s: %w", s.cfg.Class, err)
	}

	stored, err := s.store.Load(ctx, s.cfg.Class, chunks, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("loading chunks: %w", err)
	}

	logger.Info("Stored %d of %d chunks", stored, len(chunks))
	return stored, nil
}

// checkTokenCounts rejects the batch if any chunk meets the ceiling.
// The embedding API hard-fails on oversized inputs, so the whole run is
// aborted up front instead of discovering the problem mid-corpus.
func (s *IngestService) checkTokenCounts(chunks []domain.Chunk) error {
	for i := range chunks {
		if chunks[i].NTokens >= s.cfg.TokenLimit {
			return fmt.Errorf("%w: chunk %s has %d tokens (ceiling %d)",
				domain.ErrTokenLimitExceeded, chunks[i].ID, chunks[i].NTokens, s.cfg.TokenLimit)
		}
	}
	return nil
}

// ensureSameModel asserts that an existing collection was built with the
// same embedding model this run is configured for. Mixing vectors from
// different models silently corrupts similarity search.
func ensureSameModel(ctx context.Context, store driven.VectorStore, want domain.CollectionSchema) error {
	existing, exists, err := store.GetCollection(ctx, want.Class)
	if err != nil {
		return fmt.Errorf("fetching collection %s: %w", want.Class, err)
	}
	if !exists {
		return nil
	}
	if existing.Description != want.Description {
		return fmt.Errorf("%w: collection %q is %q, expected %q",
			domain.ErrModelMismatch, want.Class, existing.Description, want.Description)
	}
	return nil
}
