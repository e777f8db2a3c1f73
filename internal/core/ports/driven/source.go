package driven

import (
	"context"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// CorpusSource produces raw source records for the pipeline.
// Scraping mechanics live entirely behind this boundary.
type CorpusSource interface {
	// FetchRecord retrieves a single record by its post id.
	FetchRecord(ctx context.Context, postID int) (*domain.SourceRecord, error)

	// Fetch retrieves the records for post ids in [from, to).
	// Per-item failures are reported through the callback and skipped.
	Fetch(ctx context.Context, from, to int, onError func(postID int, err error)) ([]domain.SourceRecord, error)
}
