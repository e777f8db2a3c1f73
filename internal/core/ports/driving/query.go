package driving

import (
	"context"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// QueryService answers free-text questions over the embedded corpus.
type QueryService interface {
	// Search embeds the question, retrieves the closest passages and
	// returns them concatenated with newline separators, in ascending
	// distance order.
	Search(ctx context.Context, text string, limit int) (string, error)

	// Ask retrieves context for the question and delegates to the
	// generation capability with a fixed instructional conversation.
	Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.Answer, error)
}
