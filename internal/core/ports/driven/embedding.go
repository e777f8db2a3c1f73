package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The corpus and every query must be embedded with the same model; the
// services guard this through ModelName. Implementations may include:
//   - OpenAI (text-embedding-ada-002, text-embedding-3-small)
//   - Local models behind OpenAI-compatible inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
