package driven

import "context"

// GenerationService turns a structured conversation into prose.
// The query orchestrator builds the conversation (persona, retrieved
// context, wrapped question); implementations only transport it.
type GenerationService interface {
	// Chat conducts a single-shot conversation and returns the generated text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures generation behaviour. Zero values are sent
// verbatim: answers must be reproducible, so temperature 0 and top_p 1
// are explicit settings, not omissions.
type ChatOptions struct {
	// Temperature controls randomness (0 = deterministic).
	Temperature float64

	// TopP is the nucleus sampling parameter (1 = disabled).
	TopP float64

	// MaxTokens caps the generated length. Zero means the model default.
	MaxTokens int
}
