package driven

// Tokenizer counts text length under a specific model vocabulary.
// The embedding service enforces a token ceiling, so chunk sizes are
// validated against the same vocabulary before any network call.
type Tokenizer interface {
	// Encode returns the token ids of the text.
	Encode(text string) []int

	// ModelName returns the model identifier the vocabulary belongs to.
	ModelName() string
}
