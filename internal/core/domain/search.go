package domain

// SearchOptions configures a similarity search against the vector store.
type SearchOptions struct {
	// Limit is the maximum number of neighbours to return.
	Limit int

	// Fields is the projection of metadata fields to return.
	// Empty means the full schema field list.
	Fields []string

	// IncludeDistance annotates each result with its distance score.
	IncludeDistance bool

	// IncludeVector annotates each result with its raw stored vector.
	IncludeVector bool
}

// QueryResult is one similarity-search hit. Results are ordered by
// ascending distance to the query vector (smaller = closer).
type QueryResult struct {
	// ObjectID is the stable identifier assigned at load time.
	ObjectID string

	// Fields holds the requested metadata fields.
	Fields map[string]string

	// Distance is the cosine distance to the query vector.
	// Only populated when requested.
	Distance float64

	// Vector is the stored embedding. Only populated when requested.
	Vector []float32
}

// Answer is the result of a retrieval-augmented query.
type Answer struct {
	// Response is the generated answer text.
	Response string

	// Context is the concatenated retrieved passages. Withheld (empty)
	// unless the caller explicitly asked for it.
	Context string
}

// AskOptions configures a retrieval-augmented query.
type AskOptions struct {
	// Limit is the number of passages to retrieve. Defaults to 5.
	Limit int

	// ReturnContext includes the retrieved context block in the answer.
	ReturnContext bool

	// Debug emits the context, wrapped query and response verbatim
	// through the logger. Observability only; no behavioural branch.
	Debug bool
}
