package domain

import "errors"

// Domain errors represent pipeline preconditions and business failures.
// These are distinct from infrastructure errors, which are wrapped at the
// adapter boundary.
var (
	// ErrInvalidConfiguration indicates malformed pipeline parameters,
	// such as a chunk overlap that meets or exceeds the chunk size.
	// Raised before any external call.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrTokenLimitExceeded indicates a chunk whose token count meets or
	// exceeds the configured ceiling. Fatal for the whole batch and raised
	// before the first embedding call.
	ErrTokenLimitExceeded = errors.New("token limit exceeded")

	// ErrInvalidSchema indicates a collection schema violating the store's
	// rules (e.g. a class name not starting with an uppercase letter).
	// Raised before any network call.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrModelMismatch indicates the configured embedding model differs
	// from the one the collection was populated with. Querying across
	// models silently returns meaningless neighbours, so both ingest and
	// query refuse to proceed.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
