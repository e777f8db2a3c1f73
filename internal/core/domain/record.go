package domain

// SourceRecord is one scraped legislative instrument.
// It is the canonical representation produced by a corpus source and is
// never mutated; chunking derives new rows from it.
type SourceRecord struct {
	// ID is the deterministic identifier of the record (uuid5 of the SFS number).
	ID string

	// Title is the human-readable title of the instrument.
	Title string

	// Content is the full text to be chunked and embedded.
	Content string

	// Issuer is the body that issued the instrument (e.g. "Riksdagen").
	Issuer string

	// SFSNumber is the legal instrument identifier (e.g. "2020:1").
	SFSNumber string

	// IssuedDate is the raw issued-date string as scraped.
	IssuedDate string

	// InEffectDate is the raw in-effect-date string as scraped.
	InEffectDate string
}

// Public field names used in the vector store schema and result projection.
// Raw date fields exist internally but are not part of the public surface.
const (
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldIssuer    = "issuer"
	FieldSFSNumber = "sfs_number"
)

// PublicFields is the default projection returned from similarity search.
var PublicFields = []string{FieldTitle, FieldContent, FieldIssuer, FieldSFSNumber}

// Field returns the value of a public field by name.
// The boolean is false for unknown or non-public field names.
func (r *SourceRecord) Field(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return r.Title, true
	case FieldContent:
		return r.Content, true
	case FieldIssuer:
		return r.Issuer, true
	case FieldSFSNumber:
		return r.SFSNumber, true
	default:
		return "", false
	}
}

// Chunk is one expanded row: a bounded substring of a record's content
// carrying all non-content fields of its parent.
type Chunk struct {
	// ID is the deterministic identifier of the chunk (parent ID + position).
	ID string

	// RecordID links to the parent SourceRecord.
	RecordID string

	// Content is the chunk text. Context prefixing and normalization
	// rewrite this field in place as the chunk moves through the pipeline.
	Content string

	// Position is the dense 0-based ordinal of the chunk within its parent.
	Position int

	// NTokens is the token count of the normalized content under the
	// configured tokenizer vocabulary. Zero until the token-bound stage runs.
	NTokens int

	// Embedding is the vector representation. Nil marks an item whose
	// embedding call failed; such chunks are skipped at load time.
	Embedding []float32

	// Copied parent fields (everything except Content).
	Title        string
	Issuer       string
	SFSNumber    string
	IssuedDate   string
	InEffectDate string
}

// Field returns the value of a public field of the chunk by name.
func (c *Chunk) Field(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return c.Title, true
	case FieldContent:
		return c.Content, true
	case FieldIssuer:
		return c.Issuer, true
	case FieldSFSNumber:
		return c.SFSNumber, true
	default:
		return "", false
	}
}

// Properties returns the chunk's metadata as stored alongside its vector.
// The embedding is deliberately excluded; the store keeps it separately.
func (c *Chunk) Properties() map[string]any {
	return map[string]any{
		FieldTitle:     c.Title,
		FieldContent:   c.Content,
		FieldIssuer:    c.Issuer,
		FieldSFSNumber: c.SFSNumber,
	}
}
