package domain

import (
	"fmt"
	"unicode"
)

// Default HNSW index tuning values. These are opaque configuration passed
// through to the store, not computed values.
const (
	DefaultHNSWM              = 16
	DefaultHNSWEFConstruction = 128
	DefaultHNSWEF             = 64
	DefaultHNSWMaxConnections = 32
)

// Property describes one typed field of a collection.
type Property struct {
	Name     string
	DataType string
}

// HNSWConfig holds the approximate-nearest-neighbour index parameters.
type HNSWConfig struct {
	Distance       string
	M              int
	EFConstruction int
	EF             int
	MaxConnections int
}

// CollectionSchema describes the named, typed container in the vector store
// holding one corpus's records. Vectors are always supplied by the pipeline,
// so the vectorizer is fixed to "none".
type CollectionSchema struct {
	Class       string
	Description string
	Properties  []Property
	IndexConfig HNSWConfig
}

// NewCollectionSchema builds a schema for the legislative corpus with the
// default public properties and cosine HNSW index configuration.
// The embedding model name is recorded in the description so that later
// ingest and query runs can assert they use the same model.
func NewCollectionSchema(class, embeddingModel string) CollectionSchema {
	props := make([]Property, 0, len(PublicFields))
	for _, name := range PublicFields {
		props = append(props, Property{Name: name, DataType: "text"})
	}
	return CollectionSchema{
		Class:       class,
		Description: fmt.Sprintf("Swedish legislation chunks, embedded with %s", embeddingModel),
		Properties:  props,
		IndexConfig: HNSWConfig{
			Distance:       "cosine",
			M:              DefaultHNSWM,
			EFConstruction: DefaultHNSWEFConstruction,
			EF:             DefaultHNSWEF,
			MaxConnections: DefaultHNSWMaxConnections,
		},
	}
}

// Validate checks the schema against the store's naming rules before any
// network call is made. Class names must start with an uppercase letter.
func (s *CollectionSchema) Validate() error {
	if s.Class == "" {
		return fmt.Errorf("%w: empty class name", ErrInvalidSchema)
	}
	runes := []rune(s.Class)
	if !unicode.IsUpper(runes[0]) {
		return fmt.Errorf("%w: class name %q must start with an uppercase letter", ErrInvalidSchema, s.Class)
	}
	if len(s.Properties) == 0 {
		return fmt.Errorf("%w: class %q has no properties", ErrInvalidSchema, s.Class)
	}
	for _, p := range s.Properties {
		if p.Name == "" || p.DataType == "" {
			return fmt.Errorf("%w: class %q has a property with empty name or type", ErrInvalidSchema, s.Class)
		}
	}
	return nil
}

// FieldNames returns the names of all schema properties, in order.
func (s *CollectionSchema) FieldNames() []string {
	names := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	return names
}
