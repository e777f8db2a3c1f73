// Package weaviate provides a vector store adapter over the Weaviate
// REST and GraphQL APIs. The store only needs the capability contract:
// schema-aware collection management, batched object+vector loads and
// nearVector similarity search with cosine distance.
package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
	"github.com/nordlaw/lagrum/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultBatchSize = 64
)

// Config holds connection details for a Weaviate instance.
type Config struct {
	// URL is the base URL of the instance (e.g. http://localhost:8080).
	URL string

	// APIKey is an optional bearer token.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a Weaviate client implementing the VectorStore port.
type Store struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewStore creates a new Weaviate store client.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("weaviate: URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Store{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

// classObject is the Weaviate schema wire format.
type classObject struct {
	Class             string          `json:"class"`
	Description       string          `json:"description,omitempty"`
	Vectorizer        string          `json:"vectorizer"`
	Properties        []classProperty `json:"properties"`
	VectorIndexType   string          `json:"vectorIndexType,omitempty"`
	VectorIndexConfig map[string]any  `json:"vectorIndexConfig,omitempty"`
}

type classProperty struct {
	Name     string   `json:"name"`
	DataType []string `json:"dataType"`
}

type schemaResponse struct {
	Classes []classObject `json:"classes"`
}

// EnsureCollection creates the collection if it does not already exist.
// The schema is validated before any network call.
func (s *Store) EnsureCollection(ctx context.Context, schema domain.CollectionSchema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	_, exists, err := s.GetCollection(ctx, schema.Class)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if exists {
		logger.Debug("Collection %s already exists", schema.Class)
		return nil
	}

	obj := toClassObject(schema)
	if err := s.doJSON(ctx, http.MethodPost, "/v1/schema", obj, nil); err != nil {
		return fmt.Errorf("create collection %s: %w", schema.Class, err)
	}
	logger.Info("Created collection %s", schema.Class)
	return nil
}

// GetCollection fetches the stored schema for a collection.
func (s *Store) GetCollection(ctx context.Context, class string) (*domain.CollectionSchema, bool, error) {
	var resp schemaResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/schema", nil, &resp); err != nil {
		return nil, false, err
	}
	for _, c := range resp.Classes {
		if c.Class == class {
			schema := fromClassObject(c)
			return &schema, true, nil
		}
	}
	return nil, false, nil
}

// DropCollection deletes a collection. Best-effort: failures (including
// "not found") are logged and swallowed so a recreate can proceed.
func (s *Store) DropCollection(ctx context.Context, class string) error {
	err := s.doJSON(ctx, http.MethodDelete, "/v1/schema/"+class, nil, nil)
	if err != nil {
		logger.Warn("Drop collection %s: %v", class, err)
	}
	return nil
}

// batchRequest is the Weaviate batch insert wire format.
type batchRequest struct {
	Objects []batchObject `json:"objects"`
}

type batchObject struct {
	Class      string         `json:"class"`
	ID         string         `json:"id,omitempty"`
	Properties map[string]any `json:"properties"`
	Vector     []float32      `json:"vector"`
}

type batchResult struct {
	ID     string           `json:"id"`
	Result *batchItemResult `json:"result,omitempty"`
}

type batchItemResult struct {
	Status string           `json:"status"`
	Errors *batchItemErrors `json:"errors,omitempty"`
}

type batchItemErrors struct {
	Error []batchItemError `json:"error"`
}

type batchItemError struct {
	Message string `json:"message"`
}

// Load persists embedded chunks in batches. Chunks with a nil embedding
// are skipped; the vector is separated from the metadata and both travel
// in one object. Per-item failures are logged and skipped rather than
// aborting the load. Returns the number of objects stored.
func (s *Store) Load(ctx context.Context, class string, chunks []domain.Chunk, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var batch []batchObject
	stored := 0
	skipped := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.submitBatch(ctx, batch)
		if err != nil {
			return err
		}
		stored += n
		batch = batch[:0]
		return nil
	}

	for i := range chunks {
		if chunks[i].Embedding == nil {
			skipped++
			continue
		}
		batch = append(batch, batchObject{
			Class:      class,
			ID:         chunks[i].ID,
			Properties: chunks[i].Properties(),
			Vector:     chunks[i].Embedding,
		})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stored, err
			}
		}
	}
	if err := flush(); err != nil {
		return stored, err
	}

	if skipped > 0 {
		logger.Warn("Skipped %d chunks without embeddings", skipped)
	}
	logger.Info("Stored %d objects in %s", stored, class)
	return stored, nil
}

// submitBatch posts one batch and counts successful items. Items the
// store rejects are logged and skipped.
func (s *Store) submitBatch(ctx context.Context, batch []batchObject) (int, error) {
	var results []batchResult
	if err := s.doJSON(ctx, http.MethodPost, "/v1/batch/objects", batchRequest{Objects: batch}, &results); err != nil {
		return 0, fmt.Errorf("submit batch: %w", err)
	}

	ok := 0
	for i, r := range results {
		if r.Result != nil && r.Result.Errors != nil {
			msg := "unknown error"
			if len(r.Result.Errors.Error) > 0 {
				msg = r.Result.Errors.Error[0].Message
			}
			logger.Warn("Object %s rejected: %s", batch[i].ID, msg)
			continue
		}
		ok++
	}
	return ok, nil
}

// graphQLRequest is the Weaviate GraphQL wire format.
type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data   map[string]map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// Search returns the nearest stored entries to the query vector, ordered
// by ascending distance, at most opts.Limit of them.
func (s *Store) Search(ctx context.Context, class string, vector []float32, opts domain.SearchOptions) ([]domain.QueryResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	fields := opts.Fields
	if len(fields) == 0 {
		schema, exists, err := s.GetCollection(ctx, class)
		switch {
		case err != nil:
			logger.Warn("Fetch schema for %s: %v; falling back to default fields", class, err)
			fields = domain.PublicFields
		case exists:
			fields = schema.FieldNames()
		default:
			fields = domain.PublicFields
		}
	}

	query, err := buildNearVectorQuery(class, vector, limit, fields, opts)
	if err != nil {
		return nil, err
	}

	var resp graphQLResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/graphql", graphQLRequest{Query: query}, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("search: %s", resp.Errors[0].Message)
	}

	raw, ok := resp.Data["Get"][class]
	if !ok {
		return nil, nil
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}

	results := make([]domain.QueryResult, 0, len(rows))
	for _, row := range rows {
		res := domain.QueryResult{Fields: make(map[string]string, len(fields))}
		for _, f := range fields {
			if v, ok := row[f]; ok {
				var str string
				if err := json.Unmarshal(v, &str); err == nil {
					res.Fields[f] = str
				}
			}
		}
		if add, ok := row["_additional"]; ok {
			var additional struct {
				ID       string    `json:"id"`
				Distance float64   `json:"distance"`
				Vector   []float32 `json:"vector"`
			}
			if err := json.Unmarshal(add, &additional); err == nil {
				res.ObjectID = additional.ID
				res.Distance = additional.Distance
				res.Vector = additional.Vector
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// buildNearVectorQuery renders the GraphQL Get query. The vector is
// JSON-encoded into the nearVector argument.
func buildNearVectorQuery(class string, vector []float32, limit int, fields []string, opts domain.SearchOptions) (string, error) {
	vec, err := json.Marshal(vector)
	if err != nil {
		return "", fmt.Errorf("encode vector: %w", err)
	}

	additional := []string{"id"}
	if opts.IncludeDistance {
		additional = append(additional, "distance")
	}
	if opts.IncludeVector {
		additional = append(additional, "vector")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{ Get { %s(nearVector: {vector: %s}, limit: %d) { %s _additional { %s } } } }",
		class, vec, limit, strings.Join(fields, " "), strings.Join(additional, " "))
	return b.String(), nil
}

// doJSON issues one JSON request and decodes the response into out.
func (s *Store) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("weaviate %s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func toClassObject(schema domain.CollectionSchema) classObject {
	props := make([]classProperty, 0, len(schema.Properties))
	for _, p := range schema.Properties {
		props = append(props, classProperty{Name: p.Name, DataType: []string{p.DataType}})
	}
	return classObject{
		Class:           schema.Class,
		Description:     schema.Description,
		Vectorizer:      "none",
		Properties:      props,
		VectorIndexType: "hnsw",
		VectorIndexConfig: map[string]any{
			"distance":       schema.IndexConfig.Distance,
			"m":              schema.IndexConfig.M,
			"efConstruction": schema.IndexConfig.EFConstruction,
			"ef":             schema.IndexConfig.EF,
			"maxConnections": schema.IndexConfig.MaxConnections,
		},
	}
}

func fromClassObject(obj classObject) domain.CollectionSchema {
	props := make([]domain.Property, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		dataType := ""
		if len(p.DataType) > 0 {
			dataType = p.DataType[0]
		}
		props = append(props, domain.Property{Name: p.Name, DataType: dataType})
	}
	schema := domain.CollectionSchema{
		Class:       obj.Class,
		Description: obj.Description,
		Properties:  props,
	}
	if obj.VectorIndexConfig != nil {
		if d, ok := obj.VectorIndexConfig["distance"].(string); ok {
			schema.IndexConfig.Distance = d
		}
	}
	return schema
}
