package services

import (
	"context"
	"errors"
	"strings"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
)

// fakeTokenizer counts whitespace-separated words as tokens.
type fakeTokenizer struct{}

func (fakeTokenizer) Encode(text string) []int {
	return make([]int, len(strings.Fields(text)))
}

func (fakeTokenizer) ModelName() string { return "fake-vocabulary" }

// fakeEmbedder returns a fixed-size vector per call and can be told to
// fail on specific inputs.
type fakeEmbedder struct {
	model  string
	failOn map[string]bool
	calls  []string
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{model: "fake-embedding-model", failOn: map[string]bool{}}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.failOn[text] {
		return nil, errors.New("embedding backend unavailable")
	}
	return []float32{float32(len(text)), 1, 2}, nil
}

func (f *fakeEmbedder) Dimensions() int            { return 3 }
func (f *fakeEmbedder) ModelName() string          { return f.model }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// fakeVectorStore records the calls made against it.
type fakeVectorStore struct {
	existing *domain.CollectionSchema

	ensured     []domain.CollectionSchema
	loadedClass string
	loaded      []domain.Chunk
	batchSize   int

	searchVector  []float32
	searchOptions domain.SearchOptions
	searchResults []domain.QueryResult
	searchErr     error
}

func (f *fakeVectorStore) EnsureCollection(_ context.Context, schema domain.CollectionSchema) error {
	f.ensured = append(f.ensured, schema)
	return nil
}

func (f *fakeVectorStore) GetCollection(_ context.Context, class string) (*domain.CollectionSchema, bool, error) {
	if f.existing != nil && f.existing.Class == class {
		return f.existing, true, nil
	}
	return nil, false, nil
}

func (f *fakeVectorStore) DropCollection(context.Context, string) error { return nil }

func (f *fakeVectorStore) Load(_ context.Context, class string, chunks []domain.Chunk, batchSize int) (int, error) {
	f.loadedClass = class
	f.loaded = chunks
	f.batchSize = batchSize

	stored := 0
	for _, c := range chunks {
		if c.Embedding != nil {
			stored++
		}
	}
	return stored, nil
}

func (f *fakeVectorStore) Search(_ context.Context, _ string, vector []float32, opts domain.SearchOptions) ([]domain.QueryResult, error) {
	f.searchVector = vector
	f.searchOptions = opts
	return f.searchResults, f.searchErr
}

// fakeLLM captures the conversation it is asked to conduct.
type fakeLLM struct {
	response string
	messages []driven.ChatMessage
	options  driven.ChatOptions
	err      error
}

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	f.messages = messages
	f.options = opts
	return f.response, f.err
}

func (f *fakeLLM) ModelName() string          { return "fake-chat-model" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }
