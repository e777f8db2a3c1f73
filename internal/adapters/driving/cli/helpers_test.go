package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

// execute runs the root command with the given args and returns its
// output. Injected services are restored after the test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetServices clears all injected services after the test.
func resetServices(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		ingestService = nil
		queryService = nil
		corpusSource = nil
		recordStore = nil
		vectorStore = nil
		collectionClass = ""
		embeddingModel = ""
	})
}

// stubQueryService returns canned search and ask results.
type stubQueryService struct {
	searchText  string
	searchLimit int
	searchOut   string
	searchErr   error

	askQuestion string
	askOpts     domain.AskOptions
	askOut      *domain.Answer
	askErr      error
}

func (s *stubQueryService) Search(_ context.Context, text string, limit int) (string, error) {
	s.searchText = text
	s.searchLimit = limit
	return s.searchOut, s.searchErr
}

func (s *stubQueryService) Ask(_ context.Context, question string, opts domain.AskOptions) (*domain.Answer, error) {
	s.askQuestion = question
	s.askOpts = opts
	return s.askOut, s.askErr
}

// stubIngestService records the ingested records.
type stubIngestService struct {
	records []domain.SourceRecord
	stored  int
	err     error
}

func (s *stubIngestService) Expand(_ context.Context, records []domain.SourceRecord) ([]domain.Chunk, error) {
	return nil, nil
}

func (s *stubIngestService) Embed(context.Context, []domain.Chunk) error { return nil }

func (s *stubIngestService) Ingest(_ context.Context, records []domain.SourceRecord) (int, error) {
	s.records = records
	return s.stored, s.err
}

// stubCorpusSource returns canned records from Fetch.
type stubCorpusSource struct {
	from, to int
	records  []domain.SourceRecord
	err      error
}

func (s *stubCorpusSource) FetchRecord(context.Context, int) (*domain.SourceRecord, error) {
	return nil, nil
}

func (s *stubCorpusSource) Fetch(_ context.Context, from, to int, _ func(int, error)) ([]domain.SourceRecord, error) {
	s.from = from
	s.to = to
	return s.records, s.err
}

// stubRecordStore is an in-memory record cache.
type stubRecordStore struct {
	saved   []domain.SourceRecord
	records []domain.SourceRecord
	err     error
}

func (s *stubRecordStore) SaveRecords(_ context.Context, records []domain.SourceRecord) error {
	s.saved = records
	return s.err
}

func (s *stubRecordStore) ListRecords(context.Context) ([]domain.SourceRecord, error) {
	return s.records, s.err
}

func (s *stubRecordStore) CountRecords(context.Context) (int, error) {
	return len(s.records), s.err
}

func (s *stubRecordStore) Close() error { return nil }

// stubVectorStore records schema operations.
type stubVectorStore struct {
	ensured []domain.CollectionSchema
	dropped []string
	err     error
}

func (s *stubVectorStore) EnsureCollection(_ context.Context, schema domain.CollectionSchema) error {
	s.ensured = append(s.ensured, schema)
	return s.err
}

func (s *stubVectorStore) GetCollection(context.Context, string) (*domain.CollectionSchema, bool, error) {
	return nil, false, nil
}

func (s *stubVectorStore) DropCollection(_ context.Context, class string) error {
	s.dropped = append(s.dropped, class)
	return s.err
}

func (s *stubVectorStore) Load(context.Context, string, []domain.Chunk, int) (int, error) {
	return 0, nil
}

func (s *stubVectorStore) Search(context.Context, string, []float32, domain.SearchOptions) ([]domain.QueryResult, error) {
	return nil, nil
}
