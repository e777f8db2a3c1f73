package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
	"github.com/nordlaw/lagrum/internal/core/ports/driving"
	"github.com/nordlaw/lagrum/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultSearchLimit is the number of passages retrieved per question.
const DefaultSearchLimit = 5

// The conversation sent to the generation model is fixed: a persona, the
// retrieved passages, and the question wrapped in an instruction. All of
// it is in Swedish to match the corpus.
const (
	systemPersona = "Du är en expert på svensk lag, du svarar alltid tydligt med " +
		"referenser till dina källor i texten som du har fått. Referera aldrig " +
		"till några externa websidor."

	queryInstruction = "Svara på frågan med hjälp av de lagar och förordningar " +
		"som du har tillgång till, referera alltid till källan."
)

// QueryService answers free-text questions over the embedded corpus by
// retrieving the closest passages and handing them to a generation model.
type QueryService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	llm      driven.GenerationService
	class    string
}

// NewQueryService creates a new query service. The llm parameter may be
// nil when only Search is used.
func NewQueryService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.GenerationService,
	class string,
) (*QueryService, error) {
	if class == "" {
		return nil, fmt.Errorf("%w: collection class is required", domain.ErrInvalidConfiguration)
	}
	return &QueryService{
		embedder: embedder,
		store:    store,
		llm:      llm,
		class:    class,
	}, nil
}

// Search embeds the question, retrieves the closest passages and returns
// their contents concatenated with newline separators, in ascending
// distance order.
func (s *QueryService) Search(ctx context.Context, text string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	schema := domain.NewCollectionSchema(s.class, s.embedder.ModelName())
	if err := ensureSameModel(ctx, s.store, schema); err != nil {
		return "", err
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.store.Search(ctx, s.class, vector, domain.SearchOptions{
		Limit:  limit,
		Fields: []string{domain.FieldContent},
	})
	if err != nil {
		return "", fmt.Errorf("searching collection %s: %w", s.class, err)
	}

	contents := make([]string, 0, len(results))
	for _, r := range results {
		contents = append(contents, r.Fields[domain.FieldContent])
	}
	return strings.Join(contents, "\n"), nil
}

// Ask retrieves context for the question and delegates to the generation
// model with the fixed instructional conversation. Generation runs with
// temperature 0 and top_p 1 so repeated questions give repeatable answers.
func (s *QueryService) Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.Answer, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no generation service configured", domain.ErrInvalidConfiguration)
	}

	passages, err := s.Search(ctx, question, opts.Limit)
	if err != nil {
		return nil, err
	}

	wrapped := queryInstruction + "\n" + question

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPersona},
		{Role: "user", Content: passages},
		{Role: "user", Content: wrapped},
	}

	response, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		Temperature: 0,
		TopP:        1,
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	if opts.Debug {
		logger.Section("Context")
		logger.Debug("%s", passages)
		logger.Section("Query")
		logger.Debug("%s", wrapped)
		logger.Section("Response")
		logger.Debug("%s", response)
	}

	answer := &domain.Answer{Response: response}
	if opts.ReturnContext {
		answer.Context = passages
	}
	return answer, nil
}
