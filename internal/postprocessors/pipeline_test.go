package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/postprocessors/chunker"
	"github.com/nordlaw/lagrum/internal/postprocessors/contextual"
	"github.com/nordlaw/lagrum/internal/postprocessors/tokenbound"
)

type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) []int { return make([]int, len([]rune(text))) }
func (runeTokenizer) ModelName() string        { return "rune-test" }

type failingProcessor struct{ err error }

func (f failingProcessor) Name() string { return "failing" }
func (f failingProcessor) Process(context.Context, *domain.SourceRecord, []domain.Chunk) ([]domain.Chunk, error) {
	return nil, f.err
}

// End-to-end expansion example: a 2500-character record with chunk size
// 1000 and overlap 100 yields three rows, each prefixed with the title.
func TestPipeline_Process(t *testing.T) {
	split, err := chunker.New(chunker.WithChunkSize(1000), chunker.WithOverlap(100))
	require.NoError(t, err)
	prefix, err := contextual.New([]string{"title"})
	require.NoError(t, err)

	pipe := NewPipeline(split, prefix, tokenbound.New(runeTokenizer{}))

	rec := &domain.SourceRecord{
		ID:        "rec-1",
		Title:     "Lag A",
		Content:   strings.Repeat("X", 2500),
		Issuer:    "Riksdagen",
		SFSNumber: "2020:1",
	}

	chunks, err := pipe.Process(context.Background(), rec)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.True(t, strings.HasPrefix(c.Content, "Lag A||"), "chunk %d", i)
		assert.Equal(t, "Riksdagen", c.Issuer)
		assert.Equal(t, "2020:1", c.SFSNumber)
		assert.Equal(t, len([]rune(c.Content)), c.NTokens)
	}
}

func TestPipeline_Process_ErrorNamesStage(t *testing.T) {
	wantErr := errors.New("boom")
	pipe := NewPipeline(failingProcessor{err: wantErr})

	_, err := pipe.Process(context.Background(), &domain.SourceRecord{})
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.Contains(t, err.Error(), "failing")
}
