package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

func TestScrapeCmd_FetchesAndCaches(t *testing.T) {
	resetServices(t)
	source := &stubCorpusSource{records: []domain.SourceRecord{
		{ID: "r1", Title: "Lag A"},
		{ID: "r2", Title: "Lag B"},
	}}
	store := &stubRecordStore{}
	corpusSource = source
	recordStore = store

	out, err := execute(t, "scrape", "--from", "10", "--to", "20")

	require.NoError(t, err)
	assert.Equal(t, 10, source.from)
	assert.Equal(t, 20, source.to)
	assert.Len(t, store.saved, 2)
	assert.Contains(t, out, "Scraped 2 records")
}

func TestScrapeCmd_FetchError(t *testing.T) {
	resetServices(t)
	corpusSource = &stubCorpusSource{err: errors.New("register unreachable")}
	recordStore = &stubRecordStore{}

	_, err := execute(t, "scrape")
	assert.ErrorContains(t, err, "register unreachable")
}

func TestScrapeCmd_NotConfigured(t *testing.T) {
	resetServices(t)

	_, err := execute(t, "scrape")
	assert.ErrorContains(t, err, "not configured")
}
