package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchCmd_PrintsPassages(t *testing.T) {
	resetServices(t)
	stub := &stubQueryService{searchOut: "första stycket\nandra stycket"}
	queryService = stub

	out, err := execute(t, "search", "uppsägningstid")

	assert.NoError(t, err)
	assert.Contains(t, out, "första stycket\nandra stycket")
	assert.Equal(t, "uppsägningstid", stub.searchText)
}

func TestSearchCmd_DefaultLimit(t *testing.T) {
	assert.Equal(t, "5", searchCmd.Flags().Lookup("limit").DefValue)
}

func TestSearchCmd_LimitFlag(t *testing.T) {
	resetServices(t)
	stub := &stubQueryService{searchOut: "stycke"}
	queryService = stub

	_, err := execute(t, "search", "fråga", "--limit", "3")

	assert.NoError(t, err)
	assert.Equal(t, 3, stub.searchLimit)
}

func TestSearchCmd_NoResults(t *testing.T) {
	resetServices(t)
	queryService = &stubQueryService{}

	out, err := execute(t, "search", "fråga")

	assert.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	resetServices(t)
	queryService = &stubQueryService{searchErr: errors.New("store unreachable")}

	_, err := execute(t, "search", "fråga")

	assert.ErrorContains(t, err, "store unreachable")
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	resetServices(t)

	_, err := execute(t, "search", "fråga")
	assert.ErrorContains(t, err, "not configured")
}
