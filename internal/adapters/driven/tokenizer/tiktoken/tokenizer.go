// Package tiktoken provides a tokenizer adapter over the tiktoken BPE
// vocabularies used by OpenAI embedding models.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/nordlaw/lagrum/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer counts tokens under the vocabulary of a specific model.
type Tokenizer struct {
	model    string
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer for the given model identifier.
func New(model string) (*Tokenizer, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: no encoding for model %q: %w", model, err)
	}
	return &Tokenizer{model: model, encoding: encoding}, nil
}

// Encode returns the token ids of the text.
func (t *Tokenizer) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// ModelName returns the model the vocabulary belongs to.
func (t *Tokenizer) ModelName() string {
	return t.model
}
