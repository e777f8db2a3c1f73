// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the tokenizer, embedding and generation
// capabilities, the vector store, the corpus source and the record cache.
package driven
