// Package domain contains the core business entities for the lagrum
// pipeline: source records scraped from the legislative register, the
// chunks derived from them, the vector store collection schema, and the
// error taxonomy shared across services and adapters.
package domain
