// Package connectors provides implementations of the CorpusSource
// interface. Each connector knows how to fetch source records from a
// specific legislative register.
package connectors
