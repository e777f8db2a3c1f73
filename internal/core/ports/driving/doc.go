// Package driving provides interfaces for the application core as seen
// by its callers (primary/inbound ports).
package driving
