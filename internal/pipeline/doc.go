// Package pipeline orchestrates the concurrent stages of a run: walking the
// source tree, decoding candidates, deduplicating by pixel digest, and
// saving unique icons.
//
// Shared state (the dedup registry, the output writer, the stats counters)
// is created in Run and handed to the workers explicitly; nothing in this
// package is package-level mutable.
package pipeline
