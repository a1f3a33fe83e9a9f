// Package metrics collects per-operation timing samples during startup
// and aggregates them into an advisory summary.
//
// A Collector pairs with the bootstrap orchestrator but has no control
// flow of its own: samples are opened with Start, closed with End, and
// summarized on demand. Track wraps a function call so the sample is
// recorded on every exit path, including panics.
package metrics
