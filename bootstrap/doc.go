// Package bootstrap orchestrates lazy, dependency-ordered service
// initialization for application startup.
//
// Services are registered by name with an initializer, optional health
// checker, dependency list, and retry budget. Ensure resolves the
// dependency graph depth-first, initializes each service at most once
// concurrently, retries transient failures with a configurable backoff,
// and places repeatedly failing services behind a per-service circuit
// breaker. Callers always receive a boolean outcome: initializer errors
// are converted into state transitions, never propagated.
//
// # Quick Start
//
//	orch := bootstrap.New()
//	orch.Register("db", connectDB)
//	orch.Register("cache", connectCache, bootstrap.WithDependencies("db"))
//
//	if orch.Ensure(ctx, "cache") {
//	    // db and cache are both ready
//	}
//
// The orchestrator is an explicitly constructed instance; create one per
// process in your startup routine and pass it to anything that needs it.
package bootstrap
