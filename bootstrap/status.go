package bootstrap

// Status represents the lifecycle state of a registered service.
type Status string

const (
	// StatusNotInitialized is the initial state of every registered service.
	StatusNotInitialized Status = "not_initialized"
	// StatusInitializing means an initialization attempt is in flight.
	StatusInitializing Status = "initializing"
	// StatusInitialized means the initializer completed without error.
	StatusInitialized Status = "initialized"
	// StatusFailed means the retry budget was exhausted without success.
	StatusFailed Status = "failed"
	// StatusDegraded means a dependency or health check failed; the
	// service is reported as usable-but-unhealthy.
	StatusDegraded Status = "degraded"
	// StatusCircuitOpen means consecutive failures tripped the breaker;
	// initialization is blocked until the cooldown elapses.
	StatusCircuitOpen Status = "circuit_open"
)

// Ready reports whether the status counts as usable by callers.
// Degraded services are stale-but-serving and report ready.
func (s Status) Ready() bool {
	return s == StatusInitialized || s == StatusDegraded
}
