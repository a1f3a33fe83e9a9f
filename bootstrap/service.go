package bootstrap

import (
	"context"
	"sync"
	"time"
)

// InitFunc initializes a service. A nil return means the service is
// ready for use.
type InitFunc func(ctx context.Context) error

// HealthFunc checks the liveness of an initialized service. A non-nil
// error is treated as an unhealthy result.
type HealthFunc func(ctx context.Context) error

// serviceRecord holds the per-service state machine and counters.
// All mutation happens under mu; the orchestrator's singleflight group
// guarantees a single in-flight initialization per name.
type serviceRecord struct {
	mu sync.Mutex

	name         string
	init         InitFunc
	health       HealthFunc
	dependencies []string

	status Status

	retryCount   int
	maxRetries   int
	failureCount int
	lastError    string

	initStart    time.Time
	initDuration time.Duration

	healthCheckCount int
	lastHealthCheck  time.Time

	// circuit breaker sub-state
	consecutiveFailures int
	failureThreshold    int
	openSince           time.Time
	cooldown            time.Duration
}

// ServiceOption configures a service at registration time.
type ServiceOption func(*serviceRecord)

// WithDependencies declares services that must be ready before this
// service's initializer runs. Dependencies are resolved in order.
func WithDependencies(names ...string) ServiceOption {
	return func(r *serviceRecord) {
		r.dependencies = append(r.dependencies, names...)
	}
}

// WithHealthCheck attaches a liveness checker invoked by HealthCheck.
func WithHealthCheck(fn HealthFunc) ServiceOption {
	return func(r *serviceRecord) {
		r.health = fn
	}
}

// WithMaxRetries sets the retry budget for a single Ensure cycle.
func WithMaxRetries(n int) ServiceOption {
	return func(r *serviceRecord) {
		r.maxRetries = n
	}
}

// WithFailureThreshold sets the number of consecutive failures that
// trips the service's circuit breaker.
func WithFailureThreshold(n int) ServiceOption {
	return func(r *serviceRecord) {
		r.failureThreshold = n
	}
}

// WithCooldown sets how long the circuit stays open before the service
// may attempt initialization again.
func WithCooldown(d time.Duration) ServiceOption {
	return func(r *serviceRecord) {
		r.cooldown = d
	}
}
