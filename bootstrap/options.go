package bootstrap

import (
	"time"

	"github.com/marketedge/bootkit/logger"
)

// Defaults applied to the orchestrator and to services that do not
// override them at registration time.
const (
	DefaultMaxRetries         = 3
	DefaultFailureThreshold   = 5
	DefaultCooldown           = 30 * time.Second
	DefaultRetryDelay         = 1 * time.Second
	DefaultColdStartThreshold = 5 * time.Second
)

// BackoffFunc returns the delay before retry number attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// ConstantBackoff returns a BackoffFunc with a fixed delay between retries.
func ConstantBackoff(d time.Duration) BackoffFunc {
	return func(int) time.Duration { return d }
}

// Option configures the Orchestrator during creation.
type Option func(*orchestratorOptions)

// orchestratorOptions collects all option values before applying.
type orchestratorOptions struct {
	logger             *logger.Logger
	backoff            BackoffFunc
	maxRetries         *int
	failureThreshold   *int
	cooldown           *time.Duration
	coldStartThreshold *time.Duration
	onStateChange      func(name string, from, to Status)
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *orchestratorOptions {
	o := &orchestratorOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used by the orchestrator.
func WithLogger(l *logger.Logger) Option {
	return func(o *orchestratorOptions) {
		o.logger = l
	}
}

// WithBackoff sets the delay function applied between retries.
// The default is a constant 1s delay.
func WithBackoff(fn BackoffFunc) Option {
	return func(o *orchestratorOptions) {
		o.backoff = fn
	}
}

// WithRetryDelay sets a constant delay between retries. Shorthand for
// WithBackoff(ConstantBackoff(d)).
func WithRetryDelay(d time.Duration) Option {
	return func(o *orchestratorOptions) {
		o.backoff = ConstantBackoff(d)
	}
}

// WithDefaultMaxRetries sets the retry budget applied to services that
// do not specify their own.
func WithDefaultMaxRetries(n int) Option {
	return func(o *orchestratorOptions) {
		o.maxRetries = &n
	}
}

// WithDefaultFailureThreshold sets the circuit-breaker trip point applied
// to services that do not specify their own.
func WithDefaultFailureThreshold(n int) Option {
	return func(o *orchestratorOptions) {
		o.failureThreshold = &n
	}
}

// WithDefaultCooldown sets the circuit-open cooldown applied to services
// that do not specify their own.
func WithDefaultCooldown(d time.Duration) Option {
	return func(o *orchestratorOptions) {
		o.cooldown = &d
	}
}

// WithColdStartThreshold sets the elapsed-time budget under which a
// startup is reported as a cold start in Snapshot.
func WithColdStartThreshold(d time.Duration) Option {
	return func(o *orchestratorOptions) {
		o.coldStartThreshold = &d
	}
}

// WithStateChangeHook registers a callback fired on every service status
// transition. The callback runs on the orchestration goroutine and must
// not call back into the orchestrator.
func WithStateChangeHook(fn func(name string, from, to Status)) Option {
	return func(o *orchestratorOptions) {
		o.onStateChange = fn
	}
}
