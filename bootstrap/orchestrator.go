package bootstrap

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/marketedge/bootkit/logger"
)

// Orchestrator owns the registry of services and decides when and how
// each is initialized. It is safe for concurrent use.
type Orchestrator struct {
	mu       sync.RWMutex
	services map[string]*serviceRecord
	flight   singleflight.Group

	start time.Time
	log   *logger.Logger

	backoff            BackoffFunc
	maxRetries         int
	failureThreshold   int
	cooldown           time.Duration
	coldStartThreshold time.Duration
	onStateChange      func(name string, from, to Status)
}

// New creates an orchestrator with the given options applied over the
// package defaults.
func New(opts ...Option) *Orchestrator {
	o := resolveOptions(opts)

	orch := &Orchestrator{
		services:           make(map[string]*serviceRecord),
		start:              time.Now(),
		log:                logger.Default().WithComponent("bootstrap"),
		backoff:            ConstantBackoff(DefaultRetryDelay),
		maxRetries:         DefaultMaxRetries,
		failureThreshold:   DefaultFailureThreshold,
		cooldown:           DefaultCooldown,
		coldStartThreshold: DefaultColdStartThreshold,
	}

	if o.logger != nil {
		orch.log = o.logger.WithComponent("bootstrap")
	}
	if o.backoff != nil {
		orch.backoff = o.backoff
	}
	if o.maxRetries != nil {
		orch.maxRetries = *o.maxRetries
	}
	if o.failureThreshold != nil {
		orch.failureThreshold = *o.failureThreshold
	}
	if o.cooldown != nil {
		orch.cooldown = *o.cooldown
	}
	if o.coldStartThreshold != nil {
		orch.coldStartThreshold = *o.coldStartThreshold
	}
	orch.onStateChange = o.onStateChange

	return orch
}

// Register adds a service to the orchestrator in the not_initialized
// state. Registering a name twice silently replaces the previous record,
// discarding its state; a warning is logged.
func (o *Orchestrator) Register(name string, init InitFunc, opts ...ServiceOption) {
	rec := &serviceRecord{
		name:             name,
		init:             init,
		status:           StatusNotInitialized,
		maxRetries:       o.maxRetries,
		failureThreshold: o.failureThreshold,
		cooldown:         o.cooldown,
	}
	for _, opt := range opts {
		opt(rec)
	}

	o.mu.Lock()
	if _, exists := o.services[name]; exists {
		o.log.Warn("Service re-registered, previous record discarded", map[string]interface{}{
			logger.FieldService: name,
		})
	}
	o.services[name] = rec
	o.mu.Unlock()

	o.log.Debug("Service registered", map[string]interface{}{
		logger.FieldService: name,
		"dependencies":      rec.dependencies,
		"max_retries":       rec.maxRetries,
	})
}

// Ensure makes the named service ready, resolving its dependencies
// depth-first and retrying transient failures. It returns true when the
// service is usable and false otherwise. Errors from initializers are
// converted into state transitions and log lines; Ensure never panics
// and never returns an error.
//
// Concurrent calls for the same name share a single initialization
// attempt and observe the same outcome.
func (o *Orchestrator) Ensure(ctx context.Context, name string) bool {
	return o.ensure(ctx, name, nil)
}

func (o *Orchestrator) ensure(ctx context.Context, name string, path []string) bool {
	rec := o.lookup(name)
	if rec == nil {
		o.log.Error("Ensure called for unregistered service", map[string]interface{}{
			logger.FieldService: name,
		})
		return false
	}

	for _, p := range path {
		if p == name {
			o.log.Error("Dependency cycle detected", map[string]interface{}{
				logger.FieldService: name,
				"path":              append(path, name),
			})
			return false
		}
	}

	// Concurrent callers for the same name join the in-flight resolution
	// instead of double-running the initializer.
	v, _, _ := o.flight.Do(name, func() (interface{}, error) {
		return o.resolve(ctx, rec, append(path, name)), nil
	})
	ready, _ := v.(bool)
	return ready
}

// resolve runs the per-service state machine. It executes inside the
// singleflight group, so at most one resolution per name is in flight.
func (o *Orchestrator) resolve(ctx context.Context, rec *serviceRecord, path []string) bool {
	rec.mu.Lock()
	switch rec.status {
	case StatusInitialized, StatusDegraded:
		// Fast path. Degraded services are stale-but-serving: they report
		// ready without re-running the initializer or rechecking health.
		rec.mu.Unlock()
		return true
	case StatusCircuitOpen:
		if time.Since(rec.openSince) < rec.cooldown {
			remaining := rec.cooldown - time.Since(rec.openSince)
			rec.mu.Unlock()
			o.log.Warn("Circuit open, initialization blocked", map[string]interface{}{
				logger.FieldService: rec.name,
				"cooldown_left_ms":  remaining.Milliseconds(),
			})
			return false
		}
		// Cooldown elapsed: the circuit self-heals and the service
		// re-enters the normal cycle with a fresh retry budget.
		o.transitionLocked(rec, StatusNotInitialized)
		rec.retryCount = 0
	}
	rec.mu.Unlock()

	for _, dep := range rec.dependencies {
		if !o.ensure(ctx, dep, path) {
			rec.mu.Lock()
			o.transitionLocked(rec, StatusDegraded)
			rec.mu.Unlock()
			o.log.Warn("Dependency not ready, marking service degraded", map[string]interface{}{
				logger.FieldService:    rec.name,
				logger.FieldDependency: dep,
			})
			return false
		}
	}

	return o.attempt(ctx, rec)
}

// attempt runs the initializer, retrying per the service's budget and
// tripping the circuit breaker on repeated failures.
func (o *Orchestrator) attempt(ctx context.Context, rec *serviceRecord) bool {
	for {
		rec.mu.Lock()
		o.transitionLocked(rec, StatusInitializing)
		rec.initStart = time.Now()
		rec.mu.Unlock()

		err := invoke(ctx, rec.init)

		rec.mu.Lock()
		rec.initDuration = time.Since(rec.initStart)

		if err == nil {
			rec.consecutiveFailures = 0
			o.transitionLocked(rec, StatusInitialized)
			duration := rec.initDuration
			rec.mu.Unlock()
			o.log.Info("Service initialized", map[string]interface{}{
				logger.FieldService:  rec.name,
				logger.FieldDuration: duration.Milliseconds(),
			})
			return true
		}

		rec.lastError = err.Error()
		rec.failureCount++
		rec.consecutiveFailures++

		if rec.consecutiveFailures >= rec.failureThreshold {
			o.transitionLocked(rec, StatusCircuitOpen)
			rec.openSince = time.Now()
			consecutive := rec.consecutiveFailures
			rec.mu.Unlock()
			o.log.Error("Circuit opened after consecutive failures", map[string]interface{}{
				logger.FieldService: rec.name,
				logger.FieldError:   err.Error(),
				"consecutive":       consecutive,
			})
			return false
		}

		if rec.retryCount < rec.maxRetries {
			rec.retryCount++
			attempt := rec.retryCount
			rec.mu.Unlock()

			delay := o.backoff(attempt)
			o.log.Warn("Initialization failed, retrying", map[string]interface{}{
				logger.FieldService: rec.name,
				logger.FieldAttempt: attempt,
				logger.FieldError:   err.Error(),
				"backoff_ms":        delay.Milliseconds(),
			})

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				rec.mu.Lock()
				rec.lastError = ctx.Err().Error()
				o.transitionLocked(rec, StatusFailed)
				rec.mu.Unlock()
				return false
			case <-timer.C:
			}
			continue
		}

		o.transitionLocked(rec, StatusFailed)
		retries := rec.maxRetries
		rec.mu.Unlock()
		o.log.Error("Initialization failed, retries exhausted", map[string]interface{}{
			logger.FieldService: rec.name,
			logger.FieldError:   err.Error(),
			"retries":           retries,
		})
		return false
	}
}

// HealthCheck runs the service's health checker, if any. Without a
// checker it reports true iff the service is initialized. A failing
// checker downgrades an initialized service to degraded; health checks
// never feed the circuit breaker.
func (o *Orchestrator) HealthCheck(ctx context.Context, name string) bool {
	rec := o.lookup(name)
	if rec == nil {
		o.log.Error("HealthCheck called for unregistered service", map[string]interface{}{
			logger.FieldService: name,
		})
		return false
	}

	rec.mu.Lock()
	rec.healthCheckCount++
	rec.lastHealthCheck = time.Now()
	hc := rec.health
	status := rec.status
	rec.mu.Unlock()

	if hc == nil {
		return status == StatusInitialized
	}

	if err := invoke(ctx, hc); err != nil {
		rec.mu.Lock()
		rec.lastError = err.Error()
		if rec.status == StatusInitialized {
			o.transitionLocked(rec, StatusDegraded)
		}
		rec.mu.Unlock()
		o.log.Warn("Health check failed", map[string]interface{}{
			logger.FieldService: name,
			logger.FieldError:   err.Error(),
		})
		return false
	}
	return true
}

// Status returns the current status of a service, or false when the
// name is not registered.
func (o *Orchestrator) Status(name string) (Status, bool) {
	rec := o.lookup(name)
	if rec == nil {
		return "", false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.status, true
}

// lookup returns the record for name, or nil.
func (o *Orchestrator) lookup(name string) *serviceRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.services[name]
}

// transitionLocked moves rec to a new status and fires the state-change
// hook. Callers must hold rec.mu.
func (o *Orchestrator) transitionLocked(rec *serviceRecord, to Status) {
	if rec.status == to {
		return
	}
	from := rec.status
	rec.status = to
	if o.onStateChange != nil {
		o.onStateChange(rec.name, from, to)
	}
}
