package bootstrap

import "time"

// CircuitDetail reports a service's circuit-breaker counters.
type CircuitDetail struct {
	ConsecutiveFailures int        `json:"consecutive_failures"`
	FailureThreshold    int        `json:"failure_threshold"`
	OpenSince           *time.Time `json:"open_since,omitempty"`
	CooldownMS          int64      `json:"cooldown_ms"`
}

// ServiceDetail reports the observable state of one registered service.
type ServiceDetail struct {
	Status           Status        `json:"status"`
	Dependencies     []string      `json:"dependencies,omitempty"`
	RetryCount       int           `json:"retry_count"`
	MaxRetries       int           `json:"max_retries"`
	FailureCount     int           `json:"failure_count"`
	LastError        string        `json:"last_error,omitempty"`
	LastDurationMS   int64         `json:"last_duration_ms"`
	HealthCheckCount int           `json:"health_check_count"`
	LastHealthCheck  *time.Time    `json:"last_health_check,omitempty"`
	Circuit          CircuitDetail `json:"circuit"`
}

// Snapshot is an aggregate view of the orchestrator, computed on demand
// from in-memory records. It is safe to serialize into a readiness
// endpoint response.
type Snapshot struct {
	ElapsedMS    int64                    `json:"elapsed_ms"`
	ColdStart    bool                     `json:"cold_start"`
	StatusCounts map[Status]int           `json:"status_counts"`
	Services     map[string]ServiceDetail `json:"services"`
}

// Snapshot computes aggregate startup metrics from current service
// state. It is a pure read with no side effects and is safe to call at
// any time, including mid-initialization.
func (o *Orchestrator) Snapshot() Snapshot {
	elapsed := time.Since(o.start)

	snap := Snapshot{
		ElapsedMS:    elapsed.Milliseconds(),
		ColdStart:    elapsed < o.coldStartThreshold,
		StatusCounts: make(map[Status]int),
		Services:     make(map[string]ServiceDetail),
	}

	o.mu.RLock()
	records := make([]*serviceRecord, 0, len(o.services))
	for _, rec := range o.services {
		records = append(records, rec)
	}
	o.mu.RUnlock()

	for _, rec := range records {
		rec.mu.Lock()
		detail := ServiceDetail{
			Status:           rec.status,
			Dependencies:     append([]string(nil), rec.dependencies...),
			RetryCount:       rec.retryCount,
			MaxRetries:       rec.maxRetries,
			FailureCount:     rec.failureCount,
			LastError:        rec.lastError,
			LastDurationMS:   rec.initDuration.Milliseconds(),
			HealthCheckCount: rec.healthCheckCount,
			Circuit: CircuitDetail{
				ConsecutiveFailures: rec.consecutiveFailures,
				FailureThreshold:    rec.failureThreshold,
				CooldownMS:          rec.cooldown.Milliseconds(),
			},
		}
		if !rec.lastHealthCheck.IsZero() {
			t := rec.lastHealthCheck
			detail.LastHealthCheck = &t
		}
		if !rec.openSince.IsZero() && rec.status == StatusCircuitOpen {
			t := rec.openSince
			detail.Circuit.OpenSince = &t
		}
		name := rec.name
		rec.mu.Unlock()

		snap.StatusCounts[detail.Status]++
		snap.Services[name] = detail
	}

	return snap
}
