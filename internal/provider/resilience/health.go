package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// SourceHealth is a point-in-time view of an upstream source, exposed on the
// operational status endpoint.
type SourceHealth struct {
	// Name identifies the source.
	Name string `json:"name"`

	// CircuitState is the current breaker state ("closed", "half-open",
	// "open").
	CircuitState string `json:"circuitState"`

	// Requests and Failures are the breaker's counts for the current
	// generation.
	Requests uint32 `json:"requests"`
	Failures uint32 `json:"failures"`

	// LastSuccessAt and LastFailureAt are the most recent outcomes, nil
	// until the first request of that kind.
	LastSuccessAt *time.Time `json:"lastSuccessAt,omitempty"`
	LastFailureAt *time.Time `json:"lastFailureAt,omitempty"`

	// LastError is the most recent failure message, empty when none.
	LastError string `json:"lastError,omitempty"`
}

// Healthy reports whether the source is fully available.
func (h *SourceHealth) Healthy() bool {
	return h.CircuitState == gobreaker.StateClosed.String()
}

// HealthTracker records request outcomes for a named upstream source and
// pairs them with the breaker state of the source's client.
type HealthTracker struct {
	name   string
	client *Client

	mu            sync.RWMutex
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewHealthTracker creates a tracker for the given client.
func NewHealthTracker(name string, client *Client) *HealthTracker {
	return &HealthTracker{name: name, client: client}
}

// RecordSuccess notes a successful request.
func (t *HealthTracker) RecordSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.lastSuccessAt = &now
}

// RecordFailure notes a failed request.
func (t *HealthTracker) RecordFailure(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.lastFailureAt = &now
	if err != nil {
		t.lastError = err.Error()
	}
}

// Health returns the current view of the source.
func (t *HealthTracker) Health() *SourceHealth {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := t.client.CircuitBreakerCounts()
	return &SourceHealth{
		Name:          t.name,
		CircuitState:  t.client.CircuitBreakerState().String(),
		Requests:      counts.Requests,
		Failures:      counts.TotalFailures,
		LastSuccessAt: t.lastSuccessAt,
		LastFailureAt: t.lastFailureAt,
		LastError:     t.lastError,
	}
}
