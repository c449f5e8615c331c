// Package health implements liveness and readiness probes in the style of
// Kubernetes probe configuration.
//
// Every registered probe runs on its own background ticker. Thresholds keep
// the reported state from flapping: a probe flips to unhealthy only after
// failAfter consecutive failures and back to healthy after passAfter
// consecutive passes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

// probe is one registered check plus its runtime state.
//
// observe() runs on a single goroutine, so the consecutive counters need no
// locking. healthy and lastErr are read by HTTP handlers from arbitrary
// goroutines and therefore use atomics.
type probe struct {
	name      string
	timeout   time.Duration
	fn        CheckFunc
	failAfter int
	passAfter int

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails  int
	passes int
}

func (p *probe) ok() bool {
	return p.healthy.Load()
}

func (p *probe) lastError() error {
	if e := p.lastErr.Load(); e != nil {
		return *e
	}
	return nil
}

// observe runs the check once and applies the thresholds. Single-goroutine
// only.
func (p *probe) observe(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.fn(checkCtx)
	p.lastErr.Store(&err)

	if err != nil {
		p.passes = 0
		p.fails++
		if p.fails >= p.failAfter {
			p.healthy.Store(false)
		}
		return
	}
	p.fails = 0
	p.passes++
	if p.passes >= p.passAfter {
		p.healthy.Store(true)
	}
}

// loop re-runs the probe at the given interval until ctx is cancelled. The
// first observation happens immediately.
func (p *probe) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.observe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.observe(ctx)
		}
	}
}

// Health holds the liveness and readiness probe sets for a service.
type Health struct {
	ready atomic.Bool

	// mu guards the probe slices and cancel. Registration happens before
	// Start; handlers only take short read locks to snapshot the slices.
	mu        sync.RWMutex
	liveness  []*probe
	readiness []*probe
	cancel    context.CancelFunc
}

// New returns an empty Health. The service starts not-ready; call
// SetReady(true) once initialization is done.
func New() *Health {
	return &Health{}
}

func newProbe(name string, timeout time.Duration, fn CheckFunc) *probe {
	p := &probe{
		name:      name,
		timeout:   timeout,
		fn:        fn,
		failAfter: 3,
		passAfter: 1,
	}
	p.healthy.Store(true) // healthy until proven otherwise
	return p
}

// AddLivenessCheck registers a probe for /livez. Liveness answers "is this
// process still functioning" — goroutine counts, GC pauses and the like.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, newProbe(name, timeout, fn))
}

// AddReadinessCheck registers a probe for /readyz. Readiness answers "can we
// serve traffic right now" — upstream reachability, cache connectivity.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, newProbe(name, timeout, fn))
}

// Start launches one background goroutine per registered probe, each running
// at the given interval. Register all probes before calling Start.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	probes := make([]*probe, 0, len(h.liveness)+len(h.readiness))
	probes = append(probes, h.liveness...)
	probes = append(probes, h.readiness...)
	h.mu.Unlock()

	for _, p := range probes {
		go p.loop(ctx, interval)
	}
}

// SetReady flips the manual readiness gate. Call with true after startup and
// with false at the beginning of graceful shutdown to shed traffic.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service should receive traffic: the manual gate
// must be open and every readiness probe passing.
func (h *Health) IsReady() bool {
	if !h.ready.Load() {
		return false
	}

	h.mu.RLock()
	probes := h.readiness
	h.mu.RUnlock()

	for _, p := range probes {
		if !p.ok() {
			return false
		}
	}
	return true
}

// Stop cancels the probe goroutines. Safe to call more than once.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// statusResponse is the JSON body served by both probe endpoints.
type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves /livez: 200 {"status":"ok"} while every liveness probe
// passes, 503 with per-probe failure messages otherwise.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	probes := make([]*probe, len(h.liveness))
	copy(probes, h.liveness)
	h.mu.RUnlock()

	writeStatus(w, failing(probes))
}

// ReadyEndpoint serves /readyz: 200 only when the manual gate is open and all
// readiness probes pass.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	ready := h.ready.Load()

	h.mu.RLock()
	probes := make([]*probe, len(h.readiness))
	copy(probes, h.readiness)
	h.mu.RUnlock()

	failures := failing(probes)
	if !ready {
		failures["_readiness"] = "service is not ready"
	}
	writeStatus(w, failures)
}

// failing maps probe name to failure message for every unhealthy probe,
// using the last observed error rather than re-running the check.
func failing(probes []*probe) map[string]string {
	failures := make(map[string]string)
	for _, p := range probes {
		if p.ok() {
			continue
		}
		if err := p.lastError(); err != nil {
			failures[p.name] = err.Error()
		} else {
			failures[p.name] = "check is unhealthy"
		}
	}
	return failures
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	status := http.StatusOK
	if len(failures) > 0 {
		resp.Status = "unhealthy"
		resp.Checks = failures
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
