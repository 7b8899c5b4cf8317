// Package resilience guards calls to flaky upstreams (token introspection,
// job publishing) with a consecutive-failure circuit breaker.
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenMaxReq   = 2
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	// HalfOpenMaxReq bounds concurrent probes and is also the number of
	// successful probes needed to close again.
	HalfOpenMaxReq int
	// OnStateChange, when set, is called outside the lock after a transition.
	OnStateChange func(from, to State)
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}

// CircuitBreaker trips after FailureThreshold consecutive classified failures.
// A disabled or nil breaker runs every call.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	openedAt  time.Time
	probes    int
	successes int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: StateClosed,
	}
}

// Do runs fn unless the circuit is open. Errors count as failures only when
// isFailure reports true; a nil isFailure counts every error.
func (b *CircuitBreaker) Do(fn func() error, isFailure func(error) bool) error {
	if b == nil || !b.cfg.Enabled {
		return fn()
	}

	probe, err := b.acquire()
	if err != nil {
		return err
	}

	callErr := fn()
	failed := callErr != nil && (isFailure == nil || isFailure(callErr))
	b.release(probe, failed)
	return callErr
}

func (b *CircuitBreaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.cooledDown() {
		return StateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) acquire() (probe bool, err error) {
	b.mu.Lock()
	from := b.state
	if b.state == StateOpen {
		if !b.cooledDown() {
			b.mu.Unlock()
			return false, ErrCircuitOpen
		}
		b.set(StateHalfOpen)
	}

	if b.state == StateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			b.mu.Unlock()
			b.notify(from, StateHalfOpen)
			return false, ErrCircuitOpen
		}
		b.probes++
		probe = true
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return probe, nil
}

func (b *CircuitBreaker) release(probe, failed bool) {
	b.mu.Lock()
	from := b.state
	switch {
	case b.state == StateHalfOpen && probe:
		// A probe from an earlier half-open cycle may arrive after a reset.
		if b.probes > 0 {
			b.probes--
		}
		if failed {
			b.set(StateOpen)
			break
		}
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.set(StateClosed)
		}
	case b.state == StateClosed:
		if !failed {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.set(StateOpen)
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// set resets the counters that belong to the new state. Callers hold mu.
func (b *CircuitBreaker) set(s State) {
	b.state = s
	b.probes = 0
	b.successes = 0
	switch s {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *CircuitBreaker) notify(from, to State) {
	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}
