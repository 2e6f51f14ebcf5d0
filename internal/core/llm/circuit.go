package llm

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CircuitBreakerConfig configures a circuit breaker's trip threshold and
// reset delay.
type CircuitBreakerConfig struct {
	Threshold  int
	ResetAfter time.Duration
}

// circuitBreaker trips after a run of consecutive failures and refuses
// further attempts for ResetAfter, giving a struggling provider time to
// recover before the registry tries it again.
type circuitBreaker struct {
	threshold           int
	resetAfter          time.Duration
	consecutiveFailures int
	openUntil           time.Time
	mu                  sync.Mutex
	logger              *zerolog.Logger
}

func newCircuitBreaker(cfg CircuitBreakerConfig, logger *zerolog.Logger) *circuitBreaker {
	return &circuitBreaker{
		threshold:  cfg.Threshold,
		resetAfter: cfg.ResetAfter,
		logger:     logger,
	}
}

func (cb *circuitBreaker) CanAttempt() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return time.Now().After(cb.openUntil)
}

func (cb *circuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFailures = 0
}

func (cb *circuitBreaker) RecordFailure(provider ProviderName) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFailures++

	if cb.consecutiveFailures >= cb.threshold {
		cb.openUntil = time.Now().Add(cb.resetAfter)

		if cb.logger != nil {
			cb.logger.Warn().
				Str("provider", string(provider)).
				Int("consecutive_failures", cb.consecutiveFailures).
				Time("open_until", cb.openUntil).
				Msg("llm provider circuit breaker opened")
		}

		return true
	}

	return false
}
