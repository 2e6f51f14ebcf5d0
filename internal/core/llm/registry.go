package llm

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
)

// registry manages LLM providers with priority-ordered fallback.
type registry struct {
	mu        sync.RWMutex
	providers map[ProviderName]Provider
	order     []ProviderName
	breakers  map[ProviderName]*circuitBreaker
	logger    *zerolog.Logger
}

func newRegistry(logger *zerolog.Logger) *registry {
	return &registry{
		providers: make(map[ProviderName]Provider),
		breakers:  make(map[ProviderName]*circuitBreaker),
		logger:    logger,
	}
}

func (r *registry) register(p Provider, cfg CircuitBreakerConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	r.providers[name] = p
	r.order = append(r.order, name)
	r.breakers[name] = newCircuitBreaker(cfg, r.logger)

	sort.SliceStable(r.order, func(i, j int) bool {
		return r.providers[r.order[i]].Priority() > r.providers[r.order[j]].Priority()
	})

	r.logger.Info().Str(logKeyProvider, string(name)).Int("priority", p.Priority()).Msg("registered llm provider")
}

func (r *registry) providerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.providers)
}

// runWithFallback tries fn against every available, non-tripped
// provider in priority order, stopping at the first success.
func runWithFallback[T any](r *registry, capability string, fn func(Provider) (T, error)) (T, error) {
	var zero T

	r.mu.RLock()
	order := append([]ProviderName(nil), r.order...)
	r.mu.RUnlock()

	if len(order) == 0 {
		return zero, perrors.ErrNoProvidersAvailable
	}

	var lastErr error

	for _, name := range order {
		r.mu.RLock()
		p := r.providers[name]
		cb := r.breakers[name]
		r.mu.RUnlock()

		if !p.IsAvailable() || !cb.CanAttempt() {
			continue
		}

		start := time.Now()
		result, err := fn(p)
		observability.LLMRequestDuration.WithLabelValues(string(name), capability).Observe(time.Since(start).Seconds())

		if err != nil {
			lastErr = err

			if cb.RecordFailure(name) {
				observability.LLMCircuitOpens.WithLabelValues(string(name)).Inc()
			}

			recordLLMMetrics(name, capability, false)
			r.logger.Warn().Err(err).Str(logKeyProvider, string(name)).Str("capability", capability).Msg("llm provider failed, trying fallback")

			continue
		}

		cb.RecordSuccess()
		recordLLMMetrics(name, capability, true)

		return result, nil
	}

	if lastErr != nil {
		return zero, errors.Join(perrors.ErrNoProvidersAvailable, lastErr)
	}

	return zero, perrors.ErrNoProvidersAvailable
}

func (r *registry) GroundedSearch(ctx context.Context, prompt string) (string, error) {
	return runWithFallback(r, "grounded_search", func(p Provider) (string, error) {
		return p.GroundedSearch(ctx, prompt, "")
	})
}

func (r *registry) GenerateKeywords(ctx context.Context, campaign domain.CampaignConfig, count int) ([]string, error) {
	return runWithFallback(r, "generate_keywords", func(p Provider) ([]string, error) {
		return p.GenerateKeywords(ctx, campaign, count, "")
	})
}

func (r *registry) VettingMatch(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile) (VettingMatchResult, error) {
	return runWithFallback(r, "vetting_match", func(p Provider) (VettingMatchResult, error) {
		return p.VettingMatch(ctx, guest, profile, "")
	})
}

func (r *registry) ExtractDiscoveryHints(ctx context.Context, assembledContext string) (DiscoveryHintsResult, error) {
	return runWithFallback(r, "discovery_hints", func(p Provider) (DiscoveryHintsResult, error) {
		return p.ExtractDiscoveryHints(ctx, assembledContext, "")
	})
}

func (r *registry) ProviderStatuses() []ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]ProviderStatus, 0, len(r.order))

	for _, name := range r.order {
		p := r.providers[name]
		cb := r.breakers[name]
		statuses = append(statuses, ProviderStatus{
			Name:             name,
			Priority:         p.Priority(),
			Available:        p.IsAvailable(),
			CircuitBreakerOK: cb.CanAttempt(),
		})
	}

	return statuses
}

var _ Client = (*registry)(nil)
