// Package llm provides a multi-provider LLM client for the pipeline's
// two generation needs: free-form web-grounded prompts and
// schema-constrained structured extraction.
//
// Providers are tried in priority order (OpenAI primary, Anthropic and
// Google fallback); a per-provider circuit breaker keeps a
// consistently-failing provider out of rotation for a cooldown window
// instead of retrying it on every call.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
)

// Client is the interface pipeline stages depend on; Registry is the
// only production implementation.
type Client interface {
	GroundedSearch(ctx context.Context, prompt string) (string, error)
	GenerateKeywords(ctx context.Context, campaign domain.CampaignConfig, count int) ([]string, error)
	VettingMatch(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile) (VettingMatchResult, error)
	ExtractDiscoveryHints(ctx context.Context, assembledContext string) (DiscoveryHintsResult, error)
	ProviderStatuses() []ProviderStatus
}

// ProviderStatus reports one provider's current availability for
// diagnostics and the pipeline's final run summary.
type ProviderStatus struct {
	Name             ProviderName
	Priority         int
	Available        bool
	CircuitBreakerOK bool
}

// New builds a Client with every configured provider registered in
// priority order. If no API key is set for any provider, it falls back
// to a mock provider so the rest of the pipeline remains exercisable.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (Client, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	circuitCfg := CircuitBreakerConfig{
		Threshold:  cfg.LLMCircuitThresh,
		ResetAfter: cfg.LLMCircuitReset,
	}

	if circuitCfg.Threshold <= 0 {
		circuitCfg.Threshold = defaultCircuitThreshold
	}

	registry := newRegistry(logger)

	if cfg.OpenAIAPIKey != "" {
		registry.register(newOpenAIProvider(cfg, logger), circuitCfg)
	}

	if cfg.AnthropicAPIKey != "" {
		registry.register(newAnthropicProvider(cfg, logger), circuitCfg)
	}

	if cfg.GoogleAPIKey != "" {
		googleProvider, err := newGoogleProvider(ctx, cfg, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to create google llm provider")
		} else {
			registry.register(googleProvider, circuitCfg)
		}
	}

	if registry.providerCount() == 0 {
		logger.Warn().Msg("no llm provider api keys configured, using mock provider")
		registry.register(newMockProvider(), circuitCfg)
	}

	return registry, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON pulls the outermost {...} object out of a response that
// may have surrounding prose, code fences, or other chatter. It returns
// the original text unchanged if no brace-delimited substring is found.
func extractJSON(text string) string {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return text
	}

	return match
}

// decodeJSON extracts and unmarshals a JSON object from a raw model
// response. A malformed or missing object is a hard failure: the
// pipeline's structured-generation contract is fail-closed, never
// best-effort guessing at partial output.
func decodeJSON(raw string, out interface{}) error {
	candidate := extractJSON(raw)

	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrMalformedResponse, err)
	}

	return nil
}

func recordLLMMetrics(provider ProviderName, capability string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	observability.LLMRequests.WithLabelValues(string(provider), capability, status).Inc()
}
