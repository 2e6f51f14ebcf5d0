package vetting

import (
	"context"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
)

// fakeLLM returns a pre-set VettingMatch result or error, ignoring
// every other capability since the Vetting engine only calls
// VettingMatch.
type fakeLLM struct {
	matchResult llm.VettingMatchResult
	matchErr    error
}

func (f *fakeLLM) GroundedSearch(context.Context, string) (string, error) { return "", nil }

func (f *fakeLLM) GenerateKeywords(context.Context, domain.CampaignConfig, int) ([]string, error) {
	return nil, nil
}

func (f *fakeLLM) VettingMatch(context.Context, domain.GuestProfile, domain.EnrichedProfile) (llm.VettingMatchResult, error) {
	return f.matchResult, f.matchErr
}

func (f *fakeLLM) ExtractDiscoveryHints(context.Context, string) (llm.DiscoveryHintsResult, error) {
	return llm.DiscoveryHintsResult{}, nil
}

func (f *fakeLLM) ProviderStatuses() []llm.ProviderStatus { return nil }

var _ llm.Client = (*fakeLLM)(nil)
