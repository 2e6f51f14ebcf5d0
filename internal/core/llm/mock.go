package llm

import (
	"context"
	"fmt"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

// mockProvider lets the pipeline run end to end with no LLM API keys
// configured, for local development and tests.
type mockProvider struct{}

func newMockProvider() *mockProvider {
	return &mockProvider{}
}

func (p *mockProvider) Name() ProviderName { return ProviderMock }
func (p *mockProvider) IsAvailable() bool  { return true }
func (p *mockProvider) Priority() int      { return PriorityMock }

func (p *mockProvider) GroundedSearch(_ context.Context, prompt, _ string) (string, error) {
	return fmt.Sprintf("mock grounded response for prompt of length %d", len(prompt)), nil
}

func (p *mockProvider) GenerateKeywords(_ context.Context, campaign domain.CampaignConfig, count int, _ string) ([]string, error) {
	keywords := make([]string, 0, count)

	base := campaign.TargetAudience
	if base == "" {
		base = "podcast"
	}

	for i := 0; i < count; i++ {
		keywords = append(keywords, fmt.Sprintf("%s keyword %d", base, i+1))
	}

	return keywords, nil
}

func (p *mockProvider) VettingMatch(_ context.Context, _ domain.GuestProfile, _ domain.EnrichedProfile, _ string) (VettingMatchResult, error) {
	return VettingMatchResult{Score: 50, Explanation: "mock provider: no real judgment performed"}, nil
}

func (p *mockProvider) ExtractDiscoveryHints(_ context.Context, _, _ string) (DiscoveryHintsResult, error) {
	return DiscoveryHintsResult{HostNames: []string{}}, nil
}
