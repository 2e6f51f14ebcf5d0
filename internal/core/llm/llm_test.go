package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"score": 1}`, `{"score": 1}`},
		{"fenced object", "```json\n{\"score\": 1}\n```", `{"score": 1}`},
		{"prose wrapped", `Sure, here you go: {"score": 1} hope that helps!`, `{"score": 1}`},
		{"no object", "no json here", "no json here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var out VettingMatchResult
	err := decodeJSON("not json at all", &out)
	require.Error(t, err)
}

func TestDecodeJSON_Valid(t *testing.T) {
	var out VettingMatchResult

	err := decodeJSON(`{"score": 77, "explanation": "good fit"}`, &out)
	require.NoError(t, err)
	assert.Equal(t, 77, out.Score)
	assert.Equal(t, "good fit", out.Explanation)
}

func TestMockProvider_GenerateKeywords(t *testing.T) {
	p := newMockProvider()

	keywords, err := p.GenerateKeywords(context.Background(), domain.CampaignConfig{TargetAudience: "founders"}, 3, "")
	require.NoError(t, err)
	assert.Len(t, keywords, 3)
}

// failingProvider always fails; used to exercise registry fallback and
// circuit breaker behavior without network access.
type failingProvider struct {
	name     ProviderName
	priority int
	calls    int
}

func (f *failingProvider) Name() ProviderName { return f.name }
func (f *failingProvider) IsAvailable() bool  { return true }
func (f *failingProvider) Priority() int      { return f.priority }

func (f *failingProvider) GroundedSearch(context.Context, string, string) (string, error) {
	f.calls++
	return "", errors.New("boom")
}

func (f *failingProvider) GenerateKeywords(context.Context, domain.CampaignConfig, int, string) ([]string, error) {
	f.calls++
	return nil, errors.New("boom")
}

func (f *failingProvider) VettingMatch(context.Context, domain.GuestProfile, domain.EnrichedProfile, string) (VettingMatchResult, error) {
	f.calls++
	return VettingMatchResult{}, errors.New("boom")
}

func (f *failingProvider) ExtractDiscoveryHints(context.Context, string, string) (DiscoveryHintsResult, error) {
	f.calls++
	return DiscoveryHintsResult{}, errors.New("boom")
}

func TestRegistry_FallsBackToNextProvider(t *testing.T) {
	logger := zerolog.Nop()
	r := newRegistry(&logger)

	primary := &failingProvider{name: "primary", priority: PriorityPrimary}
	r.register(primary, CircuitBreakerConfig{Threshold: 5, ResetAfter: time.Minute})
	r.register(newMockProvider(), CircuitBreakerConfig{Threshold: 5, ResetAfter: time.Minute})

	keywords, err := r.GenerateKeywords(context.Background(), domain.CampaignConfig{TargetAudience: "founders"}, 2)
	require.NoError(t, err)
	assert.Len(t, keywords, 2)
	assert.Equal(t, 1, primary.calls)
}

func TestRegistry_CircuitBreakerOpensAfterThreshold(t *testing.T) {
	logger := zerolog.Nop()
	r := newRegistry(&logger)

	primary := &failingProvider{name: "primary", priority: PriorityPrimary}
	r.register(primary, CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Hour})

	_, err := r.GenerateKeywords(context.Background(), domain.CampaignConfig{}, 1)
	require.Error(t, err)
	_, err = r.GenerateKeywords(context.Background(), domain.CampaignConfig{}, 1)
	require.Error(t, err)

	callsBeforeOpen := primary.calls

	_, err = r.GenerateKeywords(context.Background(), domain.CampaignConfig{}, 1)
	require.Error(t, err)
	assert.Equal(t, callsBeforeOpen, primary.calls, "circuit should be open, provider should not be called again")
}

func TestRegistry_NoProvidersConfigured(t *testing.T) {
	logger := zerolog.Nop()
	r := newRegistry(&logger)

	_, err := r.GenerateKeywords(context.Background(), domain.CampaignConfig{}, 1)
	require.Error(t, err)
}
