package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

// anthropicProvider implements Provider on top of the Messages API. Like
// OpenAI, it has no retrieval tool wired in; it is a fallback for both
// capabilities, not a grounding source.
type anthropicProvider struct {
	cfg         *config.Config
	client      anthropic.Client
	model       string
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

func newAnthropicProvider(cfg *config.Config, logger *zerolog.Logger) *anthropicProvider {
	rps := cfg.LLMRateLimitRPS
	if rps <= 0 {
		rps = 1
	}

	model := cfg.AnthropicModel
	if model == "" {
		model = defaultAnthropicModel
	}

	return &anthropicProvider{
		cfg:         cfg,
		client:      anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		model:       model,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *anthropicProvider) Name() ProviderName { return ProviderAnthropic }
func (p *anthropicProvider) IsAvailable() bool  { return p.cfg.AnthropicAPIKey != "" }
func (p *anthropicProvider) Priority() int      { return PriorityFallback }

func (p *anthropicProvider) resolveModel(model string) string {
	if model != "" {
		return model
	}

	return p.model
}

func (p *anthropicProvider) complete(ctx context.Context, prompt, model string) (string, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("anthropic rate limiter: %w", err)
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.resolveModel(model)),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}

	var text string

	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	if text == "" {
		return "", perrors.ErrEmptyResponse
	}

	return text, nil
}

func (p *anthropicProvider) GroundedSearch(ctx context.Context, prompt, model string) (string, error) {
	return p.complete(ctx, prompt, model)
}

func (p *anthropicProvider) GenerateKeywords(ctx context.Context, campaign domain.CampaignConfig, count int, model string) ([]string, error) {
	text, err := p.complete(ctx, buildKeywordPrompt(campaign, count), model)
	if err != nil {
		return nil, err
	}

	var result KeywordResult
	if err := decodeJSON(text, &result); err != nil {
		return nil, err
	}

	return result.Keywords, nil
}

func (p *anthropicProvider) VettingMatch(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile, model string) (VettingMatchResult, error) {
	text, err := p.complete(ctx, buildVettingMatchPrompt(guest, profile), model)
	if err != nil {
		return VettingMatchResult{}, err
	}

	var result VettingMatchResult
	if err := decodeJSON(text, &result); err != nil {
		return VettingMatchResult{}, err
	}

	return result, nil
}

func (p *anthropicProvider) ExtractDiscoveryHints(ctx context.Context, assembledContext, model string) (DiscoveryHintsResult, error) {
	text, err := p.complete(ctx, buildDiscoveryHintsPrompt(assembledContext), model)
	if err != nil {
		return DiscoveryHintsResult{}, err
	}

	var result DiscoveryHintsResult
	if err := decodeJSON(text, &result); err != nil {
		return DiscoveryHintsResult{}, err
	}

	return result, nil
}
