package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

// openaiProvider implements Provider on top of the Chat Completions API.
// It has no web-search tool of its own; GroundedSearch answers from the
// model's parametric knowledge and callers should not rely on it for
// fresh facts the way they can with the Google provider.
type openaiProvider struct {
	cfg         *config.Config
	client      *openai.Client
	model       string
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

func newOpenAIProvider(cfg *config.Config, logger *zerolog.Logger) *openaiProvider {
	rps := cfg.LLMRateLimitRPS
	if rps <= 0 {
		rps = 1
	}

	model := cfg.OpenAIModel
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openaiProvider{
		cfg:         cfg,
		client:      openai.NewClient(cfg.OpenAIAPIKey),
		model:       model,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *openaiProvider) Name() ProviderName { return ProviderOpenAI }
func (p *openaiProvider) IsAvailable() bool  { return p.cfg.OpenAIAPIKey != "" }
func (p *openaiProvider) Priority() int      { return PriorityPrimary }

func (p *openaiProvider) resolveModel(model string) string {
	if model != "" {
		return model
	}

	return p.model
}

func (p *openaiProvider) complete(ctx context.Context, prompt, model string, jsonMode bool) (string, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai rate limiter: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: p.resolveModel(model),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", perrors.ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *openaiProvider) GroundedSearch(ctx context.Context, prompt, model string) (string, error) {
	return p.complete(ctx, prompt, model, false)
}

func (p *openaiProvider) GenerateKeywords(ctx context.Context, campaign domain.CampaignConfig, count int, model string) ([]string, error) {
	text, err := p.complete(ctx, buildKeywordPrompt(campaign, count), model, true)
	if err != nil {
		return nil, err
	}

	var result KeywordResult
	if err := decodeJSON(text, &result); err != nil {
		return nil, err
	}

	return result.Keywords, nil
}

func (p *openaiProvider) VettingMatch(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile, model string) (VettingMatchResult, error) {
	text, err := p.complete(ctx, buildVettingMatchPrompt(guest, profile), model, true)
	if err != nil {
		return VettingMatchResult{}, err
	}

	var result VettingMatchResult
	if err := decodeJSON(text, &result); err != nil {
		return VettingMatchResult{}, err
	}

	return result, nil
}

func (p *openaiProvider) ExtractDiscoveryHints(ctx context.Context, assembledContext, model string) (DiscoveryHintsResult, error) {
	text, err := p.complete(ctx, buildDiscoveryHintsPrompt(assembledContext), model, true)
	if err != nil {
		return DiscoveryHintsResult{}, err
	}

	var result DiscoveryHintsResult
	if err := decodeJSON(text, &result); err != nil {
		return DiscoveryHintsResult{}, err
	}

	return result, nil
}
