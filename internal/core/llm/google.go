package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

// googleProvider implements Provider on top of Gemini. Unlike the other
// two providers, GroundedSearch enables Gemini's Google Search
// retrieval tool, so its answers can cite facts the model was never
// trained on (recent episodes, new social handles). GenerateKeywords
// and VettingMatch run without the tool since they don't need fresh
// facts, just judgment over the campaign/profile already in the prompt.
type googleProvider struct {
	cfg         *config.Config
	client      *genai.Client
	model       string
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

func newGoogleProvider(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*googleProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GoogleAPIKey))
	if err != nil {
		return nil, fmt.Errorf("creating google genai client: %w", err)
	}

	rps := cfg.LLMRateLimitRPS
	if rps <= 0 {
		rps = 1
	}

	model := cfg.GoogleModel
	if model == "" {
		model = defaultGoogleModel
	}

	return &googleProvider{
		cfg:         cfg,
		client:      client,
		model:       model,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}, nil
}

func (p *googleProvider) Name() ProviderName { return ProviderGoogle }
func (p *googleProvider) IsAvailable() bool  { return p.cfg.GoogleAPIKey != "" }
func (p *googleProvider) Priority() int      { return PrioritySecond }

func (p *googleProvider) resolveModel(model string) string {
	if model != "" {
		return model
	}

	return p.model
}

// sanitizeUTF8 strips invalid UTF-8 sequences; Gemini's protobuf API
// rejects them outright, and scraped profile text occasionally has one.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
			i++
		} else {
			b.WriteRune(r)
			i += size
		}
	}

	return b.String()
}

func (p *googleProvider) generate(ctx context.Context, model, prompt string, grounded bool) (string, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("google rate limiter: %w", err)
	}

	genModel := p.client.GenerativeModel(p.resolveModel(model))

	if grounded {
		genModel.Tools = []*genai.Tool{
			{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}},
		}
	}

	resp, err := genModel.GenerateContent(ctx, genai.Text(sanitizeUTF8(prompt)))
	if err != nil {
		return "", fmt.Errorf("google generatecontent: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", perrors.ErrEmptyResponse
	}

	var sb strings.Builder

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}

		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if sb.Len() == 0 {
		return "", perrors.ErrEmptyResponse
	}

	return sb.String(), nil
}

func (p *googleProvider) GroundedSearch(ctx context.Context, prompt, model string) (string, error) {
	return p.generate(ctx, model, prompt, true)
}

func (p *googleProvider) GenerateKeywords(ctx context.Context, campaign domain.CampaignConfig, count int, model string) ([]string, error) {
	text, err := p.generate(ctx, model, buildKeywordPrompt(campaign, count), false)
	if err != nil {
		return nil, err
	}

	var result KeywordResult
	if err := decodeJSON(text, &result); err != nil {
		return nil, err
	}

	return result.Keywords, nil
}

func (p *googleProvider) VettingMatch(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile, model string) (VettingMatchResult, error) {
	text, err := p.generate(ctx, model, buildVettingMatchPrompt(guest, profile), false)
	if err != nil {
		return VettingMatchResult{}, err
	}

	var result VettingMatchResult
	if err := decodeJSON(text, &result); err != nil {
		return VettingMatchResult{}, err
	}

	return result, nil
}

func (p *googleProvider) ExtractDiscoveryHints(ctx context.Context, assembledContext, model string) (DiscoveryHintsResult, error) {
	text, err := p.generate(ctx, model, buildDiscoveryHintsPrompt(assembledContext), false)
	if err != nil {
		return DiscoveryHintsResult{}, err
	}

	var result DiscoveryHintsResult
	if err := decodeJSON(text, &result); err != nil {
		return DiscoveryHintsResult{}, err
	}

	return result, nil
}
