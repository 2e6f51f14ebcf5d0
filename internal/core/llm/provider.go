package llm

import (
	"context"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

// ProviderName identifies an LLM provider.
type ProviderName string

const (
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
	ProviderGoogle    ProviderName = "google"
	ProviderMock      ProviderName = "mock"
)

// Priority constants for provider ordering; higher runs first.
const (
	PriorityPrimary  = 100 // OpenAI
	PriorityFallback = 50  // Anthropic
	PrioritySecond   = 25  // Google
	PriorityMock     = 0
)

// KeywordResult is the structured output of keyword generation.
type KeywordResult struct {
	Keywords []string `json:"keywords"`
}

// VettingMatchResult is the structured output of an LLM guest-fit judgment.
type VettingMatchResult struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// DiscoveryHintsResult is the structured output of the Enrichment
// orchestrator's Phase 1 discovery extraction: up to eight social URL
// slots plus host names, with nulls for anything not clearly present
// in the assembled context. Field names mirror the eight slots spec.md
// §4.6 names.
type DiscoveryHintsResult struct {
	HostNames []string `json:"host_names"`

	PodcastTwitterURL   *string `json:"podcast_twitter_url"`
	PodcastLinkedInURL  *string `json:"podcast_linkedin_url"`
	PodcastInstagramURL *string `json:"podcast_instagram_url"`
	PodcastFacebookURL  *string `json:"podcast_facebook_url"`
	PodcastYouTubeURL   *string `json:"podcast_youtube_url"`
	PodcastTikTokURL    *string `json:"podcast_tiktok_url"`

	HostLinkedInURL *string `json:"host_linkedin_url"`
	HostTwitterURL  *string `json:"host_twitter_url"`
}

// Provider defines the two LLM capabilities the pipeline depends on:
// free-form web-grounded generation, and schema-constrained JSON
// generation. Every concrete provider (openai, anthropic, google)
// implements both; callers never see provider-specific request shapes.
type Provider interface {
	Name() ProviderName
	IsAvailable() bool
	Priority() int

	// GroundedSearch asks the model to answer a free-form prompt,
	// optionally using web search to ground its answer. Only the
	// Google provider actually performs retrieval; other providers
	// answer from parametric knowledge alone.
	GroundedSearch(ctx context.Context, prompt, model string) (string, error)

	// GenerateKeywords returns the search keywords the model produced
	// for a topic-mode campaign; duplicates are not removed.
	GenerateKeywords(ctx context.Context, campaign domain.CampaignConfig, count int, model string) ([]string, error)

	// VettingMatch scores how well an enriched profile fits a guest's
	// pitch, as a schema-constrained judgment.
	VettingMatch(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile, model string) (VettingMatchResult, error)

	// ExtractDiscoveryHints parses assembled search-probe context into
	// the fixed eight-URL-slot-plus-host-names schema. The extractor is
	// instructed to emit nulls rather than guesses for anything not
	// clearly present in the context.
	ExtractDiscoveryHints(ctx context.Context, assembledContext, model string) (DiscoveryHintsResult, error)
}
