package enrichment

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/feed"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

const stageEnrichment = "enrichment"

var allPlatforms = []string{
	social.PlatformTwitter, social.PlatformLinkedIn, social.PlatformInstagram,
	social.PlatformFacebook, social.PlatformYouTube, social.PlatformTikTok,
}

// Orchestrator runs the three-phase Enrichment stage over a batch of
// UnifiedLeads: concurrent per-lead discovery, a cross-lead batched
// social-scraping barrier, then concurrent per-lead merge.
type Orchestrator struct {
	llm        llm.Client
	scrapers   social.Registry
	feedParser *feed.Parser
	cfg        *config.Config
	logger     *zerolog.Logger
}

// New builds an Orchestrator from its collaborators.
func New(llmClient llm.Client, scrapers social.Registry, feedParser *feed.Parser, cfg *config.Config, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{llm: llmClient, scrapers: scrapers, feedParser: feedParser, cfg: cfg, logger: logger}
}

// Run executes all three phases over leads, returning one EnrichedProfile
// per input lead in the same order. A discovery or social-scrape
// failure degrades that lead to a best-effort profile built from
// whatever data is available; Enrichment never drops a lead.
func (o *Orchestrator) Run(ctx context.Context, leads []domain.UnifiedLead) []domain.EnrichedProfile {
	start := time.Now()

	if len(leads) == 0 {
		return nil
	}

	hints := o.runDiscoveryPhase(ctx, leads)

	maps := o.runSocialPhase(ctx, leads, hints)

	profiles := o.runMergePhase(ctx, leads, hints, maps)

	observability.StageDuration.WithLabelValues(stageEnrichment).Observe(time.Since(start).Seconds())
	observability.StageOutputCount.WithLabelValues(stageEnrichment).Observe(float64(len(profiles)))

	return profiles
}

// runDiscoveryPhase is Phase 1: one discovery task per lead, all
// concurrent, joined by a hard barrier before Phase 2 begins.
func (o *Orchestrator) runDiscoveryPhase(ctx context.Context, leads []domain.UnifiedLead) []llm.DiscoveryHintsResult {
	hints := make([]llm.DiscoveryHintsResult, len(leads))

	var wg sync.WaitGroup

	wg.Add(len(leads))

	for i, lead := range leads {
		go func(i int, lead domain.UnifiedLead) {
			defer wg.Done()

			hints[i] = discover(ctx, lead, o.llm, o.cfg.GroundedSearchDelay, o.logger)
		}(i, lead)
	}

	wg.Wait()

	return hints
}

// runSocialPhase is Phase 2: collect the union of winning URLs per
// platform across every lead, canonicalize them, and submit each
// platform's set as a single batch to its scraper.
func (o *Orchestrator) runSocialPhase(ctx context.Context, leads []domain.UnifiedLead, hints []llm.DiscoveryHintsResult) platformMaps {
	sets := make(map[string]map[string]struct{}, len(allPlatforms))
	for _, p := range allPlatforms {
		sets[p] = make(map[string]struct{})
	}

	for i, lead := range leads {
		for _, platform := range allPlatforms {
			winner := winningURL(platform, lead, hints[i])
			if winner == nil {
				continue
			}

			if canonical := social.Canonicalize(platform, *winner); canonical != "" {
				sets[platform][canonical] = struct{}{}
			}
		}
	}

	result := make(platformMaps, len(allPlatforms))

	for _, platform := range allPlatforms {
		urls := make([]string, 0, len(sets[platform]))
		for u := range sets[platform] {
			urls = append(urls, u)
		}

		if len(urls) == 0 {
			continue
		}

		scraper, ok := o.scrapers[platform]
		if !ok {
			continue
		}

		stats, err := scraper.FetchBatch(ctx, urls)

		outcome := "success"
		if err != nil {
			outcome = "error"

			if o.logger != nil {
				o.logger.Warn().Err(err).Str("platform", platform).Msg("enrichment: social batch fetch failed")
			}
		}

		observability.SocialScraperRequests.WithLabelValues(platform, outcome).Inc()

		if stats != nil {
			result[platform] = stats
		}
	}

	return result
}

// runMergePhase is Phase 3: one merge task per lead, concurrent, each
// consulting its own discovery hints and the shared Phase 2 maps.
func (o *Orchestrator) runMergePhase(ctx context.Context, leads []domain.UnifiedLead, hints []llm.DiscoveryHintsResult, maps platformMaps) []domain.EnrichedProfile {
	profiles := make([]domain.EnrichedProfile, len(leads))

	var wg sync.WaitGroup

	wg.Add(len(leads))

	for i, lead := range leads {
		go func(i int, lead domain.UnifiedLead) {
			defer wg.Done()

			var rss *feed.ParsedFeed

			if o.cfg.RSSParsingEnabled && o.feedParser != nil && lead.FeedURL != nil && *lead.FeedURL != "" {
				if parsed, err := o.feedParser.Parse(ctx, *lead.FeedURL); err == nil {
					rss = parsed
				}
			}

			profiles[i] = merge(lead, hints[i], maps, rss)
		}(i, lead)
	}

	wg.Wait()

	return profiles
}
