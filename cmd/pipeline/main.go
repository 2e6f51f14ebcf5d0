// Package main is the entrypoint for a single campaign run: Search,
// Enrichment, and Vetting sequenced over one CampaignConfig built from
// CLI flags, per spec.md §6's "CampaignConfig is the sole input
// accepted by a pipeline run."
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/catalog"
	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/enrichment"
	"github.com/lueurxax/telegram-digest-bot/internal/feed"
	"github.com/lueurxax/telegram-digest-bot/internal/pipeline"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
	"github.com/lueurxax/telegram-digest-bot/internal/search"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
	"github.com/lueurxax/telegram-digest-bot/internal/vetting"
)

func main() {
	flags := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := observability.NewServer(cfg.HealthPort, &logger).Start(ctx); err != nil {
			logger.Error().Err(err).Msg("health check server error")
		}
	}()

	campaign := flags.toCampaignConfig()

	llmClient, err := llm.New(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize llm client")
	}

	catalogA := catalog.NewListenNotesClient(cfg, &logger)
	catalogB := catalog.NewPodscanClient(cfg, &logger)
	searchEngine := search.New(catalogA, catalogB, llmClient, cfg, &logger)

	scrapers := social.NewRegistry(cfg, &logger)
	feedParser := feed.New(cfg.RSSFetchTimeout, &logger)
	enrichmentOrchestrator := enrichment.New(llmClient, scrapers, feedParser, cfg, &logger)

	vettingEngine := vetting.New(llmClient, cfg, &logger)

	sink := observability.NewLoggingSink(&logger)
	driver := pipeline.New(searchEngine, enrichmentOrchestrator, vettingEngine, sink, &logger)

	result := driver.Run(ctx, campaign)

	logger.Info().
		Str("status", string(result.Status)).
		Int("leads", len(result.Leads)).
		Int("profiles", len(result.Profiles)).
		Int("vetted", len(result.Vetted)).
		Str("leads_csv", result.LeadsCSVPath).
		Str("profiles_csv", result.ProfilesCSVPath).
		Str("vetting_csv", result.VettingCSVPath).
		Msg("campaign run finished")

	if result.ErrorMessage != "" {
		logger.Error().Str("error_message", result.ErrorMessage).Msg("campaign run ended with an error")
		os.Exit(1)
	}
}

// cliFlags mirrors domain.CampaignConfig's fields, letting an operator
// launch one run without writing a config file.
type cliFlags struct {
	campaignID           string
	searchType           string
	targetAudience       string
	keyMessages          string
	numKeywords          int
	maxResultsPerKeyword int
	seedFeedURL          string
	maxDepth             int
	maxTotalResults      int
	guestBio             string
	guestTalkingPoints   string
	idealPodcastDesc     string
}

func parseFlags() cliFlags {
	f := cliFlags{}

	flag.StringVar(&f.campaignID, "campaign-id", "", "unique campaign identifier (required)")
	flag.StringVar(&f.searchType, "search-type", string(domain.SearchTypeTopic), "topic or related")
	flag.StringVar(&f.targetAudience, "target-audience", "", "desired audience description (topic mode)")
	flag.StringVar(&f.keyMessages, "key-messages", "", "comma-separated key messages (topic mode)")
	flag.IntVar(&f.numKeywords, "num-keywords", domain.DefaultNumKeywords, "number of search keywords to generate")
	flag.IntVar(&f.maxResultsPerKeyword, "max-results-per-keyword", domain.DefaultMaxResultsPerKeyword, "max results per keyword")
	flag.StringVar(&f.seedFeedURL, "seed-feed-url", "", "seed RSS feed URL (related mode)")
	flag.IntVar(&f.maxDepth, "max-depth", domain.DefaultMaxDepth, "related-search traversal depth")
	flag.IntVar(&f.maxTotalResults, "max-total-results", domain.DefaultMaxTotalResults, "related-search result cap")
	flag.StringVar(&f.guestBio, "guest-bio", "", "guest bio for the Vetting stage")
	flag.StringVar(&f.guestTalkingPoints, "guest-talking-points", "", "comma-separated guest talking points")
	flag.StringVar(&f.idealPodcastDesc, "ideal-podcast-description", "", "description of the ideal podcast fit")

	flag.Parse()

	return f
}

func (f cliFlags) toCampaignConfig() domain.CampaignConfig {
	campaign := domain.CampaignConfig{
		CampaignID:           f.campaignID,
		SearchType:           domain.SearchType(f.searchType),
		TargetAudience:       f.targetAudience,
		KeyMessages:          splitNonEmpty(f.keyMessages),
		NumKeywords:          f.numKeywords,
		MaxResultsPerKeyword: f.maxResultsPerKeyword,
		SeedFeedURL:          f.seedFeedURL,
		MaxDepth:             f.maxDepth,
		MaxTotalResults:      f.maxTotalResults,
		Guest: domain.GuestProfile{
			IdealPodcastDescription: f.idealPodcastDesc,
			GuestBio:                f.guestBio,
			GuestTalkingPoints:      splitNonEmpty(f.guestTalkingPoints),
		},
	}

	campaign.Normalize()

	return campaign
}

func splitNonEmpty(csv string) []string {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
