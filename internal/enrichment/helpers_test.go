package enrichment

import (
	"context"
	"errors"
	"sync"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

func mkHints(twitter *string, hostNames []string) llm.DiscoveryHintsResult {
	return llm.DiscoveryHintsResult{PodcastTwitterURL: twitter, HostNames: hostNames}
}

// fakeLLM answers every grounded-search probe with a fixed string and
// returns a pre-set extraction result, tracking call counts so tests
// can assert on fan-out behavior without network access.
type fakeLLM struct {
	mu             sync.Mutex
	groundedCalls  int
	extractCalls   int
	extractResult  llm.DiscoveryHintsResult
	extractErr     error
	groundedErr    error
	groundedAnswer string
}

func (f *fakeLLM) GroundedSearch(context.Context, string) (string, error) {
	f.mu.Lock()
	f.groundedCalls++
	f.mu.Unlock()

	if f.groundedErr != nil {
		return "", f.groundedErr
	}

	return f.groundedAnswer, nil
}

func (f *fakeLLM) GenerateKeywords(context.Context, domain.CampaignConfig, int) ([]string, error) {
	return nil, nil
}

func (f *fakeLLM) VettingMatch(context.Context, domain.GuestProfile, domain.EnrichedProfile) (llm.VettingMatchResult, error) {
	return llm.VettingMatchResult{}, nil
}

func (f *fakeLLM) ExtractDiscoveryHints(context.Context, string) (llm.DiscoveryHintsResult, error) {
	f.mu.Lock()
	f.extractCalls++
	f.mu.Unlock()

	if f.extractErr != nil {
		return llm.DiscoveryHintsResult{}, f.extractErr
	}

	return f.extractResult, nil
}

func (f *fakeLLM) ProviderStatuses() []llm.ProviderStatus { return nil }

var _ llm.Client = (*fakeLLM)(nil)

var errFakeScraper = errors.New("fake scraper failure")

// fakeScraper returns a fixed stats map regardless of the requested
// batch, recording the URLs it was asked to fetch.
type fakeScraper struct {
	platform  string
	stats     map[string]social.Stats
	err       error
	gotBatch  []string
	callCount int
}

func (f *fakeScraper) Platform() string { return f.platform }

func (f *fakeScraper) FetchBatch(_ context.Context, urls []string) (map[string]social.Stats, error) {
	f.callCount++
	f.gotBatch = urls

	if f.err != nil {
		return nil, f.err
	}

	return f.stats, nil
}

var _ social.Scraper = (*fakeScraper)(nil)
