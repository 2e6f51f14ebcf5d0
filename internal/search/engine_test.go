package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

type fakeCatalogA struct {
	available         bool
	searchResults     map[string][]domain.UnifiedLead
	searchErr         error
	lookupResults     []domain.UnifiedLead
	itunesLookup      *domain.UnifiedLead
	recommendations   []domain.UnifiedLead
	recommendationErr error

	mu      sync.Mutex
	offsets []int
}

func (f *fakeCatalogA) IsAvailable() bool { return f.available }

// Search slices the configured results at offset, like a real
// offset-paginated provider: each call advances through the same
// backing slice rather than always returning page one.
func (f *fakeCatalogA) Search(_ context.Context, keyword string, offset, maxResults int) ([]domain.UnifiedLead, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	f.mu.Unlock()

	results := f.searchResults[keyword]
	if offset >= len(results) {
		return nil, nil
	}

	end := len(results)
	if maxResults > 0 && offset+maxResults < end {
		end = offset + maxResults
	}

	return results[offset:end], nil
}

func (f *fakeCatalogA) LookupByFeedURLs(_ context.Context, _ []string) ([]domain.UnifiedLead, error) {
	return f.lookupResults, nil
}

func (f *fakeCatalogA) LookupByItunesID(_ context.Context, _ string) (*domain.UnifiedLead, error) {
	return f.itunesLookup, nil
}

func (f *fakeCatalogA) Recommendations(_ context.Context, _ string) ([]domain.UnifiedLead, error) {
	return f.recommendations, f.recommendationErr
}

type fakeCatalogB struct {
	available     bool
	searchResults map[string][]domain.UnifiedLead
	searchErr     error
	lookupResult  *domain.UnifiedLead
	itunesLookup  *domain.UnifiedLead
	related       []domain.UnifiedLead

	mu    sync.Mutex
	pages []int
}

func (f *fakeCatalogB) IsAvailable() bool { return f.available }

// Search slices the configured results by 1-indexed page, like a real
// page-paginated provider.
func (f *fakeCatalogB) Search(_ context.Context, keyword string, page, perPage int) ([]domain.UnifiedLead, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	f.mu.Lock()
	f.pages = append(f.pages, page)
	f.mu.Unlock()

	results := f.searchResults[keyword]

	if page < 1 {
		page = 1
	}

	offset := (page - 1) * perPage
	if perPage <= 0 || offset >= len(results) {
		if page == 1 {
			return results, nil
		}

		return nil, nil
	}

	end := len(results)
	if offset+perPage < end {
		end = offset + perPage
	}

	return results[offset:end], nil
}

func (f *fakeCatalogB) LookupByFeedURL(_ context.Context, _ string) (*domain.UnifiedLead, error) {
	return f.lookupResult, nil
}

func (f *fakeCatalogB) LookupByItunesID(_ context.Context, _ string) (*domain.UnifiedLead, error) {
	return f.itunesLookup, nil
}

func (f *fakeCatalogB) Related(_ context.Context, _ string) ([]domain.UnifiedLead, error) {
	return f.related, nil
}

func strp2(s string) *string { return &s }

func TestEngine_SearchKeyword_CombinesBothProviders(t *testing.T) {
	a := &fakeCatalogA{available: true, searchResults: map[string][]domain.UnifiedLead{
		"widgets": {{SourceAPI: domain.SourceListenNotes, APIID: "1", FeedURL: strp2("https://a.com/feed.xml")}},
	}}
	b := &fakeCatalogB{available: true, searchResults: map[string][]domain.UnifiedLead{
		"widgets": {{SourceAPI: domain.SourcePodscan, APIID: "2", FeedURL: strp2("https://b.com/feed.xml")}},
	}}

	e := &Engine{catalogA: a, catalogB: b, cfg: &config.Config{}}

	results := e.searchKeyword(context.Background(), "widgets", 10)
	assert.Len(t, results, 2)
}

func TestEngine_PaginateA_StopsOnShortPage(t *testing.T) {
	full := make([]domain.UnifiedLead, pageSize)
	for i := range full {
		full[i] = domain.UnifiedLead{SourceAPI: domain.SourceListenNotes, APIID: "x"}
	}

	a := &fakeCatalogA{available: true, searchResults: map[string][]domain.UnifiedLead{"kw": full}}
	e := &Engine{catalogA: a, catalogB: &fakeCatalogB{}, cfg: &config.Config{}}

	out := e.paginateA(context.Background(), "kw", 0)
	assert.Len(t, out, pageSize, "pagination should stop once a page comes back shorter than requested")
}

func TestEngine_PaginateA_ProviderErrorTerminatesLoop(t *testing.T) {
	a := &fakeCatalogA{available: true, searchErr: errors.New("boom")}
	e := &Engine{catalogA: a, catalogB: &fakeCatalogB{}, cfg: &config.Config{}}

	out := e.paginateA(context.Background(), "kw", 100)
	assert.Empty(t, out)
}

func TestEngine_PaginateA_AdvancesOffsetAcrossPages(t *testing.T) {
	full := make([]domain.UnifiedLead, pageSize*2+3)
	for i := range full {
		full[i] = domain.UnifiedLead{SourceAPI: domain.SourceListenNotes, APIID: "x"}
	}

	a := &fakeCatalogA{available: true, searchResults: map[string][]domain.UnifiedLead{"kw": full}}
	e := &Engine{catalogA: a, catalogB: &fakeCatalogB{}, cfg: &config.Config{}}

	out := e.paginateA(context.Background(), "kw", 0)
	assert.Len(t, out, len(full), "pagination must fetch every page, not repeat the first")
	assert.Equal(t, []int{0, pageSize, pageSize * 2}, a.offsets, "each call must advance the offset by the prior page's size")
}

func TestEngine_PaginateB_AdvancesPageAcrossPages(t *testing.T) {
	full := make([]domain.UnifiedLead, pageSize*2+3)
	for i := range full {
		full[i] = domain.UnifiedLead{SourceAPI: domain.SourcePodscan, APIID: "x"}
	}

	b := &fakeCatalogB{available: true, searchResults: map[string][]domain.UnifiedLead{"kw": full}}
	e := &Engine{catalogA: &fakeCatalogA{}, catalogB: b, cfg: &config.Config{}}

	out := e.paginateB(context.Background(), "kw", 0)
	assert.Len(t, out, len(full), "pagination must fetch every page, not repeat the first")
	assert.Equal(t, []int{1, 2, 3}, b.pages, "each call must advance the page number")
}

func TestEngine_RunTopic_EmptyKeywordsIsNotError(t *testing.T) {
	e := &Engine{
		catalogA: &fakeCatalogA{},
		catalogB: &fakeCatalogB{},
		llm:      emptyKeywordLLM{},
		cfg:      &config.Config{},
	}

	leads, err := e.runTopic(context.Background(), domain.CampaignConfig{TargetAudience: "x", NumKeywords: 3})
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestEngine_CrossProviderEnrich_FillsMissingFromOtherProvider(t *testing.T) {
	audienceSize := int64(5000)

	a := &fakeCatalogA{available: true}
	b := &fakeCatalogB{available: true, lookupResult: &domain.UnifiedLead{
		SourceAPI:    domain.SourcePodscan,
		APIID:        "p1",
		AudienceSize: &audienceSize,
	}}

	e := &Engine{catalogA: a, catalogB: b, cfg: &config.Config{CrossProviderLookupDelay: time.Millisecond}}

	leads := []domain.UnifiedLead{
		{SourceAPI: domain.SourceListenNotes, APIID: "ln1", FeedURL: strp2("https://a.com/feed.xml")},
	}

	e.crossProviderEnrich(context.Background(), leads)
	require.NotNil(t, leads[0].AudienceSize)
	assert.Equal(t, audienceSize, *leads[0].AudienceSize)
}

func TestEngine_RunRelated_RespectsMaxTotalResults(t *testing.T) {
	related := []domain.UnifiedLead{
		{SourceAPI: domain.SourcePodscan, APIID: "r1", FeedURL: strp2("https://r1.com/feed.xml")},
		{SourceAPI: domain.SourcePodscan, APIID: "r2", FeedURL: strp2("https://r2.com/feed.xml")},
	}

	a := &fakeCatalogA{available: false}
	b := &fakeCatalogB{
		available:    true,
		lookupResult: &domain.UnifiedLead{SourceAPI: domain.SourcePodscan, APIID: "seed"},
		related:      related,
	}

	e := &Engine{catalogA: a, catalogB: b, cfg: &config.Config{}}

	leads, err := e.runRelated(context.Background(), domain.CampaignConfig{
		SeedFeedURL:     "https://seed.com/feed.xml",
		MaxDepth:        1,
		MaxTotalResults: 1,
	})
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

type emptyKeywordLLM struct{}

func (emptyKeywordLLM) GroundedSearch(context.Context, string) (string, error) { return "", nil }

func (emptyKeywordLLM) GenerateKeywords(context.Context, domain.CampaignConfig, int) ([]string, error) {
	return nil, nil
}

func (emptyKeywordLLM) VettingMatch(context.Context, domain.GuestProfile, domain.EnrichedProfile) (llm.VettingMatchResult, error) {
	return llm.VettingMatchResult{}, nil
}

func (emptyKeywordLLM) ExtractDiscoveryHints(context.Context, string) (llm.DiscoveryHintsResult, error) {
	return llm.DiscoveryHintsResult{}, nil
}

func (emptyKeywordLLM) ProviderStatuses() []llm.ProviderStatus { return nil }

var _ llm.Client = emptyKeywordLLM{}
