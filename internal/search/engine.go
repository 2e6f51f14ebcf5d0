package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
)

const (
	// pageSize bounds each paginated fetch call; a short page (fewer
	// results than requested) signals the provider has no further page.
	pageSize = 10

	maxConcurrentKeywords = 5

	stageSearch = "search"
)

// CatalogAClient is the subset of catalog.ListenNotesClient the engine
// depends on.
type CatalogAClient interface {
	IsAvailable() bool
	Search(ctx context.Context, keyword string, offset, maxResults int) ([]domain.UnifiedLead, error)
	LookupByFeedURLs(ctx context.Context, feedURLs []string) ([]domain.UnifiedLead, error)
	LookupByItunesID(ctx context.Context, itunesID string) (*domain.UnifiedLead, error)
	Recommendations(ctx context.Context, podcastID string) ([]domain.UnifiedLead, error)
}

// CatalogBClient is the subset of catalog.PodscanClient the engine
// depends on.
type CatalogBClient interface {
	IsAvailable() bool
	Search(ctx context.Context, keyword string, page, perPage int) ([]domain.UnifiedLead, error)
	LookupByFeedURL(ctx context.Context, feedURL string) (*domain.UnifiedLead, error)
	LookupByItunesID(ctx context.Context, itunesID string) (*domain.UnifiedLead, error)
	Related(ctx context.Context, podcastID string) ([]domain.UnifiedLead, error)
}

// Engine implements the Search & Unification stage: keyword fan-out
// (topic mode) or BFS traversal (related mode), cross-provider
// enrichment lookups, and feed-URL deduplication.
type Engine struct {
	catalogA CatalogAClient
	catalogB CatalogBClient
	llm      llm.Client
	cfg      *config.Config
	logger   *zerolog.Logger
}

// New builds a search Engine from its provider clients.
func New(catalogA CatalogAClient, catalogB CatalogBClient, llmClient llm.Client, cfg *config.Config, logger *zerolog.Logger) *Engine {
	return &Engine{catalogA: catalogA, catalogB: catalogB, llm: llmClient, cfg: cfg, logger: logger}
}

// Run executes the Search stage for a campaign, dispatching to topic or
// related mode, then applying cross-provider enrichment and
// deduplication. An empty result is not an error: the pipeline driver
// interprets it as a short-circuit to end.
func (e *Engine) Run(ctx context.Context, campaign domain.CampaignConfig) ([]domain.UnifiedLead, error) {
	start := time.Now()

	var (
		leads []domain.UnifiedLead
		err   error
	)

	switch campaign.SearchType {
	case domain.SearchTypeRelated:
		leads, err = e.runRelated(ctx, campaign)
	default:
		leads, err = e.runTopic(ctx, campaign)
	}

	if err != nil {
		observability.StageDuration.WithLabelValues(stageSearch).Observe(time.Since(start).Seconds())
		return nil, err
	}

	e.crossProviderEnrich(ctx, leads)

	deduped := DedupeAndMerge(leads, domain.SourceListenNotes, e.logger)

	observability.StageDuration.WithLabelValues(stageSearch).Observe(time.Since(start).Seconds())
	observability.StageOutputCount.WithLabelValues(stageSearch).Observe(float64(len(deduped)))

	return deduped, nil
}

// runTopic generates keywords from the campaign's audience description,
// then fans out concurrently across keywords and providers, paginating
// each provider until it runs dry or the per-keyword cap is reached.
// Zero keywords yields no leads and no error.
func (e *Engine) runTopic(ctx context.Context, campaign domain.CampaignConfig) ([]domain.UnifiedLead, error) {
	keywords, err := GenerateKeywords(ctx, e.llm, campaign)
	if err != nil {
		return nil, err
	}

	if len(keywords) == 0 {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		leads []domain.UnifiedLead
	)

	sem := make(chan struct{}, maxConcurrentKeywords)

	for _, kw := range keywords {
		if ctx.Err() != nil {
			break
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break
		}

		wg.Add(1)

		go func(keyword string) {
			defer wg.Done()
			defer func() { <-sem }()

			found := e.searchKeyword(ctx, keyword, campaign.MaxResultsPerKeyword)

			mu.Lock()
			leads = append(leads, found...)
			mu.Unlock()
		}(kw)
	}

	wg.Wait()

	return leads, nil
}

// searchKeyword fans out the two catalog providers concurrently for one
// keyword, each paginating independently up to the combined cap.
func (e *Engine) searchKeyword(ctx context.Context, keyword string, cap int) []domain.UnifiedLead {
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		results    []domain.UnifiedLead
		remainingA = cap
		remainingB = cap
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		found := e.paginateA(ctx, keyword, remainingA)

		mu.Lock()
		results = append(results, found...)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()

		found := e.paginateB(ctx, keyword, remainingB)

		mu.Lock()
		results = append(results, found...)
		mu.Unlock()
	}()

	wg.Wait()

	if cap > 0 && len(results) > cap {
		results = results[:cap]
	}

	return results
}

func (e *Engine) paginateA(ctx context.Context, keyword string, cap int) []domain.UnifiedLead {
	if !e.catalogA.IsAvailable() {
		return nil
	}

	var out []domain.UnifiedLead

	offset := 0

	for {
		if ctx.Err() != nil {
			return out
		}

		remaining := cap - len(out)
		if cap > 0 && remaining <= 0 {
			return out
		}

		want := pageSize
		if cap > 0 && remaining < want {
			want = remaining
		}

		page, err := e.catalogA.Search(ctx, keyword, offset, want)
		if err != nil {
			e.logPageFailure("catalog_a", keyword, err)
			return out
		}

		out = append(out, page...)
		offset += len(page)

		if len(page) < want {
			return out
		}
	}
}

func (e *Engine) paginateB(ctx context.Context, keyword string, cap int) []domain.UnifiedLead {
	if !e.catalogB.IsAvailable() {
		return nil
	}

	var out []domain.UnifiedLead

	page := 1

	for {
		if ctx.Err() != nil {
			return out
		}

		remaining := cap - len(out)
		if cap > 0 && remaining <= 0 {
			return out
		}

		want := pageSize
		if cap > 0 && remaining < want {
			want = remaining
		}

		results, err := e.catalogB.Search(ctx, keyword, page, want)
		if err != nil {
			e.logPageFailure("catalog_b", keyword, err)
			return out
		}

		out = append(out, results...)
		page++

		if len(results) < want {
			return out
		}
	}
}

func (e *Engine) logPageFailure(provider, keyword string, err error) {
	if e.logger == nil {
		return
	}

	e.logger.Warn().
		Err(err).
		Str("provider", provider).
		Str("keyword", keyword).
		Msg("search: provider page failed, terminating this provider's loop for this keyword")
}

// runRelated performs a breadth-first traversal from a seed feed URL,
// resolving recommendations/related podcasts from both providers at
// each depth.
func (e *Engine) runRelated(ctx context.Context, campaign domain.CampaignConfig) ([]domain.UnifiedLead, error) {
	type queueEntry struct {
		feedURL string
		depth   int
	}

	results := make(map[string]domain.UnifiedLead)
	processed := map[string]bool{campaign.SeedFeedURL: true}
	queue := []queueEntry{{feedURL: campaign.SeedFeedURL, depth: 1}}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		if ctx.Err() != nil {
			break
		}

		if entry.depth > campaign.MaxDepth {
			continue
		}

		related := e.relatedFor(ctx, entry.feedURL)

		for _, r := range related {
			if r.FeedURL == nil || *r.FeedURL == "" {
				continue
			}

			key := *r.FeedURL
			if _, exists := results[key]; !exists {
				if campaign.MaxTotalResults > 0 && len(results) >= campaign.MaxTotalResults {
					continue
				}

				results[key] = r
			}

			if !processed[key] {
				processed[key] = true

				if campaign.MaxTotalResults == 0 || len(results) < campaign.MaxTotalResults {
					queue = append(queue, queueEntry{feedURL: key, depth: entry.depth + 1})
				}
			}
		}
	}

	out := make([]domain.UnifiedLead, 0, len(results))
	for _, r := range results {
		out = append(out, r)
	}

	return out, nil
}

// relatedFor resolves provider IDs for a feed URL via both clients, then
// fetches each provider's related-podcast listing.
func (e *Engine) relatedFor(ctx context.Context, feedURL string) []domain.UnifiedLead {
	var out []domain.UnifiedLead

	if e.catalogA.IsAvailable() {
		if leads, err := e.catalogA.LookupByFeedURLs(ctx, []string{feedURL}); err == nil {
			for _, l := range leads {
				if recs, err := e.catalogA.Recommendations(ctx, l.APIID); err == nil {
					out = append(out, recs...)
				} else if e.logger != nil {
					e.logger.Warn().Err(err).Str("feed_url", feedURL).Msg("search: recommendations lookup failed")
				}
			}
		}
	}

	if e.catalogB.IsAvailable() {
		if l, err := e.catalogB.LookupByFeedURL(ctx, feedURL); err == nil && l != nil {
			if recs, err := e.catalogB.Related(ctx, l.APIID); err == nil {
				out = append(out, recs...)
			} else if e.logger != nil {
				e.logger.Warn().Err(err).Str("feed_url", feedURL).Msg("search: related lookup failed")
			}
		}
	}

	return out
}

// crossProviderEnrich fills fields one provider's records typically lack
// from the other provider, one lookup at a time with a courtesy delay
// between consecutive cross-provider calls.
func (e *Engine) crossProviderEnrich(ctx context.Context, leads []domain.UnifiedLead) {
	delay := e.cfg.CrossProviderLookupDelay

	for i := range leads {
		if ctx.Err() != nil {
			return
		}

		switch leads[i].SourceAPI {
		case domain.SourceListenNotes:
			if needsCatalogBLookup(leads[i]) {
				e.enrichFromB(ctx, &leads[i])
				sleepCtx(ctx, delay)
			}
		case domain.SourcePodscan:
			if needsCatalogALookup(leads[i]) {
				e.enrichFromA(ctx, &leads[i])
				sleepCtx(ctx, delay)
			}
		}
	}
}

func needsCatalogBLookup(l domain.UnifiedLead) bool {
	return l.AudienceSize == nil || len(l.RatingAverages) == 0
}

func needsCatalogALookup(l domain.UnifiedLead) bool {
	return l.ListenScore == nil || l.ListenScoreGlobalRank == nil || l.LatestPubDateMs == nil
}

func (e *Engine) enrichFromB(ctx context.Context, l *domain.UnifiedLead) {
	if !e.catalogB.IsAvailable() {
		return
	}

	itunesID, feedURL := bestLookupKey(*l)

	if itunesID != "" {
		if other, err := e.catalogB.LookupByItunesID(ctx, itunesID); err == nil && other != nil {
			fillMissing(l, *other)
			return
		}
	}

	if feedURL == "" {
		return
	}

	other, err := e.catalogB.LookupByFeedURL(ctx, feedURL)
	if err != nil || other == nil {
		return
	}

	fillMissing(l, *other)
}

func (e *Engine) enrichFromA(ctx context.Context, l *domain.UnifiedLead) {
	if !e.catalogA.IsAvailable() {
		return
	}

	itunesID, feedURL := bestLookupKey(*l)

	if itunesID != "" {
		if other, err := e.catalogA.LookupByItunesID(ctx, itunesID); err == nil && other != nil {
			fillMissing(l, *other)
			return
		}
	}

	if feedURL == "" {
		return
	}

	others, err := e.catalogA.LookupByFeedURLs(ctx, []string{feedURL})
	if err != nil || len(others) == 0 {
		return
	}

	fillMissing(l, others[0])
}

// bestLookupKey returns the iTunes ID (preferred, more precise) and the
// feed URL (fallback) for cross-provider lookup, per spec.md §4.5.
func bestLookupKey(l domain.UnifiedLead) (itunesID, feedURL string) {
	if l.ITunesID != nil {
		itunesID = *l.ITunesID
	}

	if l.FeedURL != nil {
		feedURL = *l.FeedURL
	}

	return itunesID, feedURL
}

// fillMissing copies fields from src into dst only where dst is
// currently nil, mirroring the deduplicator's conservative merge rule.
func fillMissing(dst *domain.UnifiedLead, src domain.UnifiedLead) {
	mergeLeadFields(dst, src)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
