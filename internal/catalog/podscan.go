package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
)

const podscanAuthHeader = "Authorization"

// PodscanClient wraps the Podscan podcast directory API (Catalog-B).
type PodscanClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retryCfg    RetryConfig
	logger      *zerolog.Logger
}

// NewPodscanClient builds a client from the shared configuration.
func NewPodscanClient(cfg *config.Config, logger *zerolog.Logger) *PodscanClient {
	return &PodscanClient{
		baseURL:     strings.TrimRight(cfg.PodscanBaseURL, "/"),
		apiKey:      cfg.PodscanAPIKey,
		httpClient:  &http.Client{Timeout: cfg.PodscanTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 2),
		retryCfg:    RetryConfig{MaxRetries: cfg.CatalogMaxRetries, BaseBackoff: cfg.CatalogBaseBackoff},
		logger:      logger,
	}
}

// IsAvailable reports whether an API key is configured.
func (c *PodscanClient) IsAvailable() bool { return c.apiKey != "" }

func (c *PodscanClient) do(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("podscan rate limiter: %w", err)
	}

	fullURL := c.baseURL + path
	if query != nil {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("building podscan request: %w", err)
	}

	req.Header.Set(podscanAuthHeader, "Bearer "+c.apiKey)

	start := time.Now()
	body, err := doWithRetry(ctx, c.httpClient, req, c.retryCfg, c.logger)
	observability.CatalogRequestDuration.WithLabelValues("podscan", path).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.CatalogRequests.WithLabelValues("podscan", path, "error").Inc()
		return err
	}

	observability.CatalogRequests.WithLabelValues("podscan", path, "success").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding podscan response: %w", err)
	}

	return nil
}

// Search performs a keyword search on the given 1-indexed page, returning
// up to perPage leads. Podscan paginates by page number rather than
// offset.
func (c *PodscanClient) Search(ctx context.Context, keyword string, page, perPage int) ([]domain.UnifiedLead, error) {
	query := url.Values{}
	query.Set("query", keyword)

	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var resp podscanSearchResponse
	if err := c.do(ctx, "/podcasts/search", query, &resp); err != nil {
		return nil, err
	}

	leads := make([]domain.UnifiedLead, 0, len(resp.Podcasts))

	for i, p := range resp.Podcasts {
		if perPage > 0 && i >= perPage {
			break
		}

		leads = append(leads, mapPodscan(p))
	}

	return leads, nil
}

// LookupByFeedURL resolves a single podcast by RSS feed URL. Podscan
// has no batch endpoint, unlike Listen Notes, so callers needing many
// lookups must call this once per feed URL.
func (c *PodscanClient) LookupByFeedURL(ctx context.Context, feedURL string) (*domain.UnifiedLead, error) {
	query := url.Values{}
	query.Set("rss_url", feedURL)

	var resp podscanSearchResponse
	if err := c.do(ctx, "/podcasts/lookup", query, &resp); err != nil {
		return nil, err
	}

	if len(resp.Podcasts) == 0 {
		return nil, nil
	}

	lead := mapPodscan(resp.Podcasts[0])

	return &lead, nil
}

// LookupByItunesID resolves a single podcast by its Apple Podcasts
// (iTunes) ID, the preferred cross-provider lookup key per spec.md
// §4.5.
func (c *PodscanClient) LookupByItunesID(ctx context.Context, itunesID string) (*domain.UnifiedLead, error) {
	if itunesID == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("itunes_id", itunesID)

	var resp podscanSearchResponse
	if err := c.do(ctx, "/podcasts/lookup", query, &resp); err != nil {
		return nil, err
	}

	if len(resp.Podcasts) == 0 {
		return nil, nil
	}

	lead := mapPodscan(resp.Podcasts[0])

	return &lead, nil
}

// Related returns podcasts related to the given podcast ID, for
// related-mode BFS traversal.
func (c *PodscanClient) Related(ctx context.Context, podcastID string) ([]domain.UnifiedLead, error) {
	var resp podscanSearchResponse
	if err := c.do(ctx, "/podcasts/"+url.PathEscape(podcastID)+"/related", nil, &resp); err != nil {
		return nil, err
	}

	leads := make([]domain.UnifiedLead, 0, len(resp.Podcasts))
	for _, p := range resp.Podcasts {
		leads = append(leads, mapPodscan(p))
	}

	return leads, nil
}
