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

const listenNotesAuthHeader = "X-ListenAPI-Key"

// ListenNotesClient wraps the Listen Notes podcast directory API
// (Catalog-A). It is safe for concurrent use.
type ListenNotesClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retryCfg    RetryConfig
	logger      *zerolog.Logger
}

// NewListenNotesClient builds a client from the shared configuration.
func NewListenNotesClient(cfg *config.Config, logger *zerolog.Logger) *ListenNotesClient {
	return &ListenNotesClient{
		baseURL:     strings.TrimRight(cfg.ListenNotesBaseURL, "/"),
		apiKey:      cfg.ListenNotesAPIKey,
		httpClient:  &http.Client{Timeout: cfg.ListenNotesTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 2),
		retryCfg:    RetryConfig{MaxRetries: cfg.CatalogMaxRetries, BaseBackoff: cfg.CatalogBaseBackoff},
		logger:      logger,
	}
}

// IsAvailable reports whether an API key is configured.
func (c *ListenNotesClient) IsAvailable() bool { return c.apiKey != "" }

func (c *ListenNotesClient) do(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("listennotes rate limiter: %w", err)
	}

	fullURL := c.baseURL + path
	if query != nil {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return fmt.Errorf("building listennotes request: %w", err)
	}

	req.Header.Set(listenNotesAuthHeader, c.apiKey)

	start := time.Now()
	body, err := doWithRetry(ctx, c.httpClient, req, c.retryCfg, c.logger)
	observability.CatalogRequestDuration.WithLabelValues("listennotes", path).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.CatalogRequests.WithLabelValues("listennotes", path, "error").Inc()
		return err
	}

	observability.CatalogRequests.WithLabelValues("listennotes", path, "success").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding listennotes response: %w", err)
	}

	return nil
}

// Search performs a keyword search starting at offset, returning up to
// maxResults leads. offset is the number of results to skip, per Listen
// Notes' offset-based pagination.
func (c *ListenNotesClient) Search(ctx context.Context, keyword string, offset, maxResults int) ([]domain.UnifiedLead, error) {
	query := url.Values{}
	query.Set("q", keyword)
	query.Set("type", "podcast")
	query.Set("len_min", "0")
	query.Set("offset", strconv.Itoa(offset))

	if maxResults > 0 {
		query.Set("page_size", strconv.Itoa(min(maxResults, 10)))
	}

	var resp listenNotesSearchResponse
	if err := c.do(ctx, http.MethodGet, "/search", query, &resp); err != nil {
		return nil, err
	}

	leads := make([]domain.UnifiedLead, 0, len(resp.Results))
	for i, p := range resp.Results {
		if maxResults > 0 && i >= maxResults {
			break
		}

		leads = append(leads, mapListenNotes(p))
	}

	return leads, nil
}

// LookupByFeedURLs batch-resolves podcasts by RSS feed URL. Listen
// Notes accepts up to 5 feed URLs per call.
func (c *ListenNotesClient) LookupByFeedURLs(ctx context.Context, feedURLs []string) ([]domain.UnifiedLead, error) {
	if len(feedURLs) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("rsses", strings.Join(feedURLs, ","))

	var resp listenNotesBatchResponse
	if err := c.do(ctx, http.MethodGet, "/podcasts", query, &resp); err != nil {
		return nil, err
	}

	leads := make([]domain.UnifiedLead, 0, len(resp.Podcasts))
	for _, p := range resp.Podcasts {
		leads = append(leads, mapListenNotes(p))
	}

	return leads, nil
}

// LookupByItunesID resolves a single podcast by its Apple Podcasts
// (iTunes) ID via the batch /podcasts endpoint, the preferred
// cross-provider lookup key per spec.md §4.5.
func (c *ListenNotesClient) LookupByItunesID(ctx context.Context, itunesID string) (*domain.UnifiedLead, error) {
	if itunesID == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("itunes_ids", itunesID)

	var resp listenNotesBatchResponse
	if err := c.do(ctx, http.MethodGet, "/podcasts", query, &resp); err != nil {
		return nil, err
	}

	if len(resp.Podcasts) == 0 {
		return nil, nil
	}

	lead := mapListenNotes(resp.Podcasts[0])

	return &lead, nil
}

// Recommendations returns podcasts related to the given podcast ID, for
// related-mode BFS traversal.
func (c *ListenNotesClient) Recommendations(ctx context.Context, podcastID string) ([]domain.UnifiedLead, error) {
	var resp listenNotesBatchResponse
	if err := c.do(ctx, http.MethodGet, "/podcasts/"+url.PathEscape(podcastID)+"/recommendations", nil, &resp); err != nil {
		return nil, err
	}

	leads := make([]domain.UnifiedLead, 0, len(resp.Podcasts))
	for _, p := range resp.Podcasts {
		leads = append(leads, mapListenNotes(p))
	}

	return leads, nil
}
