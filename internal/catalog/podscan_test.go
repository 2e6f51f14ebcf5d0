package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestPodscanClient(baseURL string) *PodscanClient {
	return &PodscanClient{
		baseURL:     baseURL,
		apiKey:      "test-key",
		httpClient:  http.DefaultClient,
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		retryCfg:    RetryConfig{MaxRetries: 2, BaseBackoff: time.Millisecond},
	}
}

func TestPodscanClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/podcasts/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get(podscanAuthHeader))
		assert.Equal(t, "widget", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"podcasts": [
				{"podcast_id": "abc", "rss_url": "https://example.com/feed.xml", "podcast_name": "Example", "episode_count": 10, "last_posted_at": "2024-01-15T00:00:00Z"}
			]
		}`))
	}))
	defer ts.Close()

	c := newTestPodscanClient(ts.URL)

	leads, err := c.Search(context.Background(), "widget", 1, 10)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "https://example.com/feed.xml", *leads[0].FeedURL)
	assert.Equal(t, "Example", *leads[0].Title)
	require.NotNil(t, leads[0].LatestPubDateMs)
}

func TestPodscanClient_Search_PassesPageNumber(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"podcasts": []}`))
	}))
	defer ts.Close()

	c := newTestPodscanClient(ts.URL)

	_, err := c.Search(context.Background(), "widget", 3, 10)
	require.NoError(t, err)
}

func TestPodscanClient_LookupByItunesID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/podcasts/lookup", r.URL.Path)
		assert.Equal(t, "789", r.URL.Query().Get("itunes_id"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"podcasts": [{"podcast_id": "abc", "rss_url": "https://a.com/feed.xml", "podcast_itunes_id": "789"}]}`))
	}))
	defer ts.Close()

	c := newTestPodscanClient(ts.URL)

	lead, err := c.LookupByItunesID(context.Background(), "789")
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "789", *lead.ITunesID)
}

func TestPodscanClient_LookupByItunesID_EmptyInput(t *testing.T) {
	c := newTestPodscanClient("http://unused.invalid")

	lead, err := c.LookupByItunesID(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, lead)
}

func TestPodscanClient_LookupByFeedURL_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"podcasts": []}`))
	}))
	defer ts.Close()

	c := newTestPodscanClient(ts.URL)

	lead, err := c.LookupByFeedURL(context.Background(), "https://nowhere.com/feed.xml")
	require.NoError(t, err)
	assert.Nil(t, lead)
}

func TestPodscanClient_LookupByFeedURL_Found(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/podcasts/lookup", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"podcasts": [{"podcast_id": "abc", "rss_url": "https://a.com/feed.xml"}]}`))
	}))
	defer ts.Close()

	c := newTestPodscanClient(ts.URL)

	lead, err := c.LookupByFeedURL(context.Background(), "https://a.com/feed.xml")
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "https://a.com/feed.xml", *lead.FeedURL)
}

func TestPodscanClient_IsAvailable(t *testing.T) {
	c := &PodscanClient{apiKey: ""}
	assert.False(t, c.IsAvailable())

	c.apiKey = "key"
	assert.True(t, c.IsAvailable())
}
