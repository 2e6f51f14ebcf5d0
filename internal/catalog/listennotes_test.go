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

const listenNotesSearchBody = `{
	"results": [
		{"id": "123", "rss": "https://example.com/feed.xml", "itunes_id": 456, "title_original": "Example Show", "total_episodes": 42, "email": "host@example.com"}
	]
}`

func newTestListenNotesClient(baseURL string) *ListenNotesClient {
	return &ListenNotesClient{
		baseURL:     baseURL,
		apiKey:      "test-key",
		httpClient:  http.DefaultClient,
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		retryCfg:    RetryConfig{MaxRetries: 2, BaseBackoff: time.Millisecond},
	}
}

func TestListenNotesClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get(listenNotesAuthHeader))
		assert.Equal(t, "widget", r.URL.Query().Get("q"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(listenNotesSearchBody))
	}))
	defer ts.Close()

	c := newTestListenNotesClient(ts.URL)

	leads, err := c.Search(context.Background(), "widget", 0, 10)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "https://example.com/feed.xml", *leads[0].FeedURL)
	assert.Equal(t, "456", *leads[0].ITunesID)
	assert.Equal(t, "host@example.com", *leads[0].Email)
}

func TestListenNotesClient_Search_PassesOffset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("offset"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(listenNotesSearchBody))
	}))
	defer ts.Close()

	c := newTestListenNotesClient(ts.URL)

	_, err := c.Search(context.Background(), "widget", 20, 10)
	require.NoError(t, err)
}

func TestListenNotesClient_LookupByItunesID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/podcasts", r.URL.Path)
		assert.Equal(t, "456", r.URL.Query().Get("itunes_ids"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"podcasts": [{"id": "1", "rss": "https://a.com/feed1.xml", "itunes_id": 456}]}`))
	}))
	defer ts.Close()

	c := newTestListenNotesClient(ts.URL)

	lead, err := c.LookupByItunesID(context.Background(), "456")
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "456", *lead.ITunesID)
}

func TestListenNotesClient_LookupByItunesID_EmptyInput(t *testing.T) {
	c := newTestListenNotesClient("http://unused.invalid")

	lead, err := c.LookupByItunesID(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, lead)
}

func TestListenNotesClient_LookupByFeedURLs_EmptyInput(t *testing.T) {
	c := newTestListenNotesClient("http://unused.invalid")

	leads, err := c.LookupByFeedURLs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, leads)
}

func TestListenNotesClient_LookupByFeedURLs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/podcasts", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("rsses"), "feed1.xml")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"podcasts": [{"id": "1", "rss": "https://a.com/feed1.xml"}]}`))
	}))
	defer ts.Close()

	c := newTestListenNotesClient(ts.URL)

	leads, err := c.LookupByFeedURLs(context.Background(), []string{"https://a.com/feed1.xml"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
}

func TestListenNotesClient_IsAvailable(t *testing.T) {
	c := &ListenNotesClient{apiKey: ""}
	assert.False(t, c.IsAvailable())

	c.apiKey = "key"
	assert.True(t, c.IsAvailable())
}
