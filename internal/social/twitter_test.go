package social

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitterScraper_PadsShortBatchAndFiltersSentinels(t *testing.T) {
	var captured map[string]interface{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[
			{"url":"https://twitter.com/someshow","username":"someshow","followers_count":1200,"isVerified":false},
			{"url":"https://twitter.com/nasa","username":"nasa","followers_count":99999999}
		]`))
	}))
	defer ts.Close()

	s := NewTwitterScraper("token", 5*time.Second, 5, nil)
	s.apify.baseURL = ts.URL

	out, err := s.FetchBatch(ctx(), []string{"https://twitter.com/someshow"})
	require.NoError(t, err)

	startURLs, ok := captured["startUrls"].([]interface{})
	require.True(t, ok)
	assert.Len(t, startURLs, 5, "batch should be padded to the minimum size")

	require.Contains(t, out, "https://twitter.com/someshow")
	assert.Equal(t, int64(1200), *out["https://twitter.com/someshow"].FollowersCount)

	assert.NotContains(t, out, "https://twitter.com/nasa", "sentinel padding result must not leak into output")
}

func TestTwitterScraper_EmptyInput(t *testing.T) {
	s := NewTwitterScraper("token", time.Second, 5, nil)

	out, err := s.FetchBatch(ctx(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTwitterScraper_NoTokenIsNoop(t *testing.T) {
	s := NewTwitterScraper("", time.Second, 5, nil)

	out, err := s.FetchBatch(ctx(), []string{"https://twitter.com/someshow"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
