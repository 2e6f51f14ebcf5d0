package social

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstagramScraper_FetchBatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"username":"someshow","followersCount":3000,"followsCount":10,"verified":true}]`))
	}))
	defer ts.Close()

	s := NewInstagramScraper("token", 5*time.Second, nil)
	s.apify.baseURL = ts.URL

	out, err := s.FetchBatch(ctx(), []string{"https://instagram.com/someshow"})
	require.NoError(t, err)
	require.Contains(t, out, "https://instagram.com/someshow")
	assert.Equal(t, int64(3000), *out["https://instagram.com/someshow"].FollowersCount)
	assert.True(t, *out["https://instagram.com/someshow"].IsVerified)
}

func TestInstagramScraper_IgnoresNonProfilePaths(t *testing.T) {
	s := NewInstagramScraper("token", time.Second, nil)

	out, err := s.FetchBatch(ctx(), []string{"https://instagram.com/p/abc123"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
