package social

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacebookScraper_FetchBatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"pageUrl":"https://facebook.com/someshow","title":"Some Show","likes":8000}]`))
	}))
	defer ts.Close()

	s := NewFacebookScraper("token", 5*time.Second, nil)
	s.apify.baseURL = ts.URL

	out, err := s.FetchBatch(ctx(), []string{"https://www.facebook.com/someshow/"})
	require.NoError(t, err)
	require.Contains(t, out, "https://facebook.com/someshow")
	assert.Equal(t, int64(8000), *out["https://facebook.com/someshow"].FollowersCount)
}
