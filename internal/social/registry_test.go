package social

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

func TestNewRegistry_CoversAllSixPlatforms(t *testing.T) {
	r := NewRegistry(&config.Config{ApifyAPIKey: "token", TwitterMinBatchSize: 5}, nil)

	for _, platform := range []string{
		PlatformTwitter, PlatformLinkedIn, PlatformInstagram,
		PlatformFacebook, PlatformYouTube, PlatformTikTok,
	} {
		s, ok := r[platform]
		assert.True(t, ok, "missing scraper for %s", platform)
		assert.Equal(t, platform, s.Platform())
	}
}
