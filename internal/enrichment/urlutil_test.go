package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

func TestCleanURL(t *testing.T) {
	cases := []struct {
		name     string
		platform string
		raw      string
		want     string // "" means nil
	}{
		{"well formed", social.PlatformTwitter, "https://twitter.com/acme", "https://twitter.com/acme"},
		{"schemeless", social.PlatformLinkedIn, "linkedin.com/company/acme", "https://linkedin.com/company/acme"},
		{"unknown sentinel", social.PlatformTwitter, "unknown", ""},
		{"na sentinel", social.PlatformFacebook, "N/A", ""},
		{"empty", social.PlatformYouTube, "   ", ""},
		{"bare handle twitter", social.PlatformTwitter, "@acmepod", "https://twitter.com/acmepod"},
		{"bare handle tiktok", social.PlatformTikTok, "@acmepod", "https://www.tiktok.com/@acmepod"},
		{"malformed", social.PlatformInstagram, "not a url at all!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cleanURL(tc.platform, tc.raw)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}

			if assert.NotNil(t, got) {
				assert.Equal(t, tc.want, *got)
			}
		})
	}
}

func TestPostProcessHints_DropsBlankHostNames(t *testing.T) {
	twitter := "unknown"
	h := postProcessHints(mkHints(&twitter, []string{"  ", "Jane Doe", ""}))
	assert.Nil(t, h.PodcastTwitterURL)
	assert.Equal(t, []string{"Jane Doe"}, h.HostNames)
}
