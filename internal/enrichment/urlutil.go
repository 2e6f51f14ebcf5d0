package enrichment

import (
	"net/url"
	"strings"

	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

// nullish are the extractor outputs that mean "no value," beyond an
// empty string.
var nullish = map[string]bool{
	"unknown": true,
	"n/a":     true,
	"na":      true,
	"none":    true,
}

// cleanURL applies the extractor's post-processing contract to one raw
// URL string for one platform: strip whitespace, treat sentinel
// not-found strings as null, resolve a bare @handle, prepend a scheme
// to a schemeless domain, and reject anything that still isn't a
// well-formed absolute URL.
func cleanURL(platform, raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" || nullish[strings.ToLower(s)] {
		return nil
	}

	if resolved := social.ResolveHandle(platform, s); resolved != "" {
		s = resolved
	} else if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil
	}

	return &s
}

func cleanOptional(platform string, raw *string) *string {
	if raw == nil {
		return nil
	}

	return cleanURL(platform, *raw)
}

// postProcessHints runs cleanURL over every URL slot of a discovery
// hints record, dropping host names that are empty/whitespace.
func postProcessHints(h llm.DiscoveryHintsResult) llm.DiscoveryHintsResult {
	h.PodcastTwitterURL = cleanOptional(social.PlatformTwitter, h.PodcastTwitterURL)
	h.PodcastLinkedInURL = cleanOptional(social.PlatformLinkedIn, h.PodcastLinkedInURL)
	h.PodcastInstagramURL = cleanOptional(social.PlatformInstagram, h.PodcastInstagramURL)
	h.PodcastFacebookURL = cleanOptional(social.PlatformFacebook, h.PodcastFacebookURL)
	h.PodcastYouTubeURL = cleanOptional(social.PlatformYouTube, h.PodcastYouTubeURL)
	h.PodcastTikTokURL = cleanOptional(social.PlatformTikTok, h.PodcastTikTokURL)
	h.HostLinkedInURL = cleanOptional(social.PlatformLinkedIn, h.HostLinkedInURL)
	h.HostTwitterURL = cleanOptional(social.PlatformTwitter, h.HostTwitterURL)

	names := make([]string, 0, len(h.HostNames))

	for _, n := range h.HostNames {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	h.HostNames = names

	return h
}
