package social

import (
	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

// Registry maps a platform tag to its scraper.
type Registry map[string]Scraper

// NewRegistry builds every platform scraper from shared configuration.
// A missing ApifyAPIKey still yields a full registry; each scraper's
// FetchBatch degrades to a no-op (empty map, nil error) when its
// underlying apifyClient reports unavailable, so callers never need to
// special-case a disabled provider.
func NewRegistry(cfg *config.Config, logger *zerolog.Logger) Registry {
	timeout := cfg.SocialScraperTimeout

	return Registry{
		PlatformTwitter:   NewTwitterScraper(cfg.ApifyAPIKey, timeout, cfg.TwitterMinBatchSize, logger),
		PlatformLinkedIn:  NewLinkedInScraper(cfg.ApifyAPIKey, timeout, logger),
		PlatformInstagram: NewInstagramScraper(cfg.ApifyAPIKey, timeout, logger),
		PlatformFacebook:  NewFacebookScraper(cfg.ApifyAPIKey, timeout, logger),
		PlatformYouTube:   NewYouTubeScraper(cfg.ApifyAPIKey, timeout, logger),
		PlatformTikTok:    NewTikTokScraper(cfg.ApifyAPIKey, timeout, cfg.TikTokInterCallDelay, logger),
	}
}
