// Package social wraps the six platform scrapers the Enrichment
// orchestrator's Phase 2 batch step calls: Twitter/X, LinkedIn,
// Instagram, Facebook, YouTube, and TikTok. Every platform sits behind
// the same Scraper interface (batch URLs in, a map of canonical URL to
// reach stats out); quirks specific to a single provider (Twitter's
// minimum batch size, TikTok's one-call-per-URL behavior) are
// encapsulated inside that platform's adapter so orchestrator code
// never sees them.
package social

import "context"

// Platform name tags, used both as the Scraper registry key and as the
// key into domain.EnrichedProfile.Reach.
const (
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
)

// Stats is the reach data a platform scraper extracts for one profile
// URL. Not every field applies to every platform; unused fields stay
// nil.
type Stats struct {
	Username         *string
	Name             *string
	FollowersCount   *int64
	FollowingCount   *int64
	ConnectionsCount *int64
	IsVerified       *bool
}

// Scraper fetches reach stats for a batch of profile URLs on one
// platform. The returned map is keyed by the canonicalized form of the
// input URLs (see Canonicalize); a URL missing from the map means the
// provider had no data for it, not an error.
type Scraper interface {
	Platform() string
	FetchBatch(ctx context.Context, urls []string) (map[string]Stats, error)
}
