package social

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const tiktokActorID = "apidojo~tiktok-scraper"

// TikTokScraper fetches channel follower data for TikTok profile URLs.
// The underlying actor only behaves reliably with a single startUrl per
// call, so this adapter issues one actor run per URL, sequentially,
// with a courtesy delay between calls, and extracts the channel object
// embedded in the actor's video-item output.
type TikTokScraper struct {
	apify      *apifyClient
	interDelay time.Duration
	logger     *zerolog.Logger
}

func NewTikTokScraper(token string, timeout, interDelay time.Duration, logger *zerolog.Logger) *TikTokScraper {
	return &TikTokScraper{apify: newApifyClient(token, timeout, logger), interDelay: interDelay, logger: logger}
}

func (s *TikTokScraper) Platform() string { return PlatformTikTok }

func (s *TikTokScraper) FetchBatch(ctx context.Context, urls []string) (map[string]Stats, error) {
	out := make(map[string]Stats)

	if !s.apify.isAvailable() || len(urls) == 0 {
		return out, nil
	}

	requested := dedupeCanonical(PlatformTikTok, urls)

	first := true

	for u := range requested {
		if ctx.Err() != nil {
			return out, nil
		}

		if !first {
			if err := sleepCtx(ctx, s.interDelay); err != nil {
				return out, nil
			}
		}

		first = false

		stats, channelURL, ok := s.fetchOne(ctx, u)
		if ok {
			out[channelURL] = stats
		}
	}

	return out, nil
}

func (s *TikTokScraper) fetchOne(ctx context.Context, profileURL string) (Stats, string, bool) {
	input := map[string]interface{}{
		"startUrls":           []string{profileURL},
		"maxItems":            1,
		"includeSearchKeywords": false,
	}

	items, err := s.apify.runActor(ctx, tiktokActorID, input)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Str("url", profileURL).Msg("social: tiktok fetch failed")
		}

		return Stats{}, "", false
	}

	for _, raw := range items {
		var item map[string]interface{}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		channel, ok := item["channel"].(map[string]interface{})
		if !ok {
			continue
		}

		rawURL, _ := channel["url"].(string)
		canonical := Canonicalize(PlatformTikTok, rawURL)
		if canonical == "" {
			canonical = profileURL
		}

		return Stats{
			Username:       safeString(channel["username"]),
			Name:           safeString(channel["name"]),
			FollowersCount: safeInt64(channel["followers"]),
			IsVerified:     safeBool(channel["verified"]),
		}, canonical, true
	}

	return Stats{}, "", false
}
