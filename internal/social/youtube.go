package social

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const youtubeActorID = "streamers~youtube-channel-scraper"

// YouTubeScraper fetches subscriber counts for YouTube channel URLs,
// again via the startUrls-batch shape.
type YouTubeScraper struct {
	apify  *apifyClient
	logger *zerolog.Logger
}

func NewYouTubeScraper(token string, timeout time.Duration, logger *zerolog.Logger) *YouTubeScraper {
	return &YouTubeScraper{apify: newApifyClient(token, timeout, logger), logger: logger}
}

func (s *YouTubeScraper) Platform() string { return PlatformYouTube }

func (s *YouTubeScraper) FetchBatch(ctx context.Context, urls []string) (map[string]Stats, error) {
	out := make(map[string]Stats)

	if !s.apify.isAvailable() || len(urls) == 0 {
		return out, nil
	}

	requested := dedupeCanonical(PlatformYouTube, urls)
	if len(requested) == 0 {
		return out, nil
	}

	startURLs := make([]string, 0, len(requested))
	for u := range requested {
		startURLs = append(startURLs, u)
	}

	items, err := s.apify.runActor(ctx, youtubeActorID, map[string]interface{}{"startUrls": startURLs})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("social: youtube batch fetch failed")
		}

		return out, nil
	}

	for _, raw := range items {
		var item map[string]interface{}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		channelURL, ok := firstString(item, "channelUrl", "url")
		if !ok {
			continue
		}

		canonical := Canonicalize(PlatformYouTube, channelURL)
		if !requested[canonical] {
			continue
		}

		out[canonical] = Stats{
			Name:           safeString(item["channelName"]),
			FollowersCount: safeInt64(firstNumeric(item, "subscriberCount", "numberOfSubscribers")),
			IsVerified:     safeBool(item["verified"]),
		}
	}

	return out, nil
}
