package social

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const facebookActorID = "apify~facebook-pages-scraper"

// FacebookScraper fetches follower counts for Facebook page URLs in one
// batched actor run whose input is a startUrls list, the same shape as
// the YouTube adapter.
type FacebookScraper struct {
	apify  *apifyClient
	logger *zerolog.Logger
}

func NewFacebookScraper(token string, timeout time.Duration, logger *zerolog.Logger) *FacebookScraper {
	return &FacebookScraper{apify: newApifyClient(token, timeout, logger), logger: logger}
}

func (s *FacebookScraper) Platform() string { return PlatformFacebook }

func (s *FacebookScraper) FetchBatch(ctx context.Context, urls []string) (map[string]Stats, error) {
	out := make(map[string]Stats)

	if !s.apify.isAvailable() || len(urls) == 0 {
		return out, nil
	}

	requested := dedupeCanonical(PlatformFacebook, urls)
	if len(requested) == 0 {
		return out, nil
	}

	startURLs := make([]string, 0, len(requested))
	for u := range requested {
		startURLs = append(startURLs, u)
	}

	items, err := s.apify.runActor(ctx, facebookActorID, map[string]interface{}{"startUrls": startURLs})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("social: facebook batch fetch failed")
		}

		return out, nil
	}

	for _, raw := range items {
		var item map[string]interface{}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		pageURL, ok := firstString(item, "pageUrl", "url")
		if !ok {
			continue
		}

		canonical := Canonicalize(PlatformFacebook, pageURL)
		if !requested[canonical] {
			continue
		}

		out[canonical] = Stats{
			Name:           safeString(item["title"]),
			FollowersCount: safeInt64(firstNumeric(item, "followers", "likes")),
			IsVerified:     safeBool(item["verified"]),
		}
	}

	return out, nil
}
