package social

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const linkedinActorID = "supreme_coder~linkedin-profile-scraper"

// LinkedInScraper fetches headline/connection-count data for LinkedIn
// profile URLs in a single batched actor run.
type LinkedInScraper struct {
	apify  *apifyClient
	logger *zerolog.Logger
}

func NewLinkedInScraper(token string, timeout time.Duration, logger *zerolog.Logger) *LinkedInScraper {
	return &LinkedInScraper{apify: newApifyClient(token, timeout, logger), logger: logger}
}

func (s *LinkedInScraper) Platform() string { return PlatformLinkedIn }

func (s *LinkedInScraper) FetchBatch(ctx context.Context, urls []string) (map[string]Stats, error) {
	out := make(map[string]Stats)

	if !s.apify.isAvailable() || len(urls) == 0 {
		return out, nil
	}

	requested := dedupeCanonical(PlatformLinkedIn, urls)
	if len(requested) == 0 {
		return out, nil
	}

	runInputURLs := make([]map[string]string, 0, len(requested))
	for u := range requested {
		runInputURLs = append(runInputURLs, map[string]string{"url": u, "method": "GET"})
	}

	input := map[string]interface{}{
		"findContacts":  false,
		"scrapeCompany": false,
		"urls":          runInputURLs,
	}

	items, err := s.apify.runActor(ctx, linkedinActorID, input)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("social: linkedin batch fetch failed")
		}

		return out, nil
	}

	for _, raw := range items {
		var item map[string]interface{}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		inputURL, ok := item["inputUrl"].(string)
		if !ok || inputURL == "" {
			continue
		}

		canonical := Canonicalize(PlatformLinkedIn, inputURL)
		if !requested[canonical] {
			continue
		}

		out[canonical] = Stats{
			Name:             safeString(item["name"]),
			ConnectionsCount: safeInt64(item["connectionsCount"]),
			FollowersCount:   safeInt64(item["followersCount"]),
		}
	}

	return out, nil
}
