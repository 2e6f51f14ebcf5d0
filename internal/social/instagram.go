package social

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const instagramActorID = "apify~instagram-profile-scraper"

// InstagramScraper fetches follower data for Instagram profile URLs.
// The underlying actor takes usernames rather than URLs, so this
// adapter extracts a username per URL and maps results back by it.
type InstagramScraper struct {
	apify  *apifyClient
	logger *zerolog.Logger
}

func NewInstagramScraper(token string, timeout time.Duration, logger *zerolog.Logger) *InstagramScraper {
	return &InstagramScraper{apify: newApifyClient(token, timeout, logger), logger: logger}
}

func (s *InstagramScraper) Platform() string { return PlatformInstagram }

func (s *InstagramScraper) FetchBatch(ctx context.Context, urls []string) (map[string]Stats, error) {
	out := make(map[string]Stats)

	if !s.apify.isAvailable() || len(urls) == 0 {
		return out, nil
	}

	requested := dedupeCanonical(PlatformInstagram, urls)
	if len(requested) == 0 {
		return out, nil
	}

	usernameToURL := make(map[string]string, len(requested))
	usernames := make([]string, 0, len(requested))

	for u := range requested {
		name := UsernameFromURL(u)
		if name == "" || instagramPathSegment(name) {
			continue
		}

		usernameToURL[name] = u
		usernames = append(usernames, name)
	}

	if len(usernames) == 0 {
		return out, nil
	}

	items, err := s.apify.runActor(ctx, instagramActorID, map[string]interface{}{"usernames": usernames})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("social: instagram batch fetch failed")
		}

		return out, nil
	}

	for _, raw := range items {
		var item map[string]interface{}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		username, ok := item["username"].(string)
		if !ok {
			continue
		}

		url, ok := usernameToURL[username]
		if !ok {
			continue
		}

		out[url] = Stats{
			Username:       nonEmpty(username),
			Name:           safeString(item["fullName"]),
			FollowersCount: safeInt64(item["followersCount"]),
			FollowingCount: safeInt64(item["followsCount"]),
			IsVerified:     safeBool(item["verified"]),
		}
	}

	return out, nil
}

// instagramPathSegment reports whether segment is a non-profile path
// (a post, reel, or similar) rather than a username.
func instagramPathSegment(segment string) bool {
	switch segment {
	case "p", "reel", "tv", "explore", "accounts", "stories":
		return true
	default:
		return false
	}
}
