package artifact

import (
	"fmt"
	"time"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

var leadHeader = []string{
	"source_api", "api_id", "title", "description", "rss_url", "website", "email",
	"itunes_id", "spotify_id", "latest_pub_date_ms", "earliest_pub_date_ms",
	"total_episodes", "update_frequency_hours", "listen_score", "listen_score_global_rank",
	"audience_size", "itunes_rating_average", "itunes_rating_count",
	"spotify_rating_average", "spotify_rating_count",
	"image_url", "language",
	"twitter_url", "linkedin_url", "instagram_url", "facebook_url", "youtube_url",
	"tiktok_url", "other_social_url",
}

// WriteLeads writes one row per UnifiedLead under
// data/campaigns/<campaign_id>/<searchType>/, per spec.md §6, and
// returns the filesystem path and web-relative path.
func WriteLeads(leads []domain.UnifiedLead, campaignID, searchType string) (string, string, error) {
	if len(leads) == 0 {
		return "", "", nil
	}

	now := time.Now().UTC()
	filename := fmt.Sprintf("search_output_%s_%s.csv", sanitizeCampaignID(campaignID), timestampSuffix(now))

	rows := make([][]string, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, leadRow(lead))
	}

	return writeCSV(campaignID, []string{searchType}, filename, leadHeader, rows)
}

func leadRow(l domain.UnifiedLead) []string {
	return []string{
		string(l.SourceAPI),
		l.APIID,
		cell(l.Title),
		cell(l.Description),
		cell(l.FeedURL),
		cell(l.Website),
		cell(l.Email),
		cell(l.ITunesID),
		cell(l.SpotifyID),
		msToISO8601(l.LatestPubDateMs),
		msToISO8601(l.EarliestPubDateMs),
		cell(l.TotalEpisodes),
		cell(l.UpdateFrequencyHrs),
		cell(l.ListenScore),
		cell(l.ListenScoreGlobalRank),
		cell(l.AudienceSize),
		cell(ratingKey(l.RatingAverages, "itunes")),
		cell(ratingIntKey(l.RatingCounts, "itunes")),
		cell(ratingKey(l.RatingAverages, "spotify")),
		cell(ratingIntKey(l.RatingCounts, "spotify")),
		cell(l.ImageURL),
		cell(l.Language),
		cell(l.Social.Twitter),
		cell(l.Social.LinkedIn),
		cell(l.Social.Instagram),
		cell(l.Social.Facebook),
		cell(l.Social.YouTube),
		cell(l.Social.TikTok),
		cell(l.Social.Other),
	}
}

func ratingKey(m map[string]float64, key string) *float64 {
	if v, ok := m[key]; ok {
		return &v
	}

	return nil
}

func ratingIntKey(m map[string]int, key string) *int {
	if v, ok := m[key]; ok {
		return &v
	}

	return nil
}
