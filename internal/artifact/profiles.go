package artifact

import (
	"fmt"
	"time"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

var profileHeader = []string{
	"source_api", "api_id", "title", "description", "image_url", "website", "language",
	"rss_feed_url", "total_episodes", "first_episode_date", "latest_episode_date",
	"publishing_frequency_days",
	"host_names", "rss_owner_name", "rss_owner_email", "primary_email",
	"podcast_twitter_url", "podcast_linkedin_url", "podcast_instagram_url",
	"podcast_facebook_url", "podcast_youtube_url", "podcast_tiktok_url",
	"podcast_other_social_url",
	"listen_score", "listen_score_global_rank", "audience_size",
	"itunes_rating_average", "itunes_rating_count",
	"spotify_rating_average", "spotify_rating_count",
	"twitter_followers", "linkedin_followers",
	"data_sources", "last_enriched_timestamp",
}

// WriteProfiles writes one row per EnrichedProfile under
// data/campaigns/<campaign_id>/enrichment_results/, per spec.md §6.
func WriteProfiles(profiles []domain.EnrichedProfile, campaignID string) (string, string, error) {
	if len(profiles) == 0 {
		return "", "", nil
	}

	now := time.Now().UTC()
	filename := fmt.Sprintf("enriched_profiles_%s.csv", timestampSuffix(now))

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, profileRow(p))
	}

	return writeCSV(campaignID, []string{"enrichment_results"}, filename, profileHeader, rows)
}

func profileRow(p domain.EnrichedProfile) []string {
	return []string{
		string(p.SourceAPI),
		p.APIID,
		cell(p.Title),
		cell(p.Description),
		cell(p.ImageURL),
		cell(p.Website),
		cell(p.Language),
		cell(p.FeedURL),
		cell(p.TotalEpisodes),
		isoTime(p.FirstEpisodeDate),
		isoTime(p.LatestEpisodeDate),
		cell(p.PublishingFrequencyDays),
		cell(p.HostNames),
		cell(p.RSSOwnerName),
		cell(p.RSSOwnerEmail),
		cell(p.PrimaryEmail),
		cell(p.Social.Twitter),
		cell(p.Social.LinkedIn),
		cell(p.Social.Instagram),
		cell(p.Social.Facebook),
		cell(p.Social.YouTube),
		cell(p.Social.TikTok),
		cell(p.Social.Other),
		cell(p.ListenScore),
		cell(p.ListenScoreGlobalRank),
		cell(p.AudienceSize),
		cell(ratingKey(p.RatingAverages, "itunes")),
		cell(ratingIntKey(p.RatingCounts, "itunes")),
		cell(ratingKey(p.RatingAverages, "spotify")),
		cell(ratingIntKey(p.RatingCounts, "spotify")),
		cell(followerCount(p.Reach, social.PlatformTwitter)),
		cell(followerCount(p.Reach, social.PlatformLinkedIn)),
		cell(p.DataSources),
		isoTimeValue(p.LastEnrichedAt),
	}
}

func followerCount(reach map[string]domain.PlatformReach, platform string) *int64 {
	if r, ok := reach[platform]; ok {
		return r.FollowerCount
	}

	return nil
}

func isoTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

func isoTimeValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}
