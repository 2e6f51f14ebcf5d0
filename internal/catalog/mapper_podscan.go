package catalog

import (
	"github.com/araddon/dateparse"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

func mapPodscan(p podscanPodcast) domain.UnifiedLead {
	lead := domain.UnifiedLead{
		SourceAPI: domain.SourcePodscan,
		APIID:     p.PodcastID,
	}

	if p.RSSURL != "" {
		lead.FeedURL = strPtr(p.RSSURL)
	}

	if p.PodcastURL != "" {
		lead.Website = strPtr(p.PodcastURL)
	}

	if p.PodcastName != "" {
		lead.Title = strPtr(p.PodcastName)
	}

	if p.PodcastDescription != "" {
		lead.Description = strPtr(p.PodcastDescription)
	}

	if p.PodcastImage != "" {
		lead.ImageURL = strPtr(p.PodcastImage)
	}

	if p.PodcastItunesID != "" {
		lead.ITunesID = strPtr(p.PodcastItunesID)
	}

	if p.EpisodeCount > 0 {
		n := p.EpisodeCount
		lead.TotalEpisodes = &n
	}

	if p.ReachAudienceSize > 0 {
		n := p.ReachAudienceSize
		lead.AudienceSize = &n
	}

	if p.LastPostedAt != "" {
		if t, err := dateparse.ParseAny(p.LastPostedAt); err == nil {
			ms := t.UnixMilli()
			lead.LatestPubDateMs = &ms
		}
	}

	if p.RatingItunes > 0 || p.RatingCountItunes > 0 {
		lead.RatingAverages = map[string]float64{"itunes": p.RatingItunes}
		lead.RatingCounts = map[string]int{"itunes": p.RatingCountItunes}
	}

	return lead
}
