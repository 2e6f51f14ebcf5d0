package catalog

import (
	"strconv"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

func mapListenNotes(p listenNotesPodcast) domain.UnifiedLead {
	lead := domain.UnifiedLead{
		SourceAPI: domain.SourceListenNotes,
		APIID:     p.ID,
	}

	if p.RSS != "" {
		lead.FeedURL = strPtr(p.RSS)
	}

	if p.ITunesID != 0 {
		s := strconv.FormatInt(p.ITunesID, 10)
		lead.ITunesID = &s
	}

	if p.Website != "" {
		lead.Website = strPtr(p.Website)
	}

	if p.Title != "" {
		lead.Title = strPtr(p.Title)
	}

	if p.Description != "" {
		lead.Description = strPtr(p.Description)
	}

	if p.Image != "" {
		lead.ImageURL = strPtr(p.Image)
	}

	if p.Language != "" {
		lead.Language = strPtr(p.Language)
	}

	if p.TotalEpisodes > 0 {
		n := p.TotalEpisodes
		lead.TotalEpisodes = &n
	}

	if p.LatestPubDateMs > 0 {
		v := p.LatestPubDateMs
		lead.LatestPubDateMs = &v
	}

	if p.EarliestPubDateMs > 0 {
		v := p.EarliestPubDateMs
		lead.EarliestPubDateMs = &v
	}

	if p.UpdateFrequencyHrs > 0 {
		v := p.UpdateFrequencyHrs
		lead.UpdateFrequencyHrs = &v
	}

	if p.ListenScore > 0 {
		v := p.ListenScore
		lead.ListenScore = &v
	}

	if p.ListenScoreRank > 0 {
		v := p.ListenScoreRank
		lead.ListenScoreGlobalRank = &v
	}

	if p.Email != "" {
		lead.Email = strPtr(p.Email)
	}

	return lead
}

func strPtr(s string) *string { return &s }
