// Package search implements the multi-source Search & Unification engine:
// topic-mode keyword fan-out, related-mode BFS traversal, cross-provider
// enrichment lookups, and exact feed-URL deduplication with field-level
// merge.
package search

import (
	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

// DedupeAndMerge groups records by feed URL and merges each group into a
// single record. Within a group, the record whose SourceAPI equals
// prioritySource becomes the base; every other record in the group
// contributes a field only when the base's value for that field is nil.
// Records without a feed URL pass through unchanged, one per output slot.
// The operation is deterministic given a fixed input order and idempotent:
// running it again on its own output is a no-op.
func DedupeAndMerge(records []domain.UnifiedLead, prioritySource domain.SourceAPI, logger *zerolog.Logger) []domain.UnifiedLead {
	if len(records) == 0 {
		return nil
	}

	type group struct {
		key     string
		records []domain.UnifiedLead
	}

	groups := make(map[string]*group)
	order := make([]*group, 0, len(records))

	var passthrough []domain.UnifiedLead

	skipped := 0

	for _, r := range records {
		if r.FeedURL == nil || *r.FeedURL == "" {
			passthrough = append(passthrough, r)
			skipped++

			continue
		}

		key := *r.FeedURL

		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
			order = append(order, g)
		}

		g.records = append(g.records, r)
	}

	final := make([]domain.UnifiedLead, 0, len(order)+len(passthrough))

	merged := 0

	for _, g := range order {
		if len(g.records) == 1 {
			final = append(final, g.records[0])
			continue
		}

		merged += len(g.records) - 1
		final = append(final, mergeGroup(g.records, prioritySource))
	}

	final = append(final, passthrough...)

	if logger != nil {
		logger.Info().
			Int("input", len(records)).
			Int("merged_duplicates", merged).
			Int("skipped_no_key", skipped).
			Int("output", len(final)).
			Msg("search: deduplication complete")
	}

	return final
}

// mergeGroup merges a group of records sharing a feed URL. The base record
// is the one produced by prioritySource, or the first record in the group
// if none match. Every field the base leaves nil/empty is filled in, in
// group order, from the first record that has a non-nil value.
func mergeGroup(group []domain.UnifiedLead, prioritySource domain.SourceAPI) domain.UnifiedLead {
	baseIdx := 0

	for i, r := range group {
		if r.SourceAPI == prioritySource {
			baseIdx = i
			break
		}
	}

	merged := group[baseIdx].Clone()

	for i, r := range group {
		if i == baseIdx {
			continue
		}

		mergeLeadFields(&merged, r)
	}

	return merged
}

// mergeLeadFields copies every nil/zero field of dst from src, leaving any
// non-nil dst field untouched. Merging is conservative: non-null values are
// never overwritten.
func mergeLeadFields(dst *domain.UnifiedLead, src domain.UnifiedLead) {
	if dst.ITunesID == nil {
		dst.ITunesID = src.ITunesID
	}

	if dst.SpotifyID == nil {
		dst.SpotifyID = src.SpotifyID
	}

	if dst.Website == nil {
		dst.Website = src.Website
	}

	if dst.Title == nil {
		dst.Title = src.Title
	}

	if dst.Description == nil {
		dst.Description = src.Description
	}

	if dst.ImageURL == nil {
		dst.ImageURL = src.ImageURL
	}

	if dst.Language == nil {
		dst.Language = src.Language
	}

	if dst.TotalEpisodes == nil {
		dst.TotalEpisodes = src.TotalEpisodes
	}

	if dst.LatestPubDateMs == nil {
		dst.LatestPubDateMs = src.LatestPubDateMs
	}

	if dst.EarliestPubDateMs == nil {
		dst.EarliestPubDateMs = src.EarliestPubDateMs
	}

	if dst.UpdateFrequencyHrs == nil {
		dst.UpdateFrequencyHrs = src.UpdateFrequencyHrs
	}

	if dst.ListenScore == nil {
		dst.ListenScore = src.ListenScore
	}

	if dst.ListenScoreGlobalRank == nil {
		dst.ListenScoreGlobalRank = src.ListenScoreGlobalRank
	}

	if dst.AudienceSize == nil {
		dst.AudienceSize = src.AudienceSize
	}

	if dst.RatingAverages == nil {
		dst.RatingAverages = src.RatingAverages
	}

	if dst.RatingCounts == nil {
		dst.RatingCounts = src.RatingCounts
	}

	if dst.Email == nil {
		dst.Email = src.Email
	}

	mergeSocialURLs(&dst.Social, src.Social)
}

func mergeSocialURLs(dst *domain.SocialURLs, src domain.SocialURLs) {
	if dst.Twitter == nil {
		dst.Twitter = src.Twitter
	}

	if dst.LinkedIn == nil {
		dst.LinkedIn = src.LinkedIn
	}

	if dst.Instagram == nil {
		dst.Instagram = src.Instagram
	}

	if dst.Facebook == nil {
		dst.Facebook = src.Facebook
	}

	if dst.YouTube == nil {
		dst.YouTube = src.YouTube
	}

	if dst.TikTok == nil {
		dst.TikTok = src.TikTok
	}

	if dst.Other == nil {
		dst.Other = src.Other
	}
}
