package enrichment

import (
	"fmt"
	"strings"
	"time"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/feed"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

// platformMaps is Phase 2's output: one canonical-URL-to-stats map per
// platform, shared read-only across every Phase 3 merge task.
type platformMaps map[string]map[string]social.Stats

// winningURL picks the URL Phase 3 uses for one platform, per spec.md
// §4.6's priority: the base lead's own URL first, then the discovery
// hint (the podcast-oriented slot over the host-oriented one for
// Twitter; LinkedIn has no podcast-oriented presence in practice, so
// the host slot is primary there, with the podcast slot as a
// last-resort fallback).
func winningURL(platform string, lead domain.UnifiedLead, hints llm.DiscoveryHintsResult) *string {
	switch platform {
	case social.PlatformTwitter:
		return firstNonNil(lead.Social.Twitter, hints.PodcastTwitterURL, hints.HostTwitterURL)
	case social.PlatformLinkedIn:
		return firstNonNil(lead.Social.LinkedIn, hints.HostLinkedInURL, hints.PodcastLinkedInURL)
	case social.PlatformInstagram:
		return firstNonNil(lead.Social.Instagram, hints.PodcastInstagramURL)
	case social.PlatformFacebook:
		return firstNonNil(lead.Social.Facebook, hints.PodcastFacebookURL)
	case social.PlatformYouTube:
		return firstNonNil(lead.Social.YouTube, hints.PodcastYouTubeURL)
	case social.PlatformTikTok:
		return firstNonNil(lead.Social.TikTok, hints.PodcastTikTokURL)
	default:
		return nil
	}
}

// plausibleHostNames filters the LLM's host-name hints down to the
// ones that plausibly belong to this podcast, per the name-matching
// gate ported from the original host-name plausibility check.
func plausibleHostNames(candidates []string, lead domain.UnifiedLead) []string {
	if len(candidates) == 0 {
		return candidates
	}

	var context strings.Builder

	if lead.Title != nil {
		context.WriteString(*lead.Title)
		context.WriteString(" ")
	}

	if lead.Description != nil {
		context.WriteString(*lead.Description)
	}

	accepted := make([]string, 0, len(candidates))

	for _, name := range candidates {
		if plausibleHostName(name, context.String()) {
			accepted = append(accepted, name)
		}
	}

	return accepted
}

func firstNonNil(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return c
		}
	}

	return nil
}

// merge builds one EnrichedProfile from a base lead, its Phase 1
// discovery hints, the Phase 2 reach-stats maps, and optional RSS data.
func merge(lead domain.UnifiedLead, hints llm.DiscoveryHintsResult, maps platformMaps, rss *feed.ParsedFeed) domain.EnrichedProfile {
	profile := domain.EnrichedProfile{
		UnifiedLead: lead.Clone(),
		HostNames:   plausibleHostNames(hints.HostNames, lead),
	}

	reach := make(map[string]domain.PlatformReach)

	for _, platform := range []string{
		social.PlatformTwitter, social.PlatformLinkedIn, social.PlatformInstagram,
		social.PlatformFacebook, social.PlatformYouTube, social.PlatformTikTok,
	} {
		winner := winningURL(platform, lead, hints)
		if winner == nil {
			continue
		}

		setSocialField(&profile.Social, platform, *winner)

		canonical := social.Canonicalize(platform, *winner)
		if canonical == "" {
			continue
		}

		stats, ok := maps[platform][canonical]
		if !ok {
			continue
		}

		reach[platform] = domain.PlatformReach{FollowerCount: bestFollowerCount(stats), Verified: stats.IsVerified}
		profile.AddDataSource(fmt.Sprintf("apify_%s", platform))
	}

	profile.Reach = reach

	profile.AddDataSource(fmt.Sprintf("search_%s", lead.SourceAPI))

	applyRSS(&profile, rss)

	if profile.RSSOwnerEmail != nil {
		profile.PrimaryEmail = profile.RSSOwnerEmail
	} else {
		profile.PrimaryEmail = lead.Email
	}

	if lead.LatestPubDateMs != nil {
		t := msToTime(*lead.LatestPubDateMs)
		profile.LatestEpisodeDate = &t
	}

	if lead.EarliestPubDateMs != nil {
		t := msToTime(*lead.EarliestPubDateMs)
		profile.FirstEpisodeDate = &t
	}

	if lead.UpdateFrequencyHrs != nil && *lead.UpdateFrequencyHrs > 0 {
		days := *lead.UpdateFrequencyHrs / 24
		profile.PublishingFrequencyDays = &days
	}

	profile.LastEnrichedAt = time.Now().UTC()

	return profile
}

// bestFollowerCount prefers a dedicated follower count, falling back to
// LinkedIn's connection count when that's all a scraper returned.
func bestFollowerCount(s social.Stats) *int64 {
	if s.FollowersCount != nil {
		return s.FollowersCount
	}

	return s.ConnectionsCount
}

func setSocialField(s *domain.SocialURLs, platform, value string) {
	switch platform {
	case social.PlatformTwitter:
		s.Twitter = &value
	case social.PlatformLinkedIn:
		s.LinkedIn = &value
	case social.PlatformInstagram:
		s.Instagram = &value
	case social.PlatformFacebook:
		s.Facebook = &value
	case social.PlatformYouTube:
		s.YouTube = &value
	case social.PlatformTikTok:
		s.TikTok = &value
	}
}

// applyRSS merges the optional RSS side-channel per spec.md §4.6:
// owner name/email, explicit flag, and category list are always taken
// from RSS when present; language and website only override the base
// lead's values when the lead lacks them.
func applyRSS(profile *domain.EnrichedProfile, rss *feed.ParsedFeed) {
	if rss == nil {
		return
	}

	profile.RSSOwnerName = rss.OwnerName
	profile.RSSOwnerEmail = rss.OwnerEmail
	profile.RSSExplicit = rss.Explicit
	profile.RSSCategories = rss.Categories

	if profile.Language == nil && rss.Language != nil {
		profile.Language = rss.Language
	}

	if profile.Website == nil && rss.Link != nil {
		profile.Website = rss.Link
	}

	profile.AddDataSource("rss")
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
