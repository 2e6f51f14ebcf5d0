// Package enrichment implements the Enrichment orchestrator: a
// three-phase pipeline turning UnifiedLeads into EnrichedProfiles.
// Phase 1 discovers missing social URLs and host names per lead
// (concurrent), Phase 2 batches the discovered URLs through the
// platform social scrapers across all leads (a hard barrier between
// phases), and Phase 3 merges everything into the output profile
// (concurrent again).
package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

// hintTarget describes one of the eight URL slots Phase 1 fills: how to
// read a carried-forward value off the base lead, and the grounded
// search query template to use when the lead doesn't already have one.
type hintTarget struct {
	key      string
	platform string
	query    string
	baseVal  func(domain.UnifiedLead) *string
	setHint  func(*llm.DiscoveryHintsResult, *string)
}

func hintTargets(title string) []hintTarget {
	return []hintTarget{
		{
			key: "podcast_twitter", platform: social.PlatformTwitter,
			query:   fmt.Sprintf("podcast Twitter URL for %s", title),
			baseVal: func(l domain.UnifiedLead) *string { return l.Social.Twitter },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.PodcastTwitterURL = v },
		},
		{
			key: "podcast_linkedin", platform: social.PlatformLinkedIn,
			query:   fmt.Sprintf("podcast LinkedIn URL for %s", title),
			baseVal: func(l domain.UnifiedLead) *string { return l.Social.LinkedIn },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.PodcastLinkedInURL = v },
		},
		{
			key: "podcast_instagram", platform: social.PlatformInstagram,
			query:   fmt.Sprintf("podcast Instagram URL for %s", title),
			baseVal: func(l domain.UnifiedLead) *string { return l.Social.Instagram },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.PodcastInstagramURL = v },
		},
		{
			key: "podcast_facebook", platform: social.PlatformFacebook,
			query:   fmt.Sprintf("podcast Facebook page URL for %s", title),
			baseVal: func(l domain.UnifiedLead) *string { return l.Social.Facebook },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.PodcastFacebookURL = v },
		},
		{
			key: "podcast_youtube", platform: social.PlatformYouTube,
			query:   fmt.Sprintf("podcast YouTube channel URL for %s", title),
			baseVal: func(l domain.UnifiedLead) *string { return l.Social.YouTube },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.PodcastYouTubeURL = v },
		},
		{
			key: "podcast_tiktok", platform: social.PlatformTikTok,
			query:   fmt.Sprintf("podcast TikTok URL for %s", title),
			baseVal: func(l domain.UnifiedLead) *string { return l.Social.TikTok },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.PodcastTikTokURL = v },
		},
		{
			key: "host_linkedin", platform: social.PlatformLinkedIn,
			query:   fmt.Sprintf("host LinkedIn profile URL for %s podcast host", title),
			baseVal: func(domain.UnifiedLead) *string { return nil },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.HostLinkedInURL = v },
		},
		{
			key: "host_twitter", platform: social.PlatformTwitter,
			query:   fmt.Sprintf("host Twitter profile URL for %s podcast host", title),
			baseVal: func(domain.UnifiedLead) *string { return nil },
			setHint: func(h *llm.DiscoveryHintsResult, v *string) { h.HostTwitterURL = v },
		},
	}
}

const hostNamesQueryFmt = "names of the hosts of the podcast %s"

// discover runs Phase 1 for a single lead: carry forward any URL slot
// the base lead already has, probe the rest with targeted grounded
// searches, then extract the combined probe context against the fixed
// schema. Probing failures degrade to "no hint for this slot" rather
// than failing the lead.
func discover(ctx context.Context, lead domain.UnifiedLead, llmClient llm.Client, probeDelay time.Duration, logger *zerolog.Logger) llm.DiscoveryHintsResult {
	title := leadTitle(lead)

	var result llm.DiscoveryHintsResult

	var probeContext strings.Builder

	targets := hintTargets(title)

	for i, t := range targets {
		if base := t.baseVal(lead); base != nil && *base != "" {
			t.setHint(&result, base)
			continue
		}

		if i > 0 {
			sleepCtx(ctx, probeDelay)
		}

		answer, err := llmClient.GroundedSearch(ctx, t.query)
		if err != nil {
			if logger != nil {
				logger.Warn().Err(err).Str("lead", lead.APIID).Str("target", t.key).Msg("enrichment: grounded probe failed")
			}

			continue
		}

		fmt.Fprintf(&probeContext, "Q: %s\nA: %s\n\n", t.query, answer)
	}

	sleepCtx(ctx, probeDelay)

	hostQuery := fmt.Sprintf(hostNamesQueryFmt, title)

	if answer, err := llmClient.GroundedSearch(ctx, hostQuery); err == nil {
		fmt.Fprintf(&probeContext, "Q: %s\nA: %s\n\n", hostQuery, answer)
	} else if logger != nil {
		logger.Warn().Err(err).Str("lead", lead.APIID).Msg("enrichment: host-name probe failed")
	}

	if probeContext.Len() == 0 {
		return result
	}

	extracted, err := llmClient.ExtractDiscoveryHints(ctx, probeContext.String())
	if err != nil {
		if logger != nil {
			logger.Warn().Err(err).Str("lead", lead.APIID).Msg("enrichment: discovery hints extraction failed")
		}

		return result
	}

	mergeExtracted(&result, extracted)

	return postProcessHints(result)
}

// mergeExtracted fills dst fields that are still nil (i.e. not already
// carried forward from the base lead) with the extractor's output.
func mergeExtracted(dst *llm.DiscoveryHintsResult, extracted llm.DiscoveryHintsResult) {
	if len(dst.HostNames) == 0 {
		dst.HostNames = extracted.HostNames
	}

	pairs := []struct {
		dst **string
		src *string
	}{
		{&dst.PodcastTwitterURL, extracted.PodcastTwitterURL},
		{&dst.PodcastLinkedInURL, extracted.PodcastLinkedInURL},
		{&dst.PodcastInstagramURL, extracted.PodcastInstagramURL},
		{&dst.PodcastFacebookURL, extracted.PodcastFacebookURL},
		{&dst.PodcastYouTubeURL, extracted.PodcastYouTubeURL},
		{&dst.PodcastTikTokURL, extracted.PodcastTikTokURL},
		{&dst.HostLinkedInURL, extracted.HostLinkedInURL},
		{&dst.HostTwitterURL, extracted.HostTwitterURL},
	}

	for _, p := range pairs {
		if *p.dst == nil {
			*p.dst = p.src
		}
	}
}

func leadTitle(l domain.UnifiedLead) string {
	if l.Title != nil && *l.Title != "" {
		return *l.Title
	}

	return l.APIID
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
