package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/social"
)

func TestWinningURL_BaseLeadBeatsHints(t *testing.T) {
	base := "https://twitter.com/base"
	hint := "https://twitter.com/hint"
	lead := domain.UnifiedLead{Social: domain.SocialURLs{Twitter: &base}}
	hints := llm.DiscoveryHintsResult{PodcastTwitterURL: &hint}

	got := winningURL(social.PlatformTwitter, lead, hints)
	require.NotNil(t, got)
	assert.Equal(t, base, *got)
}

func TestWinningURL_TwitterPrefersPodcastSlotOverHostSlot(t *testing.T) {
	podcast := "https://twitter.com/podcast"
	host := "https://twitter.com/host"
	hints := llm.DiscoveryHintsResult{PodcastTwitterURL: &podcast, HostTwitterURL: &host}

	got := winningURL(social.PlatformTwitter, domain.UnifiedLead{}, hints)
	require.NotNil(t, got)
	assert.Equal(t, podcast, *got)
}

func TestWinningURL_LinkedInPrefersHostSlot(t *testing.T) {
	podcastLI := "https://linkedin.com/company/podcast"
	hostLI := "https://linkedin.com/in/host"
	hints := llm.DiscoveryHintsResult{PodcastLinkedInURL: &podcastLI, HostLinkedInURL: &hostLI}

	got := winningURL(social.PlatformLinkedIn, domain.UnifiedLead{}, hints)
	require.NotNil(t, got)
	assert.Equal(t, hostLI, *got)
}

func TestMerge_AttachesReachStatsForWinningURL(t *testing.T) {
	twitter := "https://twitter.com/acmepod"
	lead := domain.UnifiedLead{
		SourceAPI: domain.SourceListenNotes,
		APIID:     "p1",
		Social:    domain.SocialURLs{Twitter: &twitter},
	}

	followers := int64(1000)
	maps := platformMaps{
		social.PlatformTwitter: {
			"https://twitter.com/acmepod": {FollowersCount: &followers},
		},
	}

	profile := merge(lead, llm.DiscoveryHintsResult{}, maps, nil)

	require.Contains(t, profile.Reach, social.PlatformTwitter)
	assert.Equal(t, followers, *profile.Reach[social.PlatformTwitter].FollowerCount)
	assert.Contains(t, profile.DataSources, "apify_twitter")
	assert.Contains(t, profile.DataSources, "search_listennotes")
}

func TestMerge_NoReachDataForMissingURL(t *testing.T) {
	lead := domain.UnifiedLead{SourceAPI: domain.SourcePodscan, APIID: "p2"}

	profile := merge(lead, llm.DiscoveryHintsResult{}, platformMaps{}, nil)

	assert.Empty(t, profile.Reach)
	assert.Contains(t, profile.DataSources, "search_podscan")
}
