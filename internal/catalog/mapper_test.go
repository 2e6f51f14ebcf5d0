package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

func TestMapListenNotes_ZeroValuesOmitted(t *testing.T) {
	lead := mapListenNotes(listenNotesPodcast{ID: "1"})

	assert.Equal(t, domain.SourceListenNotes, lead.SourceAPI)
	assert.Nil(t, lead.FeedURL)
	assert.Nil(t, lead.ITunesID)
	assert.Nil(t, lead.TotalEpisodes)
}

func TestMapListenNotes_PopulatesFields(t *testing.T) {
	p := listenNotesPodcast{
		ID:            "99",
		RSS:           "https://example.com/feed.xml",
		ITunesID:      12345,
		Title:         "Show Title",
		TotalEpisodes: 7,
		ListenScore:   80,
	}

	lead := mapListenNotes(p)

	require.NotNil(t, lead.FeedURL)
	assert.Equal(t, "https://example.com/feed.xml", *lead.FeedURL)
	require.NotNil(t, lead.ITunesID)
	assert.Equal(t, "12345", *lead.ITunesID)
	require.NotNil(t, lead.TotalEpisodes)
	assert.Equal(t, 7, *lead.TotalEpisodes)
}

func TestMapPodscan_InvalidDateIgnored(t *testing.T) {
	lead := mapPodscan(podscanPodcast{PodcastID: "x", LastPostedAt: "not-a-date"})
	assert.Nil(t, lead.LatestPubDateMs)
}

func TestMapPodscan_RatingsPopulated(t *testing.T) {
	lead := mapPodscan(podscanPodcast{PodcastID: "x", RatingItunes: 4.5, RatingCountItunes: 10})

	require.NotNil(t, lead.RatingAverages)
	assert.InDelta(t, 4.5, lead.RatingAverages["itunes"], 0.001)
	assert.Equal(t, 10, lead.RatingCounts["itunes"])
}
