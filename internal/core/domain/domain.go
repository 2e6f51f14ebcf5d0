// Package domain defines the data contracts that flow between pipeline
// stages: CampaignConfig in, UnifiedLead out of Search, EnrichedProfile
// out of Enrichment, VettingResult out of Vetting.
package domain

import "time"

// SearchType selects which Search stage algorithm a campaign runs.
type SearchType string

const (
	SearchTypeTopic   SearchType = "topic"
	SearchTypeRelated SearchType = "related"
)

// Default bounds for CampaignConfig fields, applied by Normalize.
const (
	DefaultNumKeywords          = 10
	DefaultMaxResultsPerKeyword = 50
	DefaultMaxDepth             = 2
	DefaultMaxTotalResults      = 50
	MaxNumKeywords              = 30
	MaxMaxResultsPerKeyword     = 200
	MaxSearchDepth              = 3
	MaxMaxTotalResults          = 200
)

// GuestProfile carries the guest-fit fields the Vetting stage needs.
// Folded out of CampaignConfig as its own struct so call sites that
// only run Search/Enrichment need not populate it.
type GuestProfile struct {
	IdealPodcastDescription string
	GuestBio                string
	GuestTalkingPoints      []string
}

// CampaignConfig is the sole input accepted by a pipeline run.
type CampaignConfig struct {
	CampaignID string
	SearchType SearchType

	// Topic mode fields.
	TargetAudience       string
	KeyMessages          []string
	NumKeywords          int
	MaxResultsPerKeyword int

	// Related mode fields.
	SeedFeedURL     string
	MaxDepth        int
	MaxTotalResults int

	// Vetting fields, required only if the pipeline proceeds to Vetting.
	Guest GuestProfile
}

// Normalize clamps optional numeric fields to their spec-mandated
// bounds and fills defaults for zero values. It does not validate
// required fields; callers should do that before calling Normalize.
func (c *CampaignConfig) Normalize() {
	if c.NumKeywords <= 0 {
		c.NumKeywords = DefaultNumKeywords
	}

	c.NumKeywords = clampInt(c.NumKeywords, 1, MaxNumKeywords)

	if c.MaxResultsPerKeyword <= 0 {
		c.MaxResultsPerKeyword = DefaultMaxResultsPerKeyword
	}

	c.MaxResultsPerKeyword = clampInt(c.MaxResultsPerKeyword, 1, MaxMaxResultsPerKeyword)

	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	c.MaxDepth = clampInt(c.MaxDepth, 1, MaxSearchDepth)

	if c.MaxTotalResults <= 0 {
		c.MaxTotalResults = DefaultMaxTotalResults
	}

	c.MaxTotalResults = clampInt(c.MaxTotalResults, 1, MaxMaxTotalResults)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// SourceAPI discriminates which catalog provider produced a record.
type SourceAPI string

const (
	SourceListenNotes SourceAPI = "listennotes"
	SourcePodscan     SourceAPI = "podscan"
)

// SocialURLs is the set of per-platform social URL slots shared by
// UnifiedLead and the enrichment-hints record. A field is nil when the
// platform URL is unknown.
type SocialURLs struct {
	Twitter   *string
	LinkedIn  *string
	Instagram *string
	Facebook  *string
	YouTube   *string
	TikTok    *string
	Other     *string
}

// UnifiedLead is one row per candidate podcast, the contract between
// Search and Enrichment.
type UnifiedLead struct {
	// Identity.
	SourceAPI SourceAPI
	APIID     string
	FeedURL   *string
	ITunesID  *string
	SpotifyID *string
	Website   *string

	// Display.
	Title       *string
	Description *string
	ImageURL    *string
	Language    *string

	// Episode stats.
	TotalEpisodes      *int
	LatestPubDateMs    *int64
	EarliestPubDateMs  *int64
	UpdateFrequencyHrs *float64

	// Reach.
	ListenScore           *float64
	ListenScoreGlobalRank *int
	AudienceSize          *int64
	RatingAverages        map[string]float64
	RatingCounts          map[string]int

	// Social URLs.
	Social SocialURLs

	// Contact.
	Email *string
}

// Clone returns a deep-enough copy so merge operations never alias
// map fields between the original and the merged record.
func (u UnifiedLead) Clone() UnifiedLead {
	out := u
	if u.RatingAverages != nil {
		out.RatingAverages = make(map[string]float64, len(u.RatingAverages))
		for k, v := range u.RatingAverages {
			out.RatingAverages[k] = v
		}
	}

	if u.RatingCounts != nil {
		out.RatingCounts = make(map[string]int, len(u.RatingCounts))
		for k, v := range u.RatingCounts {
			out.RatingCounts[k] = v
		}
	}

	return out
}

// PlatformReach holds reach counters for one social platform.
type PlatformReach struct {
	FollowerCount *int64
	Verified      *bool
}

// EnrichedProfile is one row per candidate podcast, the contract
// between Enrichment and Vetting. It is a superset of UnifiedLead.
type EnrichedProfile struct {
	UnifiedLead

	HostNames []string

	// RSS-derived fields (optional side-channel).
	RSSOwnerName  *string
	RSSOwnerEmail *string
	RSSExplicit   *bool
	RSSCategories []string

	Reach map[string]PlatformReach // keyed by platform name, see social.Platform*

	PrimaryEmail *string

	PublishingFrequencyDays *float64
	FirstEpisodeDate        *time.Time
	LatestEpisodeDate       *time.Time

	DataSources []string

	LastEnrichedAt time.Time
}

// AddDataSource appends tag to DataSources if not already present.
func (p *EnrichedProfile) AddDataSource(tag string) {
	for _, existing := range p.DataSources {
		if existing == tag {
			return
		}
	}

	p.DataSources = append(p.DataSources, tag)
}

// QualityTier is the ordinal vetting outcome bucket.
type QualityTier string

const (
	TierA        QualityTier = "A"
	TierB        QualityTier = "B"
	TierC        QualityTier = "C"
	TierD        QualityTier = "D"
	TierUnvetted QualityTier = "Unvetted"
)

// VettingResult is one row per vetted profile.
type VettingResult struct {
	PodcastID string

	ProgrammaticConsistencyPassed bool
	ProgrammaticConsistencyReason string

	DaysSinceLastEpisode *int
	AverageFrequencyDays *float64

	LLMMatchScore       *int
	LLMMatchExplanation *string

	CompositeScore int
	QualityTier    QualityTier

	FinalExplanation string
	MetricScores     map[string]float64

	Error string
}
