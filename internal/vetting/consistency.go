// Package vetting implements the Vetting engine: a deterministic
// programmatic consistency check combined with a structured LLM
// content-match call, yielding a composite score and quality tier per
// profile.
package vetting

import (
	"fmt"
	"time"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

// Fallback thresholds used when a zero-value *config.Config reaches
// this package directly (e.g. in a test); production configs always
// carry these via their env default tags.
const (
	defaultRecencyMaxDays      = 120
	defaultFreqIdealMaxDays    = 30.0
	defaultFreqAcceptableDays  = 60.0
	defaultMinEpisodesForFreq  = 5
)

// consistencyResult is the programmatic half of a VettingResult: pure
// functions of profile fields, no network calls.
type consistencyResult struct {
	passed               bool
	reason               string
	recencyScore         float64
	frequencyScore       float64
	daysSinceLastEpisode *int
	averageFrequencyDays *float64
}

// checkConsistency scores a profile's recency and publishing frequency
// against config thresholds; it passes only if both factors score at
// least 0.5.
func checkConsistency(profile domain.EnrichedProfile, cfg *config.Config, now time.Time) consistencyResult {
	recencyScore, daysSince, recencyNote := recencyScore(profile, cfg, now)
	freqScore, avgFreq, freqNote := frequencyScore(profile, cfg)

	passed := recencyScore >= 0.5 && freqScore >= 0.5

	return consistencyResult{
		passed:               passed,
		reason:               recencyNote + "; " + freqNote,
		recencyScore:         recencyScore,
		frequencyScore:       freqScore,
		daysSinceLastEpisode: daysSince,
		averageFrequencyDays: avgFreq,
	}
}

func recencyScore(profile domain.EnrichedProfile, cfg *config.Config, now time.Time) (float64, *int, string) {
	if profile.LatestEpisodeDate == nil {
		return 0.1, nil, "recency: no latest episode date available (score 0.1)"
	}

	maxDays := cfg.VettingRecencyMaxDays
	if maxDays <= 0 {
		maxDays = defaultRecencyMaxDays
	}

	days := int(now.Sub(*profile.LatestEpisodeDate).Hours() / 24)
	if days < 0 {
		days = 0
	}

	var score float64

	switch {
	case days <= maxDays/2:
		score = 1.0
	case days <= maxDays:
		score = 0.6
	case float64(days) <= 1.5*float64(maxDays):
		score = 0.3
	default:
		score = 0.1
	}

	note := fmt.Sprintf("recency: %d days since last episode (score %.1f)", days, score)

	return score, &days, note
}

func frequencyScore(profile domain.EnrichedProfile, cfg *config.Config) (float64, *float64, string) {
	ideal := cfg.VettingFreqIdealMaxDays
	if ideal <= 0 {
		ideal = defaultFreqIdealMaxDays
	}

	acceptable := cfg.VettingFreqAcceptableMaxDays
	if acceptable <= 0 {
		acceptable = defaultFreqAcceptableDays
	}

	minEpisodes := cfg.VettingMinEpisodesForFreq
	if minEpisodes <= 0 {
		minEpisodes = defaultMinEpisodesForFreq
	}

	var avgDays *float64

	switch {
	case profile.PublishingFrequencyDays != nil:
		avgDays = profile.PublishingFrequencyDays
	case profile.TotalEpisodes != nil && *profile.TotalEpisodes >= minEpisodes &&
		profile.FirstEpisodeDate != nil && profile.LatestEpisodeDate != nil:
		span := profile.LatestEpisodeDate.Sub(*profile.FirstEpisodeDate).Hours() / 24
		denom := *profile.TotalEpisodes - 1

		if denom > 0 && span >= 0 {
			computed := span / float64(denom)
			avgDays = &computed
		}
	}

	if avgDays == nil {
		if profile.TotalEpisodes != nil && *profile.TotalEpisodes > 0 {
			return 0.1, nil, "frequency: insufficient data to compute publishing cadence (score 0.1)"
		}

		return 0.0, nil, "frequency: no episode data available (score 0.0)"
	}

	var score float64

	switch {
	case *avgDays <= ideal:
		score = 1.0
	case *avgDays <= acceptable:
		score = 0.7
	default:
		score = 0.3
	}

	note := fmt.Sprintf("frequency: average %.1f days between episodes (score %.1f)", *avgDays, score)

	return score, avgDays, note
}
