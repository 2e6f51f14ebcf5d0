package vetting

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/core/llm"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
)

const stageVetting = "vetting"

// Engine runs the Vetting stage: a programmatic consistency check
// combined with an LLM content-match judgment, one VettingResult per
// input profile.
type Engine struct {
	llm    llm.Client
	cfg    *config.Config
	logger *zerolog.Logger
}

// New builds an Engine from its collaborators.
func New(llmClient llm.Client, cfg *config.Config, logger *zerolog.Logger) *Engine {
	return &Engine{llm: llmClient, cfg: cfg, logger: logger}
}

// Run scores every profile concurrently and returns one VettingResult
// per input profile, in the same order. A profile is never dropped: an
// LLM failure degrades that profile's result to a null llm_score and
// an Unvetted tier rather than removing it from the batch.
func (e *Engine) Run(ctx context.Context, guest domain.GuestProfile, profiles []domain.EnrichedProfile) []domain.VettingResult {
	start := time.Now()

	if len(profiles) == 0 {
		return nil
	}

	results := make([]domain.VettingResult, len(profiles))

	var wg sync.WaitGroup

	for i, profile := range profiles {
		wg.Add(1)

		go func(i int, profile domain.EnrichedProfile) {
			defer wg.Done()

			results[i] = e.vetOne(ctx, guest, profile)
		}(i, profile)
	}

	wg.Wait()

	observability.StageDuration.WithLabelValues(stageVetting).Observe(time.Since(start).Seconds())
	observability.StageOutputCount.WithLabelValues(stageVetting).Observe(float64(len(results)))

	return results
}

func (e *Engine) vetOne(ctx context.Context, guest domain.GuestProfile, profile domain.EnrichedProfile) domain.VettingResult {
	consistency := checkConsistency(profile, e.cfg, time.Now())

	result := domain.VettingResult{
		PodcastID:                     profile.APIID,
		ProgrammaticConsistencyPassed: consistency.passed,
		ProgrammaticConsistencyReason: consistency.reason,
		DaysSinceLastEpisode:          consistency.daysSinceLastEpisode,
		AverageFrequencyDays:          consistency.averageFrequencyDays,
		MetricScores: map[string]float64{
			"recency":   consistency.recencyScore,
			"frequency": consistency.frequencyScore,
		},
	}

	match, err := e.llm.VettingMatch(ctx, guest, profile)

	switch {
	case err != nil:
		result.Error = err.Error()

		if e.logger != nil {
			e.logger.Warn().Err(err).Str("podcast_id", profile.APIID).Msg("vetting match call failed")
		}
	default:
		score := match.Score
		result.LLMMatchScore = &score
		result.LLMMatchExplanation = &match.Explanation
		result.MetricScores["llm_match"] = float64(score) / 100
	}

	score, tier := composite(consistency.passed, result.LLMMatchScore, e.cfg)
	result.CompositeScore = score
	result.QualityTier = tier
	result.FinalExplanation = finalExplanation(consistency, result)

	return result
}

func finalExplanation(c consistencyResult, r domain.VettingResult) string {
	if r.LLMMatchExplanation == nil {
		if r.Error != "" {
			return c.reason + "; llm match unavailable: " + r.Error
		}

		return c.reason + "; llm match unavailable"
	}

	return c.reason + "; " + *r.LLMMatchExplanation
}
