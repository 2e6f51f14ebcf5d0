package vetting

import (
	"math"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

const (
	defaultProgrammaticWeight = 0.4
	defaultLLMWeight          = 0.6
	defaultFailCredit         = 0.3

	defaultTierAThreshold = 85
	defaultTierBThreshold = 70
	defaultTierCThreshold = 50
)

// composite combines the programmatic pass/fail and the LLM match
// score into a single 0-100 value and a quality tier, per spec.md
// §4.7's exact formula. llmScore is nil when the LLM call failed or
// returned a malformed response.
func composite(passed bool, llmScore *int, cfg *config.Config) (int, domain.QualityTier) {
	programmaticWeight := cfg.VettingProgrammaticWeight
	if programmaticWeight <= 0 {
		programmaticWeight = defaultProgrammaticWeight
	}

	llmWeight := cfg.VettingLLMWeight
	if llmWeight <= 0 {
		llmWeight = defaultLLMWeight
	}

	failCredit := cfg.VettingProgrammaticFailCredit
	if failCredit <= 0 {
		failCredit = defaultFailCredit
	}

	programmaticContribution := failCredit
	if passed {
		programmaticContribution = 1.0
	}

	llmContribution := 0.0
	if llmScore != nil {
		llmContribution = float64(*llmScore) / 100
	}

	raw := (programmaticWeight*programmaticContribution + llmWeight*llmContribution) * 100
	raw = math.Max(0, math.Min(100, raw))
	score := int(math.Round(raw))

	if llmScore == nil {
		return score, domain.TierUnvetted
	}

	return score, tierFor(score, cfg)
}

func tierFor(score int, cfg *config.Config) domain.QualityTier {
	a := cfg.VettingTierAThreshold
	if a <= 0 {
		a = defaultTierAThreshold
	}

	b := cfg.VettingTierBThreshold
	if b <= 0 {
		b = defaultTierBThreshold
	}

	c := cfg.VettingTierCThreshold
	if c <= 0 {
		c = defaultTierCThreshold
	}

	switch {
	case score >= a:
		return domain.TierA
	case score >= b:
		return domain.TierB
	case score >= c:
		return domain.TierC
	default:
		return domain.TierD
	}
}
