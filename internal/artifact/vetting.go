package artifact

import (
	"fmt"
	"time"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

var vettingHeader = []string{
	"podcast_id", "quality_tier", "composite_score",
	"programmatic_consistency_passed", "programmatic_consistency_reason",
	"llm_match_score", "llm_match_explanation",
	"final_explanation", "days_since_last_episode", "average_frequency_days",
	"error", "metric_scores",
}

// WriteVettingResults writes one row per VettingResult under
// data/campaigns/<campaign_id>/vetting_results/, per spec.md §6.
func WriteVettingResults(results []domain.VettingResult, campaignID string) (string, string, error) {
	if len(results) == 0 {
		return "", "", nil
	}

	now := time.Now().UTC()
	safeCampaignID := sanitizeCampaignID(campaignID)
	filename := fmt.Sprintf("vetting_output_%s_%s.csv", safeCampaignID, timestampSuffix(now))

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, vettingRow(r))
	}

	return writeCSV(campaignID, []string{"vetting_results"}, filename, vettingHeader, rows)
}

func vettingRow(r domain.VettingResult) []string {
	return []string{
		r.PodcastID,
		string(r.QualityTier),
		fmt.Sprintf("%d", r.CompositeScore),
		fmt.Sprintf("%t", r.ProgrammaticConsistencyPassed),
		r.ProgrammaticConsistencyReason,
		cell(r.LLMMatchScore),
		cell(r.LLMMatchExplanation),
		r.FinalExplanation,
		cell(r.DaysSinceLastEpisode),
		cell(r.AverageFrequencyDays),
		r.Error,
		cell(r.MetricScores),
	}
}
