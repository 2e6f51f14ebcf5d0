// Package pipeline sequences Search, Enrichment, and Vetting over a
// single CampaignConfig, propagating status/errors and emitting a CSV
// artifact per stage, per spec.md §4.8.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/artifact"
	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/observability"
)

// Searcher runs the Search stage.
type Searcher interface {
	Run(ctx context.Context, campaign domain.CampaignConfig) ([]domain.UnifiedLead, error)
}

// Enricher runs the Enrichment stage.
type Enricher interface {
	Run(ctx context.Context, leads []domain.UnifiedLead) []domain.EnrichedProfile
}

// Vetter runs the Vetting stage.
type Vetter interface {
	Run(ctx context.Context, guest domain.GuestProfile, profiles []domain.EnrichedProfile) []domain.VettingResult
}

// Result is the full output of one pipeline run: the terminal status,
// the in-memory records from each stage that ran, and the web-relative
// CSV path from each stage that wrote one.
type Result struct {
	Status       ExecutionStatus
	ErrorMessage string

	Leads    []domain.UnifiedLead
	Profiles []domain.EnrichedProfile
	Vetted   []domain.VettingResult

	LeadsCSVPath    string
	ProfilesCSVPath string
	VettingCSVPath  string
}

// Pipeline sequences the three stages for one campaign run.
type Pipeline struct {
	search     Searcher
	enrichment Enricher
	vetting    Vetter
	sink       observability.MetricsSink
	logger     *zerolog.Logger
}

// New builds a Pipeline from its three stage collaborators. A nil sink
// falls back to a logging-only sink so callers need not wire a real
// metrics collector to exercise a run.
func New(search Searcher, enrichment Enricher, vetting Vetter, sink observability.MetricsSink, logger *zerolog.Logger) *Pipeline {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if sink == nil {
		sink = observability.NewLoggingSink(logger)
	}

	return &Pipeline{search: search, enrichment: enrichment, vetting: vetting, sink: sink, logger: logger}
}

// Run executes the state machine described in spec.md §4.8: Search,
// then (if it produced leads) Enrichment, then always Vetting over
// whatever profiles Enrichment produced (an empty list short-circuits
// Vetting to a no-op).
func (p *Pipeline) Run(ctx context.Context, campaign domain.CampaignConfig) Result {
	runID := uuid.New().String()
	logger := p.logger.With().Str("run_id", runID).Str("campaign_id", campaign.CampaignID).Logger()

	campaign.Normalize()

	if err := validateCampaign(campaign); err != nil {
		logger.Error().Err(err).Msg("campaign config failed validation")

		return Result{Status: StatusSearchFailedConfig, ErrorMessage: err.Error()}
	}

	searchResult := p.runSearch(ctx, &logger, campaign)
	if searchResult.Status != StatusSearchComplete {
		observability.PipelineRunsTotal.WithLabelValues(string(searchResult.Status)).Inc()
		return searchResult
	}

	enrichmentResult := p.runEnrichment(ctx, &logger, campaign, searchResult)

	finalResult := p.runVetting(ctx, &logger, campaign, enrichmentResult)
	observability.PipelineRunsTotal.WithLabelValues(string(finalResult.Status)).Inc()

	return finalResult
}

func (p *Pipeline) runSearch(ctx context.Context, logger *zerolog.Logger, campaign domain.CampaignConfig) Result {
	start := time.Now()

	leads, err := p.search.Run(ctx, campaign)
	duration := time.Since(start)

	p.sink.Record(observability.Event{
		Name: "stage_end", Stage: "search", CampaignID: campaign.CampaignID,
		Duration: &duration, Metadata: map[string]interface{}{"count": len(leads)},
	})

	if err != nil {
		logger.Error().Err(err).Msg("search stage failed")

		status := StatusSearchFailedError
		if isConfigErr(err) {
			status = StatusSearchFailedConfig
		}

		return Result{Status: status, ErrorMessage: err.Error()}
	}

	csvPath, webPath, csvErr := artifact.WriteLeads(leads, campaign.CampaignID, string(campaign.SearchType))
	if csvErr != nil {
		logger.Warn().Err(csvErr).Msg("failed to write search csv artifact")
	}

	if len(leads) == 0 {
		logger.Info().Msg("search produced zero leads")
		return Result{Status: StatusSearchCompleteNoResult, Leads: leads, LeadsCSVPath: webPath}
	}

	logger.Info().Int("count", len(leads)).Str("csv_path", csvPath).Msg("search stage complete")

	return Result{Status: StatusSearchComplete, Leads: leads, LeadsCSVPath: webPath}
}

func (p *Pipeline) runEnrichment(ctx context.Context, logger *zerolog.Logger, campaign domain.CampaignConfig, prior Result) Result {
	start := time.Now()

	profiles := p.enrichment.Run(ctx, prior.Leads)
	duration := time.Since(start)

	p.sink.Record(observability.Event{
		Name: "stage_end", Stage: "enrichment", CampaignID: campaign.CampaignID,
		Duration: &duration, Metadata: map[string]interface{}{"count": len(profiles)},
	})

	csvPath, webPath, csvErr := artifact.WriteProfiles(profiles, campaign.CampaignID)
	if csvErr != nil {
		logger.Warn().Err(csvErr).Msg("failed to write enrichment csv artifact")
	}

	status := StatusEnrichmentComplete
	if countMissingReach(profiles) > 0 {
		status = StatusEnrichmentCompleteWithErrors
	}

	logger.Info().Int("count", len(profiles)).Str("csv_path", csvPath).Msg("enrichment stage complete")

	return Result{
		Status: status, Leads: prior.Leads, LeadsCSVPath: prior.LeadsCSVPath,
		Profiles: profiles, ProfilesCSVPath: webPath,
	}
}

func (p *Pipeline) runVetting(ctx context.Context, logger *zerolog.Logger, campaign domain.CampaignConfig, prior Result) Result {
	if len(prior.Profiles) == 0 {
		logger.Info().Msg("no profiles to vet, ending run")
		return Result{Status: prior.Status, Leads: prior.Leads, LeadsCSVPath: prior.LeadsCSVPath}
	}

	start := time.Now()

	results := p.vetting.Run(ctx, campaign.Guest, prior.Profiles)
	duration := time.Since(start)

	for _, r := range results {
		observability.VettingTierCount.WithLabelValues(string(r.QualityTier)).Inc()
		observability.VettingCompositeScore.Observe(float64(r.CompositeScore))
	}

	p.sink.Record(observability.Event{
		Name: "stage_end", Stage: "vetting", CampaignID: campaign.CampaignID,
		Duration: &duration, Metadata: map[string]interface{}{"count": len(results)},
	})

	csvPath, webPath, csvErr := artifact.WriteVettingResults(results, campaign.CampaignID)
	if csvErr != nil {
		logger.Warn().Err(csvErr).Msg("failed to write vetting csv artifact")
	}

	logger.Info().Int("count", len(results)).Str("csv_path", csvPath).Msg("vetting stage complete")

	return Result{
		Status: StatusVettingComplete,
		Leads:  prior.Leads, LeadsCSVPath: prior.LeadsCSVPath,
		Profiles: prior.Profiles, ProfilesCSVPath: prior.ProfilesCSVPath,
		Vetted: results, VettingCSVPath: webPath,
	}
}

func countMissingReach(profiles []domain.EnrichedProfile) int {
	missing := 0

	for _, p := range profiles {
		if len(p.Reach) == 0 {
			missing++
		}
	}

	return missing
}

func validateCampaign(campaign domain.CampaignConfig) error {
	if campaign.CampaignID == "" {
		return fmt.Errorf("%w: campaign_id is required", perrors.ErrConfigInvalidCampaign)
	}

	switch campaign.SearchType {
	case domain.SearchTypeTopic:
		if campaign.TargetAudience == "" {
			return fmt.Errorf("%w: target_audience is required for topic search", perrors.ErrConfigInvalidCampaign)
		}
	case domain.SearchTypeRelated:
		if campaign.SeedFeedURL == "" {
			return fmt.Errorf("%w: seed_feed_url is required for related search", perrors.ErrConfigInvalidCampaign)
		}
	default:
		return fmt.Errorf("%w: %q", perrors.ErrConfigInvalidSearchType, campaign.SearchType)
	}

	return nil
}

func isConfigErr(err error) bool {
	return errors.Is(err, perrors.ErrConfigMissingAPIKey) || errors.Is(err, perrors.ErrConfigInvalidCampaign) ||
		errors.Is(err, perrors.ErrConfigInvalidSearchType) || errors.Is(err, perrors.ErrDependencyUnavailable)
}
