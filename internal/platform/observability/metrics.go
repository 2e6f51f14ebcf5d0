// Package observability provides health checks and metrics for the pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRunsTotal counts campaign runs by terminal execution status.
	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Total number of pipeline runs by terminal execution status",
	}, []string{"status"})

	// StageDuration measures wall-clock time spent in each pipeline stage.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_seconds",
		Help:    "Duration of a pipeline stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	// StageOutputCount records how many records a stage emitted.
	StageOutputCount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_output_count",
		Help:    "Number of records a pipeline stage produced",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	}, []string{"stage"})

	// CatalogRequests counts catalog provider HTTP calls by outcome.
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_catalog_requests_total",
		Help: "Total number of catalog provider requests",
	}, []string{"provider", "operation", "result"})

	// CatalogRequestDuration measures catalog provider HTTP call latency.
	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_catalog_request_duration_seconds",
		Help:    "Duration of catalog provider requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "operation"})

	// LeadsDeduped counts how many raw leads were folded into an existing
	// group versus how many started a new group.
	LeadsDeduped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_leads_deduped_total",
		Help: "Total number of leads processed by the dedup/merge stage",
	}, []string{"outcome"})

	// SocialScraperRequests counts social provider calls by outcome.
	SocialScraperRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_social_requests_total",
		Help: "Total number of social scraper requests",
	}, []string{"platform", "result"})

	// LLMRequestDuration measures LLM provider call latency.
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_llm_request_duration_seconds",
		Help:    "Duration of LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "capability"})

	// LLMRequests counts LLM provider calls by outcome, including fallback.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_llm_requests_total",
		Help: "Total number of LLM requests by provider and result",
	}, []string{"provider", "capability", "result"})

	// LLMCircuitOpens counts circuit-breaker trips per provider.
	LLMCircuitOpens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_llm_circuit_opens_total",
		Help: "Total number of times an LLM provider's circuit breaker opened",
	}, []string{"provider"})

	// VettingTierCount records the distribution of final quality tiers
	// assigned by a campaign run.
	VettingTierCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_vetting_tier_total",
		Help: "Total number of profiles assigned each quality tier",
	}, []string{"tier"})

	// VettingCompositeScore distributes the 0-100 composite score.
	VettingCompositeScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_vetting_composite_score",
		Help:    "Distribution of composite vetting scores",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 85, 90, 100},
	})

	// ArtifactRowsWritten counts CSV rows written per artifact kind.
	ArtifactRowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_artifact_rows_written_total",
		Help: "Total number of rows written to a CSV artifact",
	}, []string{"artifact"})
)
