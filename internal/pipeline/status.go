package pipeline

// ExecutionStatus is the closed set of terminal (and some
// intermediate) status strings a run can report, per spec.md §4.8/§7.
type ExecutionStatus string

const (
	StatusSearchComplete         ExecutionStatus = "search_complete"
	StatusSearchCompleteNoResult ExecutionStatus = "search_complete_no_results"
	StatusSearchFailedConfig     ExecutionStatus = "search_failed_config"
	StatusSearchFailedDependency ExecutionStatus = "search_failed_dependency"
	StatusSearchFailedError      ExecutionStatus = "search_failed_error"

	StatusEnrichmentComplete           ExecutionStatus = "enrichment_complete"
	StatusEnrichmentCompleteWithErrors ExecutionStatus = "enrichment_complete_with_errors"

	StatusVettingComplete     ExecutionStatus = "vetting_complete"
	StatusVettingFailedConfig ExecutionStatus = "vetting_failed_config"
	StatusVettingFailedError  ExecutionStatus = "vetting_failed_error"
)
