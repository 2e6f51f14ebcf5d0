// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Configuration errors. Fail the run immediately (status prefixed search_failed_*/vetting_failed_*).
var (
	// ErrConfigMissingAPIKey indicates a required provider API key was not set.
	ErrConfigMissingAPIKey = errors.New("missing required api key")

	// ErrConfigInvalidSearchType indicates an unrecognized CampaignConfig.SearchType.
	ErrConfigInvalidSearchType = errors.New("invalid search type")

	// ErrConfigInvalidCampaign indicates a CampaignConfig failed required-field validation.
	ErrConfigInvalidCampaign = errors.New("invalid campaign config")
)

// Dependency errors. A collaborator could not be constructed or is unavailable.
var (
	// ErrDependencyUnavailable indicates a client/service could not initialize.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrProviderNotFound indicates a requested provider name has no registered implementation.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrNoProvidersAvailable indicates every provider for a capability is disabled or circuit-open.
	ErrNoProvidersAvailable = errors.New("no providers available")
)

// Provider transient/permanent errors (§7 of SPEC_FULL.md).
var (
	// ErrProviderRateLimited indicates an HTTP 429 response.
	ErrProviderRateLimited = errors.New("provider rate limited")

	// ErrProviderUnauthorized indicates an HTTP 401 response; fails fast, not retried.
	ErrProviderUnauthorized = errors.New("provider unauthorized")

	// ErrProviderServerError indicates an HTTP 5xx response.
	ErrProviderServerError = errors.New("provider server error")

	// ErrProviderBadRequest indicates a non-429 4xx response.
	ErrProviderBadRequest = errors.New("provider bad request")
)

// Response and parsing errors.
var (
	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")

	// ErrNoResults indicates no results were found.
	ErrNoResults = errors.New("no results")

	// ErrMalformedResponse indicates a provider or LLM payload failed schema validation.
	ErrMalformedResponse = errors.New("malformed response")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidURL indicates a string failed well-formed-URL validation.
	ErrInvalidURL = errors.New("invalid url")
)

// Pipeline errors.
var (
	// ErrEmptyKeywords indicates the keyword generator returned zero usable keywords.
	ErrEmptyKeywords = errors.New("no keywords generated")

	// ErrStageCatastrophic indicates an unrecovered panic/error inside stage orchestration.
	ErrStageCatastrophic = errors.New("stage failed catastrophically")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
