package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/telegram-digest-bot/internal/core/domain"
)

func TestNormalizeName_StripsTitlesPunctuationAndCase(t *testing.T) {
	assert.Equal(t, "jane obrien", normalizeName(`Dr. Jane O'Brien, PhD`))
	assert.Equal(t, "", normalizeName(""))
	assert.Equal(t, "", normalizeName("Dr. PhD"))
}

func TestPlausibleHostName_MatchesWhenNameAppearsInContext(t *testing.T) {
	context := "Jane Smith interviews founders every week on Acme Radio."
	assert.True(t, plausibleHostName("Jane Smith", context))
}

func TestPlausibleHostName_ToleratesMinorTypos(t *testing.T) {
	context := "Host Jon Smithe talks growth marketing with guests weekly."
	assert.True(t, plausibleHostName("Jon Smith", context))
}

func TestPlausibleHostName_RejectsUnrelatedName(t *testing.T) {
	context := "A technology podcast about distributed systems and databases."
	assert.False(t, plausibleHostName("Jane Smith", context))
}

func TestPlausibleHostName_RejectsEmptyContext(t *testing.T) {
	assert.False(t, plausibleHostName("Jane Smith", ""))
}

func TestPlausibleHostNames_FiltersOutImplausibleCandidates(t *testing.T) {
	title := "Acme Radio"
	description := "Jane Smith interviews founders every week."
	lead := domain.UnifiedLead{Title: &title, Description: &description}

	got := plausibleHostNames([]string{"Jane Smith", "Completely Unrelated Person"}, lead)

	assert.Equal(t, []string{"Jane Smith"}, got)
}

func TestPlausibleHostNames_EmptyCandidatesPassThrough(t *testing.T) {
	got := plausibleHostNames(nil, domain.UnifiedLead{})
	assert.Nil(t, got)
}
