package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportAccumulation(t *testing.T) {
	r := &Report{}
	r.Add(Warning{Kind: "invalid_faction", Severity: SeverityError})
	r.AddAll([]Warning{
		{Kind: "negative_value", Severity: SeverityWarning},
		{Kind: "negative_value", Severity: SeverityWarning},
		{Kind: "unknown_stat", Severity: SeverityInfo},
	})

	assert.Len(t, r.Warnings, 4, "duplicates are kept")
	assert.Equal(t, "invalid_faction", r.Warnings[0].Kind, "pass order preserved")
	assert.True(t, r.HasKind("negative_value"))
	assert.False(t, r.HasKind("future_date"))
}

func TestSummarize(t *testing.T) {
	ws := []Warning{
		{Kind: "a", Severity: SeverityError},
		{Kind: "b", Severity: SeverityWarning},
		{Kind: "c", Severity: SeverityWarning},
		{Kind: "d", Severity: SeverityInfo},
	}

	s := Summarize(ws)
	assert.Equal(t, Summary{Total: 4, Error: 1, Warning: 2, Info: 1}, s)

	assert.Equal(t, Summary{}, Summarize(nil))
}
