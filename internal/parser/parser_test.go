package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/infra/catalog"
	"github.com/ingressstats/agentstats/internal/testutil"
)

var testClock = func() time.Time {
	return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewWithClock(catalog.MustDefault(), testClock)
}

func requireParseError(t *testing.T, err error, code int) {
	t.Helper()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, code, perr.Code)
}

func TestParseTabulatedRoundTrip(t *testing.T) {
	p := newTestParser(t)
	text := testutil.NewStatsText(catalog.MustDefault()).Tabulated()

	rec, err := p.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, record.FormatTabulated, rec.Format())
	assert.Equal(t, 34, rec.Len())
	assert.NotEmpty(t, rec.ID())
	assert.Equal(t, testClock(), rec.ParsedAt())

	assert.Equal(t, "AgentX", rec.AgentName())
	assert.Equal(t, "Resistance", rec.FactionValue())
	assert.Equal(t, "2024-05-01", rec.DateValue())
	assert.Equal(t, "10:00:00", rec.TimeValue())

	level, ok := rec.Level()
	require.True(t, ok)
	assert.Equal(t, int64(10), level)

	ap, ok := rec.LifetimeAP()
	require.True(t, ok)
	assert.Equal(t, int64(5_000_000), ap)

	assert.Empty(t, rec.UnknownFields())
}

func TestParseSpaceDelimitedRoundTrip(t *testing.T) {
	p := newTestParser(t)
	text := testutil.NewStatsText(catalog.MustDefault()).SpaceDelimited()

	rec, err := p.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, record.FormatSpaceDelimited, rec.Format())
	assert.Equal(t, 34, rec.Len())
	assert.Equal(t, "AgentX", rec.AgentName())
	assert.Equal(t, "2024-05-01", rec.DateValue())

	hacks, ok := rec.IntByIdx(28)
	require.True(t, ok)
	assert.Equal(t, int64(50_000), hacks)
}

func TestParseSingleLineRecovery(t *testing.T) {
	p := newTestParser(t)
	text := testutil.NewStatsText(catalog.MustDefault()).SingleLine()

	rec, err := p.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 34, rec.Len())
	assert.Equal(t, "AgentX", rec.AgentName())
}

func TestParseUnknownField(t *testing.T) {
	p := newTestParser(t)
	text := testutil.NewStatsText(catalog.MustDefault()).
		WithExtraField("Mystery", "42").
		SpaceDelimited()

	rec, err := p.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 35, rec.Len())

	unknown := rec.UnknownFields()
	require.Len(t, unknown, 1)
	assert.Equal(t, "Mystery", unknown[0].RawHeader)
	assert.Equal(t, "42", unknown[0].RawValue)
	assert.Equal(t, -1, unknown[0].Idx)
}

func TestParseDuplicateHeaderFirstWins(t *testing.T) {
	p := newTestParser(t)
	text := testutil.NewStatsText(catalog.MustDefault()).
		WithExtraField("Level", "99").
		Tabulated()

	rec, err := p.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 34, rec.Len(), "duplicate column is dropped")

	level, ok := rec.Level()
	require.True(t, ok)
	assert.Equal(t, int64(10), level, "the first occurrence wins")
}

func TestParseRejections(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		text     string
		wantCode int
	}{
		{
			name:     "arbitrary text",
			text:     "hello world",
			wantCode: CodeInvalidFormat,
		},
		{
			name:     "empty input",
			text:     "",
			wantCode: CodeInvalidFormat,
		},
		{
			name:     "marker first cannot split",
			text:     "ALL TIME Time Span Agent Name",
			wantCode: CodeHeaderSplit,
		},
		{
			name:     "too few tabulated columns",
			text:     "Time Span\tAgent Name\tAgent Faction\tDate (yyyy-mm-dd)\nALL TIME\tAgentX\tResistance\t2024-05-01",
			wantCode: CodeTooFewFields,
		},
		{
			name:     "not all time snapshot",
			text:     "Time Span\tAgent Name\tAgent Faction\tDate (yyyy-mm-dd)\tTime (hh:mm:ss)\nLAST WEEK\tAgentX\tResistance\t2024-05-01\t10:00:00",
			wantCode: CodeNotAllTime,
		},
		{
			name:     "too few fields parsed",
			text:     "Time Span\tAgent Name\tAgent Faction\tDate (yyyy-mm-dd)\tTime (hh:mm:ss)\nALL TIME\tAgentX\tResistance\t2024-05-01\t10:00:00",
			wantCode: CodeInsufficientStats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := p.Parse(tt.text)
			assert.Nil(t, rec, "rejection must not return a partial record")
			requireParseError(t, err, tt.wantCode)
		})
	}
}

func TestParseFieldCountMismatch(t *testing.T) {
	p := newTestParser(t)

	// A multi-word unknown header splits into two header tokens on the
	// space-delimited path, leaving one value short.
	text := testutil.NewStatsText(catalog.MustDefault()).
		WithExtraField("Glyph Points", "77").
		SpaceDelimited()

	rec, err := p.Parse(text)
	assert.Nil(t, rec)
	requireParseError(t, err, CodeFieldCountMismatch)
}

func TestParsePanicSurfacesAsInternal(t *testing.T) {
	p := NewWithClock(nil, testClock)

	text := testutil.NewStatsText(catalog.MustDefault()).Tabulated()
	rec, err := p.Parse(text)
	assert.Nil(t, rec)
	requireParseError(t, err, CodeInternal)
}

func TestParseErrorMessages(t *testing.T) {
	assert.Equal(t, "Invalid stats format", CodeMessage(CodeInvalidFormat))
	assert.Equal(t, "Not ALL TIME stats", CodeMessage(CodeNotAllTime))
	assert.Equal(t, "Internal parsing error", CodeMessage(12345), "unknown codes fall back to the internal message")

	err := rejectf(CodeTooFewFields, "%d headers", 3)
	assert.Contains(t, err.Error(), "code 3")
	assert.Contains(t, err.Error(), "3 headers")
	assert.Equal(t, "Too few fields", err.Message())

	var perr *ParseError
	assert.True(t, errors.As(error(err), &perr))
}
