// Package submit composes the full parsing and validation pipeline
// for one pasted stats snapshot.
package submit

import (
	"errors"
	"time"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	"github.com/ingressstats/agentstats/internal/parser"
	"github.com/ingressstats/agentstats/internal/validator/common"
	"github.com/ingressstats/agentstats/internal/validator/rules"
	"github.com/ingressstats/agentstats/internal/validator/stats"
)

// Rejection is a terminal parse failure. No partial record exists and
// the caller must not attempt to salvage it.
type Rejection struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Acceptance is a parsed record plus all validation findings. IsValid
// false signals a hard structural failure, which is distinct from a
// parse failure; the record still carries the complete diagnostics.
type Acceptance struct {
	Record   *record.ParsedRecord `json:"record"`
	Warnings []common.Warning     `json:"warnings"`
	IsValid  bool                 `json:"is_valid"`
}

// Outcome is the pipeline result: exactly one of Rejected or Accepted
// is set.
type Outcome struct {
	Rejected *Rejection  `json:"rejected,omitempty"`
	Accepted *Acceptance `json:"accepted,omitempty"`
}

// ParseStatsUseCase wires the parser with the structural and
// business-rule validators over one shared catalog. Safe for
// concurrent use.
type ParseStatsUseCase struct {
	parser     *parser.Parser
	structural *stats.Validator
	rules      *rules.Validator
}

// NewParseStatsUseCase builds the pipeline for a catalog
func NewParseStatsUseCase(catalog *stat.Catalog) *ParseStatsUseCase {
	return NewParseStatsUseCaseWithClock(catalog, time.Now)
}

// NewParseStatsUseCaseWithClock builds the pipeline with an explicit
// clock, for tests pinning temporal rules.
func NewParseStatsUseCaseWithClock(catalog *stat.Catalog, clock func() time.Time) *ParseStatsUseCase {
	return &ParseStatsUseCase{
		parser:     parser.NewWithClock(catalog, clock),
		structural: stats.NewWithClock(catalog, clock),
		rules:      rules.NewWithClock(clock),
	}
}

// Execute runs the pipeline over raw pasted text. Structural findings
// precede business-rule findings in the warning list.
func (u *ParseStatsUseCase) Execute(text string) Outcome {
	rec, err := u.parser.Parse(text)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			return Outcome{Rejected: &Rejection{Code: perr.Code, Message: perr.Message(), Detail: perr.Detail}}
		}
		return Outcome{Rejected: &Rejection{Code: parser.CodeInternal, Message: parser.CodeMessage(parser.CodeInternal), Detail: err.Error()}}
	}

	valid, warnings := u.structural.Validate(rec)
	warnings = append(warnings, u.rules.Validate(rec)...)

	return Outcome{Accepted: &Acceptance{Record: rec, Warnings: warnings, IsValid: valid}}
}
