// Package presenter contains output adapters for the pipeline outcome
package presenter

import (
	"fmt"
	"io"

	"github.com/ingressstats/agentstats/internal/application/port/output"
	"github.com/ingressstats/agentstats/internal/application/usecase/submit"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

// CLIOutcomePresenter renders outcomes as human-readable text
type CLIOutcomePresenter struct {
	output io.Writer
}

// NewCLIOutcomePresenter creates a new CLI presenter
func NewCLIOutcomePresenter(w io.Writer) output.Presenter {
	return &CLIOutcomePresenter{output: w}
}

// PresentOutcome renders the outcome for a terminal
func (p *CLIOutcomePresenter) PresentOutcome(outcome submit.Outcome) error {
	if outcome.Rejected != nil {
		_, err := fmt.Fprintf(p.output, "✗ Rejected (code %d): %s\n", outcome.Rejected.Code, outcome.Rejected.Message)
		return err
	}

	acc := outcome.Accepted
	rec := acc.Record

	mark := "✓"
	verdict := "valid"
	if !acc.IsValid {
		mark = "✗"
		verdict = "invalid"
	}
	fmt.Fprintf(p.output, "%s Accepted (%s) %s\n", mark, verdict, rec.ID())
	fmt.Fprintf(p.output, "  Agent:   %s (%s)\n", rec.AgentName(), rec.FactionValue())
	fmt.Fprintf(p.output, "  Date:    %s %s\n", rec.DateValue(), rec.TimeValue())
	if level, ok := rec.Level(); ok {
		fmt.Fprintf(p.output, "  Level:   %d\n", level)
	}
	if ap, ok := rec.LifetimeAP(); ok {
		fmt.Fprintf(p.output, "  AP:      %s\n", stat.FormatValue(stat.StatDefinition{Idx: stat.IdxLifetimeAP}, ap))
	}
	unknown := len(rec.UnknownFields())
	fmt.Fprintf(p.output, "  Fields:  %d (%d unknown), format %s\n", rec.Len(), unknown, rec.Format())

	summary := common.Summarize(acc.Warnings)
	fmt.Fprintf(p.output, "  Findings: %d error, %d warning, %d info\n", summary.Error, summary.Warning, summary.Info)
	for _, w := range acc.Warnings {
		fmt.Fprintf(p.output, "   - [%s] %s: %s\n", w.Severity, w.Kind, w.Message)
	}
	return nil
}

// PresentError renders an operational error
func (p *CLIOutcomePresenter) PresentError(err error) error {
	_, werr := fmt.Fprintf(p.output, "ERROR: %v\n", err)
	return werr
}
