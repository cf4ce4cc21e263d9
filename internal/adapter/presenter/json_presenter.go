package presenter

import (
	"encoding/json"
	"io"

	"github.com/ingressstats/agentstats/internal/application/port/output"
	"github.com/ingressstats/agentstats/internal/application/usecase/submit"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

// JSONPresenter renders outcomes as JSON for programmatic consumption
type JSONPresenter struct {
	output io.Writer
}

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter(w io.Writer) output.Presenter {
	return &JSONPresenter{output: w}
}

// PresentOutcome encodes the outcome as a single JSON document
func (p *JSONPresenter) PresentOutcome(outcome submit.Outcome) error {
	if outcome.Rejected != nil {
		return json.NewEncoder(p.output).Encode(map[string]interface{}{
			"accepted": false,
			"code":     outcome.Rejected.Code,
			"message":  outcome.Rejected.Message,
		})
	}

	acc := outcome.Accepted
	return json.NewEncoder(p.output).Encode(map[string]interface{}{
		"accepted": true,
		"is_valid": acc.IsValid,
		"record":   acc.Record,
		"warnings": acc.Warnings,
		"summary":  common.Summarize(acc.Warnings),
	})
}

// PresentError encodes an operational error as JSON
func (p *JSONPresenter) PresentError(err error) error {
	return json.NewEncoder(p.output).Encode(map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}
