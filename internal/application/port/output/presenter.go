// Package output defines the output ports of the application layer
package output

import "github.com/ingressstats/agentstats/internal/application/usecase/submit"

// Presenter renders a pipeline outcome for a consumer
type Presenter interface {
	// PresentOutcome renders a parse outcome (accepted or rejected)
	PresentOutcome(outcome submit.Outcome) error

	// PresentError renders an operational error (I/O, config)
	PresentError(err error) error
}
