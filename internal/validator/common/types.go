// Package common holds the warning types shared by the structural and
// business-rule validators.
package common

import "github.com/ingressstats/agentstats/internal/domain/model/record"

// Severity classifies a validation warning
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// String returns the string representation
func (s Severity) String() string {
	return string(s)
}

// Warning is a single validation finding. Warnings are accumulated in
// pass order and never deduplicated.
type Warning struct {
	Kind     string            `json:"kind"`
	Message  string            `json:"message"`
	Severity Severity          `json:"severity"`
	Fields   []record.FieldKey `json:"fields,omitempty"`
}

// Report accumulates warnings across validation passes
type Report struct {
	Warnings []Warning
}

// Add appends a single warning
func (r *Report) Add(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// AddAll appends warnings preserving their order
func (r *Report) AddAll(ws []Warning) {
	r.Warnings = append(r.Warnings, ws...)
}

// HasKind reports whether any warning of the given kind was recorded
func (r *Report) HasKind(kind string) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// Summary contains warning counts by severity
type Summary struct {
	Total   int `json:"total"`
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
}

// Summarize counts warnings by severity
func Summarize(ws []Warning) Summary {
	s := Summary{Total: len(ws)}
	for _, w := range ws {
		switch w.Severity {
		case SeverityError:
			s.Error++
		case SeverityWarning:
			s.Warning++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}
