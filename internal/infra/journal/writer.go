// Package journal appends one NDJSON line per parse outcome. The
// journal is the caller-side audit trail, not pipeline persistence.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/ingressstats/agentstats/internal/application/usecase/submit"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

// Entry is one journal line
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	Accepted  bool   `json:"accepted"`
	Code      int    `json:"code,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Faction   string `json:"faction,omitempty"`
	Level     int64  `json:"level,omitempty"`
	Fields    int    `json:"fields,omitempty"`
	IsValid   bool   `json:"is_valid"`
	Errors    int    `json:"errors"`
	Warnings  int    `json:"warnings"`
	Infos     int    `json:"infos"`
}

// NewEntry builds a journal entry from a pipeline outcome
func NewEntry(outcome submit.Outcome, now time.Time) Entry {
	e := Entry{Timestamp: now.UTC().Format(time.RFC3339Nano)}

	if outcome.Rejected != nil {
		e.Code = outcome.Rejected.Code
		return e
	}

	acc := outcome.Accepted
	rec := acc.Record
	summary := common.Summarize(acc.Warnings)

	e.ID = rec.ID()
	e.Accepted = true
	e.Agent = rec.AgentName()
	e.Faction = rec.FactionValue()
	if level, ok := rec.Level(); ok {
		e.Level = level
	}
	e.Fields = rec.Len()
	e.IsValid = acc.IsValid
	e.Errors = summary.Error
	e.Warnings = summary.Warning
	e.Infos = summary.Info
	return e
}

// Writer appends entries to an NDJSON file
type Writer struct {
	fs   afero.Fs
	path string
}

// NewWriter creates a journal writer for a path
func NewWriter(fs afero.Fs, path string) *Writer {
	return &Writer{fs: fs, path: path}
}

// Append writes one entry as a single NDJSON line
func (w *Writer) Append(entry Entry) error {
	if err := w.fs.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("journal: mkdir: %w", err)
	}

	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("journal: open %s: %w", w.path, err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("journal: marshal: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("journal: write: %w", err)
	}
	return nil
}
