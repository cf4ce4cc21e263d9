// Package stats implements the structural validator: required-field
// presence, minimum field count, faction legality, and per-field
// well-formedness of an assembled record.
package stats

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

const (
	// MinimumStats is the smallest field count an accepted record may have
	MinimumStats = 12

	maxAgentNameRunes = 64
	maxUnknownStats   = 5

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Validator checks the structure of a parsed record. All findings are
// accumulated; only the hard failures flip the validity flag.
type Validator struct {
	catalog *stat.Catalog
	clock   func() time.Time
}

// New creates a structural validator bound to a catalog
func New(catalog *stat.Catalog) *Validator {
	return NewWithClock(catalog, time.Now)
}

// NewWithClock creates a validator with an explicit clock, for tests
func NewWithClock(catalog *stat.Catalog, clock func() time.Time) *Validator {
	return &Validator{catalog: catalog, clock: clock}
}

// Validate runs every structural check and returns the validity flag
// plus all findings in pass order. Evaluation never short-circuits: a
// hard failure is recorded and the remaining checks still run so the
// caller gets the complete picture.
func (v *Validator) Validate(rec *record.ParsedRecord) (bool, []common.Warning) {
	report := &common.Report{}
	valid := true

	if !v.checkFieldCount(rec, report) {
		valid = false
	}
	if !v.checkRequiredFields(rec, report) {
		valid = false
	}
	if !v.checkFaction(rec, report) {
		valid = false
	}

	v.checkNumericValues(rec, report)
	v.checkDateTime(rec, report)
	v.checkAgentName(rec, report)
	v.checkUnknownStats(rec, report)
	v.checkBadgeProximity(rec, report)

	return valid, report.Warnings
}

func (v *Validator) checkFieldCount(rec *record.ParsedRecord, report *common.Report) bool {
	if rec.Len() >= MinimumStats {
		return true
	}
	report.Add(common.Warning{
		Kind:     "insufficient_stats",
		Message:  fmt.Sprintf("only %d stats found, minimum %d required", rec.Len(), MinimumStats),
		Severity: common.SeverityError,
	})
	return false
}

func (v *Validator) checkRequiredFields(rec *record.ParsedRecord, report *common.Report) bool {
	ok := true
	for _, idx := range stat.RequiredIndices {
		if _, found := rec.ByIdx(idx); found {
			continue
		}
		name := fmt.Sprintf("index %d", idx)
		if def, defOK := v.catalog.ByIdx(idx); defOK {
			name = def.Name
		}
		report.Add(common.Warning{
			Kind:     "missing_required",
			Message:  fmt.Sprintf("missing required field: %s (index %d)", name, idx),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{record.StatKey(idx)},
		})
		ok = false
	}
	return ok
}

func (v *Validator) checkFaction(rec *record.ParsedRecord, report *common.Report) bool {
	field, found := rec.ByIdx(stat.IdxFaction)
	if !found {
		// Absence is already a missing_required failure
		return true
	}
	if _, ok := stat.ParseFaction(field.RawValue); ok {
		return true
	}
	report.Add(common.Warning{
		Kind:     "invalid_faction",
		Message:  fmt.Sprintf("invalid faction: %q", field.RawValue),
		Severity: common.SeverityError,
		Fields:   []record.FieldKey{field.Key},
	})
	return false
}

// checkNumericValues flags cells that do not coerce, negative values,
// and values above the per-stat ceiling. A malformed cell is an Error
// finding but does not by itself invalidate the record; missing
// structure and broken cells are deliberately kept apart.
func (v *Validator) checkNumericValues(rec *record.ParsedRecord, report *common.Report) {
	for _, field := range rec.Fields() {
		if field.Unknown || field.Type != stat.ValueNumeric {
			continue
		}
		value, err := field.IntValue()
		if err != nil {
			report.Add(common.Warning{
				Kind:     "invalid_numeric",
				Message:  fmt.Sprintf("invalid numeric value for %s: %q", field.CanonicalName, field.RawValue),
				Severity: common.SeverityError,
				Fields:   []record.FieldKey{field.Key},
			})
			continue
		}
		if value < 0 {
			report.Add(common.Warning{
				Kind:     "negative_value",
				Message:  fmt.Sprintf("negative value for %s: %d", field.CanonicalName, value),
				Severity: common.SeverityWarning,
				Fields:   []record.FieldKey{field.Key},
			})
		}
		if value > ceiling(field.Idx) {
			report.Add(common.Warning{
				Kind:     "unreasonable_value",
				Message:  fmt.Sprintf("unreasonably large value for %s: %s", field.CanonicalName, stat.FormatValue(mustDef(v.catalog, field.Idx), value)),
				Severity: common.SeverityWarning,
				Fields:   []record.FieldKey{field.Key},
			})
		}
	}
}

func (v *Validator) checkDateTime(rec *record.ParsedRecord, report *common.Report) {
	today := dateOnly(v.clock().UTC())

	if field, found := rec.ByIdx(stat.IdxDate); found {
		statsDate, err := time.Parse(dateLayout, field.RawValue)
		if err != nil {
			report.Add(common.Warning{
				Kind:     "invalid_date_format",
				Message:  fmt.Sprintf("invalid date format: %q (expected YYYY-MM-DD)", field.RawValue),
				Severity: common.SeverityError,
				Fields:   []record.FieldKey{field.Key},
			})
		} else {
			if statsDate.After(today) {
				report.Add(common.Warning{
					Kind:     "future_date",
					Message:  fmt.Sprintf("date is in future: %s", field.RawValue),
					Severity: common.SeverityWarning,
					Fields:   []record.FieldKey{field.Key},
				})
			}
			if days := daysBetween(statsDate, today); days > 365 {
				report.Add(common.Warning{
					Kind:     "old_date",
					Message:  fmt.Sprintf("date is very old (%d days): %s", days, field.RawValue),
					Severity: common.SeverityWarning,
					Fields:   []record.FieldKey{field.Key},
				})
			}
		}
	}

	if field, found := rec.ByIdx(stat.IdxTime); found {
		if _, err := time.Parse(timeLayout, field.RawValue); err != nil {
			report.Add(common.Warning{
				Kind:     "invalid_time_format",
				Message:  fmt.Sprintf("invalid time format: %q (expected HH:MM:SS)", field.RawValue),
				Severity: common.SeverityError,
				Fields:   []record.FieldKey{field.Key},
			})
		}
	}
}

func (v *Validator) checkAgentName(rec *record.ParsedRecord, report *common.Report) {
	field, found := rec.ByIdx(stat.IdxAgentName)
	if !found {
		return
	}
	name := field.RawValue
	if name == "" {
		report.Add(common.Warning{
			Kind:     "empty_agent_name",
			Message:  "agent name is empty",
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{field.Key},
		})
		return
	}
	if utf8.RuneCountInString(name) > maxAgentNameRunes {
		report.Add(common.Warning{
			Kind:     "long_agent_name",
			Message:  fmt.Sprintf("agent name is very long: %d characters", utf8.RuneCountInString(name)),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{field.Key},
		})
	}
}

func (v *Validator) checkUnknownStats(rec *record.ParsedRecord, report *common.Report) {
	unknown := rec.UnknownFields()
	for _, field := range unknown {
		report.Add(common.Warning{
			Kind:     "unknown_stat",
			Message:  fmt.Sprintf("unknown stat: %q = %q", field.RawHeader, field.RawValue),
			Severity: common.SeverityInfo,
			Fields:   []record.FieldKey{field.Key},
		})
	}
	if len(unknown) > maxUnknownStats {
		report.Add(common.Warning{
			Kind:     "many_unknown_stats",
			Message:  fmt.Sprintf("many unknown stats found (%d), format may be incorrect", len(unknown)),
			Severity: common.SeverityWarning,
		})
	}
}

// checkBadgeProximity emits an Info when a stat with a badge ladder is
// within 10% of its next threshold.
func (v *Validator) checkBadgeProximity(rec *record.ParsedRecord, report *common.Report) {
	for _, field := range rec.Fields() {
		if field.Unknown || field.Type != stat.ValueNumeric {
			continue
		}
		value, err := field.IntValue()
		if err != nil {
			continue
		}
		rank, next, ok := v.catalog.BadgeLevel(field.Idx, value)
		if !ok || rank == "" || next == 0 {
			continue
		}
		if float64(value) > float64(next)*0.9 {
			report.Add(common.Warning{
				Kind:     "near_next_badge",
				Message:  fmt.Sprintf("%s is close to the next badge level (%d of %d)", field.CanonicalName, value, next),
				Severity: common.SeverityInfo,
				Fields:   []record.FieldKey{field.Key},
			})
		}
	}
}

func mustDef(catalog *stat.Catalog, idx int) stat.StatDefinition {
	def, _ := catalog.ByIdx(idx)
	return def
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
