// Package rules implements the business-rule validator: semantic
// consistency across fields of an assembled record. Findings here
// never affect record validity.
package rules

import (
	"fmt"
	"time"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

// levelAPFloors maps an agent level to the minimum lifetime AP
// expected at that level.
var levelAPFloors = map[int64]int64{
	1:  0,
	2:  10_000,
	3:  30_000,
	4:  70_000,
	5:  150_000,
	6:  300_000,
	7:  600_000,
	8:  1_200_000,
	9:  2_500_000,
	10: 4_000_000,
	11: 6_000_000,
	12: 8_400_000,
	13: 12_000_000,
	14: 17_000_000,
	15: 24_000_000,
	16: 40_000_000,
}

const (
	minLevel = 1
	maxLevel = 16

	// Lifetime AP above which a low current-AP balance looks odd
	activePlayerAP = 5_000_000

	dateLayout = "2006-01-02"
)

// Validator evaluates cross-field business rules. Pure; all state is
// the injected clock.
type Validator struct {
	clock func() time.Time
}

// New creates a business-rule validator
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a validator with an explicit clock, for tests
func NewWithClock(clock func() time.Time) *Validator {
	return &Validator{clock: clock}
}

// Validate runs every rule and returns the accumulated findings
func (v *Validator) Validate(rec *record.ParsedRecord) []common.Warning {
	report := &common.Report{}
	v.checkAPConsistency(rec, report)
	v.checkLevelProgression(rec, report)
	v.checkBuildingRatios(rec, report)
	v.checkDiscoveryRatios(rec, report)
	v.checkCombatRatios(rec, report)
	v.checkTemporal(rec, report)
	return report.Warnings
}

// checkAPConsistency compares the current AP balance against lifetime
// AP. Spending AP is impossible beyond what was ever earned.
func (v *Validator) checkAPConsistency(rec *record.ParsedRecord, report *common.Report) {
	currentField, hasCurrent := rec.ByIdx(stat.IdxCurrentAP)
	lifetimeField, hasLifetime := rec.ByIdx(stat.IdxLifetimeAP)
	if !hasCurrent || !hasLifetime {
		return
	}

	current, curErr := currentField.IntValue()
	lifetime, lifeErr := lifetimeField.IntValue()
	if curErr != nil || lifeErr != nil {
		report.Add(common.Warning{
			Kind:     "invalid_ap_format",
			Message:  fmt.Sprintf("invalid AP format: current=%q, lifetime=%q", currentField.RawValue, lifetimeField.RawValue),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{currentField.Key, lifetimeField.Key},
		})
		return
	}

	if current > lifetime {
		report.Add(common.Warning{
			Kind:     "ap_inconsistency",
			Message:  fmt.Sprintf("current AP (%d) exceeds lifetime AP (%d)", current, lifetime),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{currentField.Key, lifetimeField.Key},
		})
		return
	}

	if lifetime > activePlayerAP && float64(current) < float64(lifetime)*0.8 {
		report.Add(common.Warning{
			Kind:     "low_current_ap",
			Message:  fmt.Sprintf("current AP is unusually low compared to lifetime AP: current=%d, lifetime=%d", current, lifetime),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{currentField.Key, lifetimeField.Key},
		})
	}
}

// checkLevelProgression validates the stated level against the AP
// floor table.
func (v *Validator) checkLevelProgression(rec *record.ParsedRecord, report *common.Report) {
	levelField, hasLevel := rec.ByIdx(stat.IdxLevel)
	lifetimeField, hasLifetime := rec.ByIdx(stat.IdxLifetimeAP)
	if !hasLevel || !hasLifetime {
		return
	}

	level, err := levelField.IntValue()
	if err != nil {
		report.Add(common.Warning{
			Kind:     "invalid_level_format",
			Message:  fmt.Sprintf("invalid level format: %q", levelField.RawValue),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{levelField.Key},
		})
		return
	}

	if level < minLevel || level > maxLevel {
		report.Add(common.Warning{
			Kind:     "invalid_level",
			Message:  fmt.Sprintf("invalid level: %d (valid range %d-%d)", level, minLevel, maxLevel),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{levelField.Key},
		})
		return
	}

	lifetime, err := lifetimeField.IntValue()
	if err != nil {
		// Reported as invalid_ap_format by the AP consistency rule
		return
	}

	if floor := levelAPFloors[level]; lifetime < floor {
		report.Add(common.Warning{
			Kind:     "insufficient_ap_for_level",
			Message:  fmt.Sprintf("level %d typically requires at least %d AP, record shows %d", level, floor, lifetime),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{levelField.Key, lifetimeField.Key},
		})
		return
	}

	if level < maxLevel {
		nextFloor := levelAPFloors[level+1]
		if float64(lifetime) > float64(nextFloor)*1.5 {
			report.Add(common.Warning{
				Kind:     "excessive_ap_for_level",
				Message:  fmt.Sprintf("lifetime AP (%d) is unusually high for level %d", lifetime, level),
				Severity: common.SeverityInfo,
				Fields:   []record.FieldKey{levelField.Key, lifetimeField.Key},
			})
		}
	}
}

func (v *Validator) checkBuildingRatios(rec *record.ParsedRecord, report *common.Report) {
	resonators, hasResonators := rec.IntByIdx(stat.IdxResonatorsDeployed)
	links, hasLinks := rec.IntByIdx(stat.IdxLinksCreated)
	fields, hasFields := rec.IntByIdx(stat.IdxControlFields)
	mu, hasMU := rec.IntByIdx(stat.IdxMUCaptured)

	if hasResonators && hasLinks && resonators > 0 && links > resonators*2 {
		report.Add(common.Warning{
			Kind:     "unusual_building_ratio",
			Message:  fmt.Sprintf("links created (%d) is unusually high for %d resonators deployed", links, resonators),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{record.StatKey(stat.IdxLinksCreated), record.StatKey(stat.IdxResonatorsDeployed)},
		})
	}

	if hasLinks && hasFields && links > 0 && fields > links*3 {
		report.Add(common.Warning{
			Kind:     "unusual_field_ratio",
			Message:  fmt.Sprintf("control fields (%d) is unusually high for %d links created", fields, links),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{record.StatKey(stat.IdxControlFields), record.StatKey(stat.IdxLinksCreated)},
		})
	}

	if hasFields && hasMU && fields > 100 && mu < fields*1000 {
		report.Add(common.Warning{
			Kind:     "low_mu_per_field",
			Message:  fmt.Sprintf("MU captured (%d) seems low for %d control fields created", mu, fields),
			Severity: common.SeverityInfo,
			Fields:   []record.FieldKey{record.StatKey(stat.IdxMUCaptured), record.StatKey(stat.IdxControlFields)},
		})
	}
}

func (v *Validator) checkDiscoveryRatios(rec *record.ParsedRecord, report *common.Report) {
	portals, hasPortals := rec.IntByIdx(stat.IdxUniquePortals)
	xm, hasXM := rec.IntByIdx(stat.IdxXMCollected)
	distance, hasDistance := rec.IntByIdx(stat.IdxDistanceWalked)
	hacks, hasHacks := rec.IntByIdx(stat.IdxHacks)

	if hasPortals && hasDistance && portals > 100 && float64(distance) < float64(portals)*0.3 {
		report.Add(common.Warning{
			Kind:     "low_distance_for_portals",
			Message:  fmt.Sprintf("distance walked (%d km) seems low for %d unique portals visited", distance, portals),
			Severity: common.SeverityInfo,
			Fields:   []record.FieldKey{record.StatKey(stat.IdxDistanceWalked), record.StatKey(stat.IdxUniquePortals)},
		})
	}

	if hasHacks && hasXM && hacks > 1000 && xm < hacks*50 {
		report.Add(common.Warning{
			Kind:     "low_xm_for_hacks",
			Message:  fmt.Sprintf("XM collected (%d) seems low for %d hacks", xm, hacks),
			Severity: common.SeverityInfo,
			Fields:   []record.FieldKey{record.StatKey(stat.IdxXMCollected), record.StatKey(stat.IdxHacks)},
		})
	}
}

func (v *Validator) checkCombatRatios(rec *record.ParsedRecord, report *common.Report) {
	destroyed, hasDestroyed := rec.IntByIdx(stat.IdxResonatorsDestroyed)
	neutralized, hasNeutralized := rec.IntByIdx(stat.IdxPortalsNeutralized)

	if hasDestroyed && hasNeutralized && destroyed > 0 && neutralized > destroyed*4 {
		report.Add(common.Warning{
			Kind:     "unusual_combat_ratio",
			Message:  fmt.Sprintf("portals neutralized (%d) is unusually high for %d resonators destroyed", neutralized, destroyed),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{record.StatKey(stat.IdxPortalsNeutralized), record.StatKey(stat.IdxResonatorsDestroyed)},
		})
	}
}

func (v *Validator) checkTemporal(rec *record.ParsedRecord, report *common.Report) {
	dateField, found := rec.ByIdx(stat.IdxDate)
	if !found {
		return
	}

	statsDate, err := time.Parse(dateLayout, dateField.RawValue)
	if err != nil {
		report.Add(common.Warning{
			Kind:     "invalid_date_format",
			Message:  fmt.Sprintf("invalid date format: %q", dateField.RawValue),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{dateField.Key},
		})
		return
	}

	now := v.clock().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if statsDate.After(today) {
		days := int(statsDate.Sub(today).Hours() / 24)
		report.Add(common.Warning{
			Kind:     "future_date",
			Message:  fmt.Sprintf("stats date is %d days in the future: %s", days, dateField.RawValue),
			Severity: common.SeverityError,
			Fields:   []record.FieldKey{dateField.Key},
		})
		return
	}

	if days := int(today.Sub(statsDate).Hours() / 24); days > 730 {
		report.Add(common.Warning{
			Kind:     "very_old_date",
			Message:  fmt.Sprintf("stats date is very old (%d days ago): %s", days, dateField.RawValue),
			Severity: common.SeverityWarning,
			Fields:   []record.FieldKey{dateField.Key},
		})
	}
}
