package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingressstats/agentstats/internal/infra/catalog"
	"github.com/ingressstats/agentstats/internal/testutil"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

var testClock = func() time.Time {
	return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
}

func builder(t *testing.T) *testutil.StatsText {
	t.Helper()
	return testutil.NewStatsText(catalog.MustDefault())
}

func kinds(ws []common.Warning) map[string]common.Severity {
	out := make(map[string]common.Severity, len(ws))
	for _, w := range ws {
		out[w.Kind] = w.Severity
	}
	return out
}

func TestValidateCleanRecord(t *testing.T) {
	v := NewWithClock(testClock)
	ws := v.Validate(builder(t).Record(testClock()))
	assert.Empty(t, ws, "consistent record must produce no findings")
}

func TestAPConsistency(t *testing.T) {
	v := NewWithClock(testClock)

	t.Run("current equal to lifetime passes", func(t *testing.T) {
		rec := builder(t).WithValue(6, "5,000,000").WithValue(7, "5,000,000").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "ap_inconsistency")
	})

	t.Run("current one above lifetime fails", func(t *testing.T) {
		rec := builder(t).WithValue(6, "5,000,000").WithValue(7, "5,000,001").Record(testClock())
		ws := v.Validate(rec)

		count := 0
		for _, w := range ws {
			if w.Kind == "ap_inconsistency" {
				count++
				assert.Equal(t, common.SeverityError, w.Severity)
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("low current balance for an active player", func(t *testing.T) {
		rec := builder(t).WithValue(6, "10,000,000").WithValue(7, "7,000,000").Record(testClock())
		got := kinds(v.Validate(rec))
		require.Contains(t, got, "low_current_ap")
		assert.Equal(t, common.SeverityWarning, got["low_current_ap"])
	})

	t.Run("exactly 80 percent is not low", func(t *testing.T) {
		rec := builder(t).WithValue(6, "10,000,000").WithValue(7, "8,000,000").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "low_current_ap")
	})

	t.Run("malformed AP value", func(t *testing.T) {
		rec := builder(t).WithValue(7, "abc").Record(testClock())
		got := kinds(v.Validate(rec))
		require.Contains(t, got, "invalid_ap_format")
		assert.Equal(t, common.SeverityError, got["invalid_ap_format"])
	})

	t.Run("missing current AP skips the rule", func(t *testing.T) {
		rec := builder(t).Without(7).Record(testClock())
		got := kinds(v.Validate(rec))
		assert.NotContains(t, got, "ap_inconsistency")
		assert.NotContains(t, got, "low_current_ap")
	})
}

func TestLevelProgression(t *testing.T) {
	v := NewWithClock(testClock)

	tests := []struct {
		name     string
		level    string
		lifetime string
		wantKind string
	}{
		{"consistent level", "10", "5,000,000", ""},
		{"level at floor exactly", "10", "4,000,000", ""},
		{"malformed level", "ten", "5,000,000", "invalid_level_format"},
		{"level above range", "17", "5,000,000", "invalid_level"},
		{"level below range", "0", "5,000,000", "invalid_level"},
		{"too little AP for level", "16", "5,000,000", "insufficient_ap_for_level"},
		{"suspiciously much AP for level", "2", "5,000,000", "excessive_ap_for_level"},
		{"max level has no upper bound", "16", "100,000,000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := builder(t).WithValue(5, tt.level).WithValue(6, tt.lifetime).WithValue(7, tt.lifetime).Record(testClock())
			got := kinds(v.Validate(rec))

			for _, kind := range []string{"invalid_level_format", "invalid_level", "insufficient_ap_for_level", "excessive_ap_for_level"} {
				if kind == tt.wantKind {
					assert.Contains(t, got, kind)
				} else {
					assert.NotContains(t, got, kind)
				}
			}
		})
	}
}

func TestBuildingRatios(t *testing.T) {
	v := NewWithClock(testClock)

	t.Run("links at twice resonators passes", func(t *testing.T) {
		rec := builder(t).WithValue(14, "1,000").WithValue(15, "2,000").WithValue(16, "500").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "unusual_building_ratio")
	})

	t.Run("links just above twice resonators", func(t *testing.T) {
		rec := builder(t).WithValue(14, "1,000").WithValue(15, "2,001").WithValue(16, "500").Record(testClock())
		got := kinds(v.Validate(rec))
		require.Contains(t, got, "unusual_building_ratio")
		assert.Equal(t, common.SeverityWarning, got["unusual_building_ratio"])
	})

	t.Run("fields just above three times links", func(t *testing.T) {
		rec := builder(t).WithValue(15, "1,000").WithValue(16, "3,001").WithValue(17, "10,000,000").Record(testClock())
		assert.Contains(t, kinds(v.Validate(rec)), "unusual_field_ratio")
	})

	t.Run("low MU per field", func(t *testing.T) {
		rec := builder(t).WithValue(16, "200").WithValue(17, "199,999").Record(testClock())
		got := kinds(v.Validate(rec))
		require.Contains(t, got, "low_mu_per_field")
		assert.Equal(t, common.SeverityInfo, got["low_mu_per_field"])
	})

	t.Run("MU rule needs a real field count", func(t *testing.T) {
		rec := builder(t).WithValue(16, "100").WithValue(17, "1").WithValue(15, "100").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "low_mu_per_field")
	})
}

func TestDiscoveryRatios(t *testing.T) {
	v := NewWithClock(testClock)

	t.Run("distance at threshold passes", func(t *testing.T) {
		rec := builder(t).WithValue(8, "1,000").WithValue(13, "300").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "low_distance_for_portals")
	})

	t.Run("distance just below threshold", func(t *testing.T) {
		rec := builder(t).WithValue(8, "1,000").WithValue(13, "299").Record(testClock())
		assert.Contains(t, kinds(v.Validate(rec)), "low_distance_for_portals")
	})

	t.Run("low XM for hacks", func(t *testing.T) {
		rec := builder(t).WithValue(28, "2,000").WithValue(11, "99,999").Record(testClock())
		assert.Contains(t, kinds(v.Validate(rec)), "low_xm_for_hacks")
	})

	t.Run("XM at threshold passes", func(t *testing.T) {
		rec := builder(t).WithValue(28, "2,000").WithValue(11, "100,000").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "low_xm_for_hacks")
	})
}

func TestCombatRatios(t *testing.T) {
	v := NewWithClock(testClock)

	t.Run("neutralized at four times destroyed passes", func(t *testing.T) {
		rec := builder(t).WithValue(23, "1,000").WithValue(24, "4,000").Record(testClock())
		assert.NotContains(t, kinds(v.Validate(rec)), "unusual_combat_ratio")
	})

	t.Run("neutralized just above four times destroyed", func(t *testing.T) {
		rec := builder(t).WithValue(23, "1,000").WithValue(24, "4,001").Record(testClock())
		got := kinds(v.Validate(rec))
		require.Contains(t, got, "unusual_combat_ratio")
		assert.Equal(t, common.SeverityWarning, got["unusual_combat_ratio"])
	})
}

func TestTemporal(t *testing.T) {
	v := NewWithClock(testClock)

	tests := []struct {
		name     string
		date     string
		wantKind string
		severity common.Severity
	}{
		{"recent date", "2024-05-01", "", ""},
		{"future date is an error here", "2024-06-01", "future_date", common.SeverityError},
		{"within two years", "2023-05-01", "", ""},
		{"older than two years", "2022-01-01", "very_old_date", common.SeverityWarning},
		{"malformed date", "yesterday", "invalid_date_format", common.SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := builder(t).WithValue(3, tt.date).Record(testClock())
			got := kinds(v.Validate(rec))

			for _, kind := range []string{"future_date", "very_old_date", "invalid_date_format"} {
				if kind == tt.wantKind {
					require.Contains(t, got, kind)
					assert.Equal(t, tt.severity, got[kind])
				} else {
					assert.NotContains(t, got, kind)
				}
			}
		})
	}
}
