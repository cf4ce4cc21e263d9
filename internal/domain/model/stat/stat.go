// Package stat defines the immutable catalog of known statistic
// definitions used to resolve raw header text from a pasted snapshot.
package stat

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType represents the value type of a statistic
type ValueType string

const (
	ValueNumeric ValueType = "N" // integer value, comma separators allowed
	ValueText    ValueType = "S" // free-form text value
)

// String returns the string representation
func (t ValueType) String() string {
	return string(t)
}

// IsValid returns true if the value type is valid
func (t ValueType) IsValid() bool {
	switch t {
	case ValueNumeric, ValueText:
		return true
	default:
		return false
	}
}

// Group represents the stat group as shown in the mobile application
type Group string

const (
	GroupHead          Group = "HEAD"
	GroupDiscovery     Group = "DISCOVERY"
	GroupBuilding      Group = "BUILDING"
	GroupResource      Group = "RESOURCE"
	GroupCollaboration Group = "COLLABORATION"
	GroupCombat        Group = "COMBAT"
	GroupMindControl   Group = "MIND_CONTROL"
	GroupDailyBonus    Group = "DAILY_BONUS"
	GroupAchievements  Group = "ACHIEVEMENTS"
	GroupSpecial       Group = "SPECIAL"
)

// BadgeRanks lists the badge ladder ranks in ascending order
var BadgeRanks = []string{"Bronze", "Silver", "Gold", "Platinum", "Onyx"}

// Badge describes the badge ladder attached to a statistic.
// Levels holds the threshold value for each rank, ascending.
type Badge struct {
	Name   string  `yaml:"name"`
	Levels []int64 `yaml:"levels"`
}

// StatDefinition is a single entry of the stat catalog.
// Definitions are immutable; the catalog owns them exclusively.
type StatDefinition struct {
	Idx         int       `yaml:"idx"`
	Group       Group     `yaml:"group"`
	Type        ValueType `yaml:"type"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Badge       *Badge    `yaml:"badges,omitempty"`
}

// HasBadge returns true if the stat carries a badge ladder
func (d StatDefinition) HasBadge() bool {
	return d.Badge != nil && len(d.Badge.Levels) > 0
}

// Well-known catalog indices. The head stats (0-7) have fixed positions
// in the catalog; the remaining constants name the stats the business
// rules reason about.
const (
	IdxTimeSpan            = 0
	IdxAgentName           = 1
	IdxFaction             = 2
	IdxDate                = 3
	IdxTime                = 4
	IdxLevel               = 5
	IdxLifetimeAP          = 6
	IdxCurrentAP           = 7
	IdxUniquePortals       = 8
	IdxXMCollected         = 11
	IdxDistanceWalked      = 13
	IdxResonatorsDeployed  = 14
	IdxLinksCreated        = 15
	IdxControlFields       = 16
	IdxMUCaptured          = 17
	IdxResonatorsDestroyed = 23
	IdxPortalsNeutralized  = 24
	IdxHacks               = 28
)

// RequiredIndices lists the catalog indices every accepted record must
// contain: agent name, faction, date, and time.
var RequiredIndices = []int{IdxAgentName, IdxFaction, IdxDate, IdxTime}

// InferValueType guesses the type of an unknown stat from its raw
// value: numeric when the comma-stripped value is an integer string.
func InferValueType(value string) ValueType {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if _, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return ValueNumeric
	}
	return ValueText
}

// FormatValue formats a stat value with its unit and K/M compaction for
// display. Mirrors the presentation used by the mobile application.
func FormatValue(def StatDefinition, value int64) string {
	switch def.Idx {
	case IdxDistanceWalked, 29, 32:
		return fmt.Sprintf("%s km", groupDigits(value))
	case IdxXMCollected, 20, 27:
		return fmt.Sprintf("%s XM", groupDigits(value))
	case IdxMUCaptured:
		if value >= 1000000 {
			return fmt.Sprintf("%.1fM MU", float64(value)/1000000)
		}
		if value >= 1000 {
			return fmt.Sprintf("%.1fK MU", float64(value)/1000)
		}
		return fmt.Sprintf("%s MU", groupDigits(value))
	case 30, 31:
		return fmt.Sprintf("%s days", groupDigits(value))
	}

	if value >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(value)/1000000)
	}
	if value >= 1000 {
		return fmt.Sprintf("%.1fK", float64(value)/1000)
	}
	return groupDigits(value)
}

// groupDigits renders an integer with comma thousand separators
func groupDigits(value int64) string {
	s := fmt.Sprintf("%d", value)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
