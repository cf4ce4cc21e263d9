package stat

import "strings"

// Faction represents one of the two allowed team affiliations
type Faction string

const (
	FactionEnlightened Faction = "Enlightened"
	FactionResistance  Faction = "Resistance"
)

// String returns the string representation
func (f Faction) String() string {
	return string(f)
}

// IsValid returns true only for the two canonical faction strings.
// Matching is exact; casing and typos are submission defects.
func (f Faction) IsValid() bool {
	switch f {
	case FactionEnlightened, FactionResistance:
		return true
	default:
		return false
	}
}

// ParseFaction parses a raw faction value. Surrounding whitespace is
// tolerated, anything else must match exactly.
func ParseFaction(s string) (Faction, bool) {
	f := Faction(strings.TrimSpace(s))
	return f, f.IsValid()
}
