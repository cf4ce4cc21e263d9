package stat

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is the read-only table of known stat definitions. It is
// constructed once at startup and safe for concurrent use; every lookup
// returns a copy of the definition.
type Catalog struct {
	defs         []StatDefinition
	byIdx        map[int]int    // idx -> position in defs
	byName       map[string]int // canonical name -> position in defs
	longestFirst []string       // names sorted by length descending
}

// NewCatalog builds a catalog from a list of definitions, validating
// that indices and names are unique and well-formed.
func NewCatalog(defs []StatDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog: no definitions")
	}

	c := &Catalog{
		defs:   make([]StatDefinition, len(defs)),
		byIdx:  make(map[int]int, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	copy(c.defs, defs)

	for i, def := range c.defs {
		if def.Idx < 0 {
			return nil, fmt.Errorf("catalog: negative idx %d for %q", def.Idx, def.Name)
		}
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("catalog: empty name at idx %d", def.Idx)
		}
		if !def.Type.IsValid() {
			return nil, fmt.Errorf("catalog: invalid type %q for %q", def.Type, def.Name)
		}
		if _, dup := c.byIdx[def.Idx]; dup {
			return nil, fmt.Errorf("catalog: duplicate idx %d", def.Idx)
		}
		if _, dup := c.byName[def.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate name %q", def.Name)
		}
		c.byIdx[def.Idx] = i
		c.byName[def.Name] = i
	}

	c.longestFirst = make([]string, len(c.defs))
	for i, def := range c.defs {
		c.longestFirst[i] = def.Name
	}
	// Longer names first so "Lifetime AP" is claimed before a shorter
	// name that could match inside it. Ties keep declaration order.
	sort.SliceStable(c.longestFirst, func(a, b int) bool {
		return len(c.longestFirst[a]) > len(c.longestFirst[b])
	})

	return c, nil
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Definitions returns the definitions in declaration order
func (c *Catalog) Definitions() []StatDefinition {
	out := make([]StatDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByIdx looks up a definition by catalog index
func (c *Catalog) ByIdx(idx int) (StatDefinition, bool) {
	i, ok := c.byIdx[idx]
	if !ok {
		return StatDefinition{}, false
	}
	return c.defs[i], true
}

// ByName looks up a definition by exact canonical name
func (c *Catalog) ByName(name string) (StatDefinition, bool) {
	i, ok := c.byName[name]
	if !ok {
		return StatDefinition{}, false
	}
	return c.defs[i], true
}

// Resolve maps a raw header token to a definition: exact name first,
// then case-insensitive equality, then case-insensitive containment of
// the canonical name inside the token, in declaration order. First
// match wins.
func (c *Catalog) Resolve(token string) (StatDefinition, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return StatDefinition{}, false
	}
	if def, ok := c.ByName(token); ok {
		return def, true
	}
	for _, def := range c.defs {
		if strings.EqualFold(def.Name, token) {
			return def, true
		}
	}
	lower := strings.ToLower(token)
	for _, def := range c.defs {
		if strings.Contains(lower, strings.ToLower(def.Name)) {
			return def, true
		}
	}
	return StatDefinition{}, false
}

// NamesLongestFirst returns all canonical names sorted by string length
// descending, for multi-word header resolution.
func (c *Catalog) NamesLongestFirst() []string {
	out := make([]string, len(c.longestFirst))
	copy(out, c.longestFirst)
	return out
}

// BadgeLevel computes the badge rank reached for a stat value and the
// next threshold to aim for. rank is empty below Bronze; next is zero
// once the ladder is maxed out. ok reports whether the stat has a
// badge ladder at all.
func (c *Catalog) BadgeLevel(idx int, value int64) (rank string, next int64, ok bool) {
	def, found := c.ByIdx(idx)
	if !found || !def.HasBadge() {
		return "", 0, false
	}

	for i, threshold := range def.Badge.Levels {
		if value >= threshold {
			if i < len(BadgeRanks) {
				rank = BadgeRanks[i]
			}
			if i+1 < len(def.Badge.Levels) {
				next = def.Badge.Levels[i+1]
			} else {
				next = 0
			}
		} else {
			if next == 0 && rank == "" {
				next = threshold
			}
			break
		}
	}
	return rank, next, true
}
