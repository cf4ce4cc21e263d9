package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() []StatDefinition {
	return []StatDefinition{
		{Idx: 0, Group: GroupHead, Type: ValueText, Name: "Time Span"},
		{Idx: 1, Group: GroupHead, Type: ValueText, Name: "Agent Name"},
		{Idx: 2, Group: GroupHead, Type: ValueText, Name: "Agent Faction"},
		{Idx: 6, Group: GroupHead, Type: ValueNumeric, Name: "Lifetime AP"},
		{Idx: 7, Group: GroupHead, Type: ValueNumeric, Name: "Current AP"},
		{Idx: 28, Group: GroupResource, Type: ValueNumeric, Name: "Hacks",
			Badge: &Badge{Name: "Hacker", Levels: []int64{2000, 10000, 30000, 100000, 200000}}},
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]StatDefinition) []StatDefinition
		wantErr string
	}{
		{
			name:   "valid definitions",
			mutate: func(d []StatDefinition) []StatDefinition { return d },
		},
		{
			name:    "empty list",
			mutate:  func(d []StatDefinition) []StatDefinition { return nil },
			wantErr: "no definitions",
		},
		{
			name: "negative idx",
			mutate: func(d []StatDefinition) []StatDefinition {
				d[0].Idx = -1
				return d
			},
			wantErr: "negative idx",
		},
		{
			name: "blank name",
			mutate: func(d []StatDefinition) []StatDefinition {
				d[0].Name = "   "
				return d
			},
			wantErr: "empty name",
		},
		{
			name: "invalid type",
			mutate: func(d []StatDefinition) []StatDefinition {
				d[0].Type = "Z"
				return d
			},
			wantErr: "invalid type",
		},
		{
			name: "duplicate idx",
			mutate: func(d []StatDefinition) []StatDefinition {
				d[1].Idx = d[0].Idx
				return d
			},
			wantErr: "duplicate idx",
		},
		{
			name: "duplicate name",
			mutate: func(d []StatDefinition) []StatDefinition {
				d[1].Name = d[0].Name
				return d
			},
			wantErr: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.mutate(testDefs()))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	cat, err := NewCatalog(testDefs())
	require.NoError(t, err)

	assert.Equal(t, 6, cat.Len())

	def, ok := cat.ByIdx(6)
	require.True(t, ok)
	assert.Equal(t, "Lifetime AP", def.Name)

	_, ok = cat.ByIdx(99)
	assert.False(t, ok)

	def, ok = cat.ByName("Hacks")
	require.True(t, ok)
	assert.Equal(t, 28, def.Idx)

	_, ok = cat.ByName("hacks")
	assert.False(t, ok, "ByName is exact-match only")
}

func TestCatalogResolve(t *testing.T) {
	cat, err := NewCatalog(testDefs())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantIdx int
		found   bool
	}{
		{"exact name", "Lifetime AP", 6, true},
		{"case-insensitive equality", "LIFETIME AP", 6, true},
		{"padded token", "  Agent Name  ", 1, true},
		{"token contains name", "Total Hacks performed", 28, true},
		{"containment is case-insensitive", "total hacks", 28, true},
		{"no match", "Glyph Points", 0, false},
		{"empty token", "   ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := cat.Resolve(tt.token)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantIdx, def.Idx)
			}
		})
	}
}

func TestCatalogResolveDeclarationOrderWins(t *testing.T) {
	// "Lifetime AP stats" contains both "Lifetime AP" and, lowered, no
	// other name; but "AP" alone is not a catalog name so containment
	// only ever finds whole canonical names. A token containing two
	// names resolves to the earlier declared one.
	cat, err := NewCatalog(testDefs())
	require.NoError(t, err)

	def, ok := cat.Resolve("Lifetime AP and Current AP")
	require.True(t, ok)
	assert.Equal(t, 6, def.Idx)
}

func TestNamesLongestFirst(t *testing.T) {
	cat, err := NewCatalog(testDefs())
	require.NoError(t, err)

	names := cat.NamesLongestFirst()
	require.Len(t, names, 6)
	for i := 1; i < len(names); i++ {
		assert.GreaterOrEqual(t, len(names[i-1]), len(names[i]),
			"names must be sorted longest first")
	}

	// Returned slice is a copy; mutating it must not affect the catalog.
	names[0] = "mutated"
	assert.NotEqual(t, "mutated", cat.NamesLongestFirst()[0])
}

func TestBadgeLevel(t *testing.T) {
	cat, err := NewCatalog(testDefs())
	require.NoError(t, err)

	tests := []struct {
		name     string
		idx      int
		value    int64
		wantRank string
		wantNext int64
		wantOK   bool
	}{
		{"below bronze", 28, 100, "", 2000, true},
		{"exactly bronze", 28, 2000, "Bronze", 10000, true},
		{"mid ladder", 28, 45000, "Gold", 100000, true},
		{"maxed out", 28, 300000, "Onyx", 0, true},
		{"no badge on stat", 6, 1000, "", 0, false},
		{"unknown idx", 99, 1000, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, next, ok := cat.BadgeLevel(tt.idx, tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRank, rank)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}
