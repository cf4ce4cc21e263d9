// Package testutil builds synthetic stats snapshots from a catalog
// for tests.
package testutil

import (
	"strings"
	"time"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
)

// defaultValues holds a mutually consistent set of stat values: every
// business-rule ratio passes and no ceiling is exceeded.
var defaultValues = map[int]string{
	0:  "ALL TIME",
	1:  "AgentX",
	2:  "Resistance",
	3:  "2024-05-01",
	4:  "10:00:00",
	5:  "10",
	6:  "5,000,000",
	7:  "5,000,000",
	8:  "2,000",
	9:  "1,500",
	10: "300",
	11: "10,000,000",
	12: "4,000",
	13: "1,000",
	14: "20,000",
	15: "10,000",
	16: "3,000",
	17: "50,000,000",
	18: "8,000",
	19: "50",
	20: "2,000,000",
	21: "9,000",
	22: "600",
	23: "15,000",
	24: "3,000",
	25: "2,500",
	26: "900",
	27: "1,200,000",
	28: "50,000",
	29: "40",
	30: "12",
	31: "4",
	32: "35",
	33: "60,000",
}

type extraField struct {
	header string
	value  string
}

// StatsText builds synthetic snapshot text from a catalog
type StatsText struct {
	catalog   *stat.Catalog
	overrides map[int]string
	drops     map[int]bool
	extras    []extraField
}

// NewStatsText creates a builder with consistent default values
func NewStatsText(catalog *stat.Catalog) *StatsText {
	return &StatsText{
		catalog:   catalog,
		overrides: make(map[int]string),
		drops:     make(map[int]bool),
	}
}

// WithValue overrides the value of one stat
func (b *StatsText) WithValue(idx int, value string) *StatsText {
	b.overrides[idx] = value
	return b
}

// Without drops a stat entirely
func (b *StatsText) Without(idx int) *StatsText {
	b.drops[idx] = true
	return b
}

// WithExtraField appends a header/value pair unknown to the catalog
func (b *StatsText) WithExtraField(header, value string) *StatsText {
	b.extras = append(b.extras, extraField{header: header, value: value})
	return b
}

func (b *StatsText) pairs() (headers, values []string) {
	for _, def := range b.catalog.Definitions() {
		if b.drops[def.Idx] {
			continue
		}
		value, ok := b.overrides[def.Idx]
		if !ok {
			value = defaultValues[def.Idx]
		}
		headers = append(headers, def.Name)
		values = append(values, value)
	}
	for _, extra := range b.extras {
		headers = append(headers, extra.header)
		values = append(values, extra.value)
	}
	return headers, values
}

// Tabulated renders the two-line tab-delimited layout
func (b *StatsText) Tabulated() string {
	headers, values := b.pairs()
	return strings.Join(headers, "\t") + "\n" + strings.Join(values, "\t")
}

// SpaceDelimited renders the two-line layout with every tab replaced
// by a space, the way the transport strips delimiters.
func (b *StatsText) SpaceDelimited() string {
	headers, values := b.pairs()
	return strings.Join(headers, " ") + "\n" + strings.Join(values, " ")
}

// SingleLine renders the space-delimited layout collapsed onto one
// line, forcing the ALL TIME recovery split.
func (b *StatsText) SingleLine() string {
	headers, values := b.pairs()
	return strings.Join(headers, " ") + " " + strings.Join(values, " ")
}

// Record assembles the same data directly into a ParsedRecord,
// bypassing the parser, for validator tests.
func (b *StatsText) Record(parsedAt time.Time) *record.ParsedRecord {
	rec := record.New("00000000000000000000000000", record.FormatTabulated, parsedAt)
	pos := 0
	for _, def := range b.catalog.Definitions() {
		if b.drops[def.Idx] {
			continue
		}
		value, ok := b.overrides[def.Idx]
		if !ok {
			value = defaultValues[def.Idx]
		}
		_ = rec.Add(record.ParsedField{
			Key:           record.StatKey(def.Idx),
			Idx:           def.Idx,
			CanonicalName: def.Name,
			RawHeader:     def.Name,
			RawValue:      value,
			Type:          def.Type,
			Position:      pos,
		})
		pos++
	}
	for _, extra := range b.extras {
		_ = rec.Add(record.ParsedField{
			Key:           record.UnknownKey(pos),
			Idx:           -1,
			CanonicalName: extra.header,
			RawHeader:     extra.header,
			RawValue:      extra.value,
			Type:          stat.InferValueType(extra.value),
			Unknown:       true,
			Position:      pos,
		})
		pos++
	}
	return rec
}
