// Package record models the structured result of parsing one pasted
// stats snapshot: typed fields keyed by catalog index or a synthetic
// key for unresolved headers.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ingressstats/agentstats/internal/domain/model/stat"
)

// FieldKey identifies a field inside a parsed record. Known fields use
// the decimal catalog index ("6"); unknown fields use "unknown_<pos>".
type FieldKey string

// StatKey builds the key for a known stat
func StatKey(idx int) FieldKey {
	return FieldKey(strconv.Itoa(idx))
}

// UnknownKey builds the synthetic key for an unresolved header at the
// given original position.
func UnknownKey(position int) FieldKey {
	return FieldKey(fmt.Sprintf("unknown_%d", position))
}

// IsUnknown reports whether the key belongs to an unresolved header
func (k FieldKey) IsUnknown() bool {
	return strings.HasPrefix(string(k), "unknown_")
}

// ParsedField is one header/value pair after resolution. Immutable
// once created.
type ParsedField struct {
	Key           FieldKey       `json:"key"`
	Idx           int            `json:"idx"` // catalog index, -1 for unknown fields
	CanonicalName string         `json:"name"`
	RawHeader     string         `json:"raw_header"`
	RawValue      string         `json:"value"`
	Type          stat.ValueType `json:"type"`
	Unknown       bool           `json:"unknown,omitempty"`
	Position      int            `json:"position"`
}

// IntValue parses the raw value as an integer after stripping comma
// separators.
func (f ParsedField) IntValue() (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(f.RawValue), ",", "")
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: not a number: %q", f.Key, f.RawValue)
	}
	return v, nil
}
