package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ingressstats/agentstats/internal/domain/model/stat"
)

// Format represents the detected input layout
type Format string

const (
	FormatTabulated      Format = "tabulated"
	FormatSpaceDelimited Format = "space-delimited"
)

// String returns the string representation
func (f Format) String() string {
	return string(f)
}

// ParsedRecord is the assembled snapshot: an ordered map of parsed
// fields plus parse metadata. It is created once per parse and never
// mutated after assembly.
type ParsedRecord struct {
	id       string
	format   Format
	parsedAt time.Time
	fields   map[FieldKey]ParsedField
	order    []FieldKey
}

// New creates an empty record. id is the submission ULID assigned by
// the assembler.
func New(id string, format Format, parsedAt time.Time) *ParsedRecord {
	return &ParsedRecord{
		id:       id,
		format:   format,
		parsedAt: parsedAt,
		fields:   make(map[FieldKey]ParsedField),
	}
}

// ID returns the submission ID
func (r *ParsedRecord) ID() string {
	return r.id
}

// Format returns the detected input format
func (r *ParsedRecord) Format() Format {
	return r.format
}

// ParsedAt returns the parse timestamp
func (r *ParsedRecord) ParsedAt() time.Time {
	return r.parsedAt
}

// Add appends a field. The first field for a key wins; adding a
// duplicate key is an error.
func (r *ParsedRecord) Add(f ParsedField) error {
	if _, exists := r.fields[f.Key]; exists {
		return fmt.Errorf("record: duplicate field key %s", f.Key)
	}
	r.fields[f.Key] = f
	r.order = append(r.order, f.Key)
	return nil
}

// Len returns the number of fields
func (r *ParsedRecord) Len() int {
	return len(r.fields)
}

// Get returns the field for a key
func (r *ParsedRecord) Get(key FieldKey) (ParsedField, bool) {
	f, ok := r.fields[key]
	return f, ok
}

// ByIdx returns the known field with the given catalog index
func (r *ParsedRecord) ByIdx(idx int) (ParsedField, bool) {
	return r.Get(StatKey(idx))
}

// IntByIdx returns the integer value of a known field, with ok false
// when the field is absent or its value does not coerce.
func (r *ParsedRecord) IntByIdx(idx int) (int64, bool) {
	f, found := r.ByIdx(idx)
	if !found {
		return 0, false
	}
	v, err := f.IntValue()
	if err != nil {
		return 0, false
	}
	return v, true
}

// Keys returns the field keys in insertion order
func (r *ParsedRecord) Keys() []FieldKey {
	out := make([]FieldKey, len(r.order))
	copy(out, r.order)
	return out
}

// Fields returns the fields in insertion order
func (r *ParsedRecord) Fields() []ParsedField {
	out := make([]ParsedField, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.fields[key])
	}
	return out
}

// UnknownFields returns the fields whose headers did not resolve
func (r *ParsedRecord) UnknownFields() []ParsedField {
	var out []ParsedField
	for _, key := range r.order {
		if key.IsUnknown() {
			out = append(out, r.fields[key])
		}
	}
	return out
}

// AgentName returns the raw agent name value, empty when absent
func (r *ParsedRecord) AgentName() string {
	f, _ := r.ByIdx(stat.IdxAgentName)
	return f.RawValue
}

// FactionValue returns the raw faction value, empty when absent
func (r *ParsedRecord) FactionValue() string {
	f, _ := r.ByIdx(stat.IdxFaction)
	return f.RawValue
}

// DateValue returns the raw submission date value, empty when absent
func (r *ParsedRecord) DateValue() string {
	f, _ := r.ByIdx(stat.IdxDate)
	return f.RawValue
}

// TimeValue returns the raw submission time value, empty when absent
func (r *ParsedRecord) TimeValue() string {
	f, _ := r.ByIdx(stat.IdxTime)
	return f.RawValue
}

// Level returns the agent level when present and numeric
func (r *ParsedRecord) Level() (int64, bool) {
	return r.IntByIdx(stat.IdxLevel)
}

// LifetimeAP returns the lifetime AP when present and numeric
func (r *ParsedRecord) LifetimeAP() (int64, bool) {
	return r.IntByIdx(stat.IdxLifetimeAP)
}

// MarshalJSON renders the record with fields in insertion order
func (r *ParsedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string        `json:"id"`
		Format     Format        `json:"format"`
		ParsedAt   string        `json:"parsed_at"`
		FieldCount int           `json:"field_count"`
		Fields     []ParsedField `json:"fields"`
	}{
		ID:         r.id,
		Format:     r.format,
		ParsedAt:   r.parsedAt.UTC().Format(time.RFC3339),
		FieldCount: r.Len(),
		Fields:     r.Fields(),
	})
}
