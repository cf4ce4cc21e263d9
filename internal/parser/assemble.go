package parser

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
)

// assemble zips resolved headers with aligned values positionally. No
// validation happens here; upstream length checks make a mismatch
// impossible in practice, but it is still asserted.
func assemble(headers []ResolvedHeader, values []string, format record.Format, now time.Time) (*record.ParsedRecord, *ParseError) {
	if len(headers) != len(values) {
		return nil, rejectf(CodeFieldCountMismatch, "%d headers, %d values", len(headers), len(values))
	}

	rec := record.New(newSubmissionID(now), format, now)
	for i, header := range headers {
		field := record.ParsedField{
			RawHeader: header.Raw,
			RawValue:  values[i],
			Position:  i,
		}
		if header.Known {
			field.Key = record.StatKey(header.Def.Idx)
			field.Idx = header.Def.Idx
			field.CanonicalName = header.Def.Name
			field.Type = header.Def.Type
		} else {
			field.Key = record.UnknownKey(i)
			field.Idx = -1
			field.CanonicalName = header.Raw
			field.Type = stat.InferValueType(values[i])
			field.Unknown = true
		}
		// First occurrence of a key wins; a repeated header is dropped
		if err := rec.Add(field); err != nil {
			continue
		}
	}
	return rec, nil
}

// newSubmissionID generates a ULID for the assembled record
func newSubmissionID(now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
