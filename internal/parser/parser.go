package parser

import (
	"strings"
	"time"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
)

// minParsedFields is the smallest number of fields a snapshot can
// produce and still be worth validating.
const minParsedFields = 6

// Parser runs the parsing half of the pipeline over a read-only stat
// catalog. It holds no mutable state and is safe for concurrent use.
type Parser struct {
	catalog *stat.Catalog
	clock   func() time.Time
}

// New creates a parser bound to a catalog
func New(catalog *stat.Catalog) *Parser {
	return NewWithClock(catalog, time.Now)
}

// NewWithClock creates a parser with an explicit clock, for tests
func NewWithClock(catalog *stat.Catalog, clock func() time.Time) *Parser {
	return &Parser{catalog: catalog, clock: clock}
}

// Parse turns raw pasted text into a ParsedRecord. On rejection the
// returned error is always a *ParseError and no partial record is
// returned. A panic anywhere in the pipeline surfaces as code 99.
func (p *Parser) Parse(text string) (rec *record.ParsedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = rejectf(CodeInternal, "%v", r)
		}
	}()

	text = Normalize(text)
	if !LooksLikeStats(text) {
		return nil, reject(CodeInvalidFormat)
	}

	headerLine, valuesLine, ok := SplitHeaderValues(text)
	if !ok {
		return nil, reject(CodeHeaderSplit)
	}
	if strings.TrimSpace(headerLine) == "" {
		return nil, reject(CodeNoHeaders)
	}

	format := DetectFormat(text)

	headers := resolveHeaders(headerLine, format, p.catalog)
	if len(headers) == 0 {
		return nil, reject(CodeNoHeaders)
	}

	values, perr := alignValues(valuesLine, format)
	if perr != nil {
		return nil, perr
	}

	if len(headers) < minValueTokens {
		return nil, rejectf(CodeTooFewFields, "%d headers", len(headers))
	}

	parsed, perr := assemble(headers, values, format, p.clock())
	if perr != nil {
		return nil, perr
	}

	if parsed.Len() < minParsedFields {
		return nil, rejectf(CodeInsufficientStats, "%d fields, minimum %d", parsed.Len(), minParsedFields)
	}

	return parsed, nil
}
