package parser

import (
	"regexp"
	"strings"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
)

const minValueTokens = 5

// The time-span marker's word count is variable, so the date token is
// the only reliable anchor inside a space-delimited values line.
var dateAnchor = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// alignValues splits the values line into raw value tokens in header
// order.
func alignValues(line string, format record.Format) ([]string, *ParseError) {
	if strings.TrimSpace(line) == "" {
		return nil, reject(CodeEmptyValues)
	}
	if format == record.FormatTabulated {
		return alignTabulatedValues(line)
	}
	return alignSpaceValues(line)
}

// alignTabulatedValues splits on tabs. The first column must be the
// exact ALL TIME marker.
func alignTabulatedValues(line string) ([]string, *ParseError) {
	var values []string
	for _, token := range strings.Split(line, "\t") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		values = append(values, token)
	}
	if len(values) < minValueTokens {
		return nil, rejectf(CodeTooFewFields, "%d value columns", len(values))
	}
	if values[0] != allTimeMarker {
		return nil, rejectf(CodeNotAllTime, "first column %q", values[0])
	}
	return values, nil
}

// alignSpaceValues tokenizes on unquoted spaces, keeping quoted runs
// as single tokens, then merges a leading ALL + TIME pair into the one
// compound marker token. That is the only token-merge rule applied.
func alignSpaceValues(line string) ([]string, *ParseError) {
	values := splitQuoted(line)
	if len(values) < minValueTokens {
		return nil, rejectf(CodeTooFewValues, "%d value tokens", len(values))
	}

	found := false
	for _, token := range values {
		if dateAnchor.MatchString(token) {
			found = true
			break
		}
	}
	if !found {
		return nil, reject(CodeDateNotFound)
	}

	if len(values) >= 2 && strings.EqualFold(values[0], "ALL") && strings.EqualFold(values[1], "TIME") {
		merged := make([]string, 0, len(values)-1)
		merged = append(merged, allTimeMarker)
		merged = append(merged, values[2:]...)
		values = merged
	}

	if !strings.EqualFold(values[0], allTimeMarker) {
		return nil, rejectf(CodeNotAllTime, "first token %q", values[0])
	}

	return values, nil
}

// splitQuoted scans left to right, toggling an in-quotes flag on '"'.
// Quoted runs are preserved as single tokens including embedded
// spaces; the quote characters themselves are dropped.
func splitQuoted(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
