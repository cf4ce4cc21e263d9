// Package parser turns free-form pasted stats text into a structured
// ParsedRecord: normalization, format detection, header resolution,
// value alignment, and assembly.
package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const allTimeMarker = "ALL TIME"

var (
	multiSpace   = regexp.MustCompile(` {2,}`)
	multiNewline = regexp.MustCompile(`\n{2,}`)
)

// Normalize cleans raw pasted text: Unicode NFC, outer quote pairs
// stripped, runs of spaces and newlines collapsed, outer whitespace
// trimmed. Normalize is pure and idempotent.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = strings.TrimSpace(text)
	text = stripOuterQuotes(text)
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// stripOuterQuotes removes matching quote pairs wrapping the whole
// text. Mobile share sheets sometimes wrap the paste in quotes.
func stripOuterQuotes(text string) string {
	for len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first != last || (first != '"' && first != '\'') {
			break
		}
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

// LooksLikeStats is the validity pre-check: the text must mention the
// time span, an agent field, and the ALL TIME marker.
func LooksLikeStats(text string) bool {
	upper := strings.ToUpper(text)
	hasTimeSpan := strings.Contains(upper, "TIME SPAN")
	hasAgent := strings.Contains(upper, "AGENT NAME") || strings.Contains(upper, "AGENT FACTION")
	hasAllTime := strings.Contains(upper, allTimeMarker)
	return hasTimeSpan && hasAgent && hasAllTime
}

// SplitHeaderValues separates normalized text into the header line and
// the values line. Multi-line input uses the first two lines. A
// single-line paste is recovered by splitting at the first ALL TIME
// occurrence (exact case tried first, case-insensitive fallback); this
// is the only structural recovery performed.
func SplitHeaderValues(text string) (header, values string, ok bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) >= 2 {
		return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), true
	}

	single := lines[0]

	if strings.Contains(single, "\t") {
		idx := strings.Index(single, "\t"+allTimeMarker)
		if idx == -1 {
			idx = strings.Index(strings.ToUpper(single), "\t"+allTimeMarker)
		}
		if idx != -1 {
			return strings.TrimSpace(single[:idx]), strings.TrimSpace(single[idx+1:]), true
		}
	}

	idx := strings.Index(single, allTimeMarker)
	if idx == -1 {
		idx = strings.Index(strings.ToUpper(single), allTimeMarker)
	}
	if idx > 0 {
		return strings.TrimSpace(single[:idx]), strings.TrimSpace(single[idx:]), true
	}

	return "", "", false
}
