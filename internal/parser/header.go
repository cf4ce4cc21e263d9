package parser

import (
	"fmt"
	"strings"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
	"github.com/ingressstats/agentstats/internal/domain/model/stat"
)

// ResolvedHeader is one header token after catalog resolution. Known
// is false when the token did not match any catalog entry; Raw then
// carries the original word.
type ResolvedHeader struct {
	Raw   string
	Def   stat.StatDefinition
	Known bool
}

// resolveHeaders maps the raw header line to catalog entries,
// preserving left-to-right order.
func resolveHeaders(line string, format record.Format, catalog *stat.Catalog) []ResolvedHeader {
	if format == record.FormatTabulated {
		return resolveTabulatedHeaders(line, catalog)
	}
	return resolveSpaceHeaders(line, catalog)
}

// resolveTabulatedHeaders splits on tabs and resolves each column
// independently.
func resolveTabulatedHeaders(line string, catalog *stat.Catalog) []ResolvedHeader {
	var out []ResolvedHeader
	for _, token := range strings.Split(line, "\t") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		def, known := catalog.Resolve(token)
		out = append(out, ResolvedHeader{Raw: token, Def: def, Known: known})
	}
	return out
}

// resolveSpaceHeaders handles the hard case: header words carry no
// delimiter from adjacent headers and stat names are multi-word. Each
// catalog name present in the line is substituted with a placeholder
// token, longest names first so "Lifetime AP" is claimed before any
// shorter name could match inside it. Whatever splits out afterwards
// is either a placeholder (mapped back to its catalog entry) or a
// literal word kept as one unresolved header. Multi-word unknown
// headers are not reassembled.
func resolveSpaceHeaders(line string, catalog *stat.Catalog) []ResolvedHeader {
	working := line
	placeholders := make(map[string]string)

	for i, name := range catalog.NamesLongestFirst() {
		idx := strings.Index(working, name)
		if idx == -1 {
			idx = strings.Index(strings.ToLower(working), strings.ToLower(name))
		}
		if idx == -1 {
			continue
		}
		token := fmt.Sprintf("__STAT_%d__", i)
		working = working[:idx] + token + working[idx+len(name):]
		placeholders[token] = name
	}

	var out []ResolvedHeader
	for _, part := range strings.Fields(working) {
		if name, ok := placeholders[part]; ok {
			def, known := catalog.ByName(name)
			out = append(out, ResolvedHeader{Raw: name, Def: def, Known: known})
			continue
		}
		out = append(out, ResolvedHeader{Raw: part})
	}
	return out
}
