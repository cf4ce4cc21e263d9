package parser

import (
	"strings"

	"github.com/ingressstats/agentstats/internal/domain/model/record"
)

// DetectFormat classifies normalized text. A tab character anywhere
// selects the tabulated layout; no other signal is consulted.
func DetectFormat(text string) record.Format {
	if strings.ContainsRune(text, '\t') {
		return record.FormatTabulated
	}
	return record.FormatSpaceDelimited
}
