package stats

import "github.com/ingressstats/agentstats/internal/domain/model/stat"

// Per-stat ceilings used to flag data-entry errors. Values above the
// ceiling are implausible for any legitimate account.
var maxReasonable = map[int]int64{
	stat.IdxLifetimeAP:         10_000_000_000,
	stat.IdxUniquePortals:      1_000_000,
	stat.IdxXMCollected:        1_000_000_000,
	stat.IdxDistanceWalked:     100_000,
	stat.IdxResonatorsDeployed: 10_000_000,
	stat.IdxLinksCreated:       1_000_000,
	stat.IdxControlFields:      500_000,
	stat.IdxMUCaptured:         100_000_000_000,
}

const defaultCeiling int64 = 1_000_000_000

// ceiling returns the maximum reasonable value for a stat
func ceiling(idx int) int64 {
	if max, ok := maxReasonable[idx]; ok {
		return max
	}
	return defaultCeiling
}
