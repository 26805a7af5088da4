package allocation

import "github.com/Pinoccchio/LawbotWeb-sub002/config"

// WorkloadLevel is the discretized representation of an officer's current
// case load, used for allocation ranking. Lower sorts first.
type WorkloadLevel int

// Workload tiers, lowest to highest
const (
	WorkloadLow WorkloadLevel = iota
	WorkloadMedium
	WorkloadHigh
	WorkloadOverloaded
)

func (l WorkloadLevel) String() string {
	switch l {
	case WorkloadLow:
		return "low"
	case WorkloadMedium:
		return "medium"
	case WorkloadHigh:
		return "high"
	case WorkloadOverloaded:
		return "overloaded"
	}
	return "unknown"
}

// Score derives the workload tier from an officer's active-case count and
// the unit capacity ceiling. It is a pure function and must be re-evaluated
// on every read; the value stored on the officer document is only a cached
// projection of this.
//
// Thresholds relative to the ceiling: below 40% is low, 40-70% medium,
// 70-100% high, anything above the ceiling overloaded.
func Score(activeCases, ceiling int) WorkloadLevel {
	if ceiling <= 0 {
		ceiling = config.DefaultWorkloadCeiling
	}
	if activeCases < 0 {
		activeCases = 0
	}
	switch {
	case activeCases*10 < ceiling*4:
		return WorkloadLow
	case activeCases*10 < ceiling*7:
		return WorkloadMedium
	case activeCases <= ceiling:
		return WorkloadHigh
	default:
		return WorkloadOverloaded
	}
}
