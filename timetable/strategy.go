package timetable

import (
	"fmt"

	"github.com/transitkit/laxago/calendar"
)

// Strategy selects how a vehicle journey's service days are
// represented in the Store, per spec.md §9 "Pluggable data layouts":
// Periodic vehicles share one days-pattern bitset across the whole
// calendar; Daily vehicles are fanned out into one single-day
// VehicleInput per day they run, trading timetable compactness for a
// trivial, always-correct day pattern.
type Strategy interface {
	// Expand turns one logical vehicle journey into one or more
	// VehicleInput values ready for Store.Insert. boards/debarks are
	// already resolved to local times; days lists the service days
	// under the vehicle's native days-pattern.
	Expand(base VehicleInput, days []calendar.Day, pool *calendar.DaysPatternPool) []VehicleInput
}

// Periodic is the default Strategy: the vehicle journey is inserted
// once, keeping whatever DaysPattern the caller already resolved.
type Periodic struct{}

// Expand returns base unchanged, wrapped in a single-element slice.
func (Periodic) Expand(base VehicleInput, days []calendar.Day, pool *calendar.DaysPatternPool) []VehicleInput {
	return []VehicleInput{base}
}

// Daily fans a vehicle journey out into one VehicleInput per service
// day, each carrying a single-day DaysPattern and a VehicleJourneyID
// suffixed with the day so distinct per-day vehicles remain
// addressable.
type Daily struct{}

// Expand returns len(days) VehicleInput values, one per day.
func (Daily) Expand(base VehicleInput, days []calendar.Day, pool *calendar.DaysPatternPool) []VehicleInput {
	out := make([]VehicleInput, 0, len(days))
	for _, day := range days {
		in := base
		in.VehicleJourneyID = fmt.Sprintf("%s@%d", base.VehicleJourneyID, day)
		in.Pattern = pool.GetOrInsertDays([]calendar.Day{day})
		out = append(out, in)
	}
	return out
}
