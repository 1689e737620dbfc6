package solver

import (
	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/gtfstime"
)

// Endpoint is one origin or destination stop with the fallback
// duration needed to walk to/from it from/to the true external point
// (spec.md §6).
type Endpoint struct {
	StopID   string
	Fallback gtfstime.PositiveDuration
}

// ComparatorType is carried for interface parity with spec.md §6's
// request shape. Solve does not read it: dominance is decided only by
// the criteria.Provider passed to Solve, and this repository implements
// only the Basic and Loads criteria engines (see DESIGN.md).
type ComparatorType int

const (
	ComparatorBasic ComparatorType = iota
	ComparatorOccupancy
	ComparatorRobustness
)

// DefaultMaxLegs is the round-count safety cap spec.md §4.H names as
// "a small constant like 8".
const DefaultMaxLegs = 8

// Request is spec.md §6's request input.
type Request struct {
	DepartureDatetime  gtfstime.UTCInstant
	Origins            []Endpoint
	Destinations       []Endpoint
	LegArrivalPenalty  gtfstime.PositiveDuration
	LegWalkingPenalty  gtfstime.PositiveDuration
	MaxJourneyDuration gtfstime.PositiveDuration
	MaxNbOfLegs        int
	CriteriaImplem     basemodel.CriteriaImplem
	ComparatorType     ComparatorType
	// Deadline, if non-zero, makes the solver test elapsed wall time at
	// each round boundary (spec.md §5 "Cancellation"). Zero means no
	// deadline.
	Deadline gtfstime.PositiveDuration
}

func (r Request) maxLegs() int {
	if r.MaxNbOfLegs > 0 {
		return r.MaxNbOfLegs
	}
	return DefaultMaxLegs
}
