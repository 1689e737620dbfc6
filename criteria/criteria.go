// Package criteria defines the Pareto-dominance capability used by
// the solver and Pareto fronts: a Criteria value carries every
// dimension a journey label might be compared on, and a Provider
// decides which of those dimensions actually participate in
// dominance. See spec.md §4.E.
package criteria

import (
	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/gtfstime"
)

// LoadsCount is a vector of segment counts by load category, indexed
// by basemodel.LoadCategory (Low, Medium, High).
type LoadsCount [3]int

// Add returns a copy of l with one more segment counted at cat.
func (l LoadsCount) Add(cat basemodel.LoadCategory) LoadsCount {
	l[cat]++
	return l
}

// Criteria is a journey label's comparison value. Every dimension is
// always populated; a Provider's IsLower decides which of them
// participate in dominance, so the same value works for both the
// basic and the loads instantiation.
type Criteria struct {
	ArrivalTime       gtfstime.UTCInstant
	NbLegs            int
	FallbackDuration  gtfstime.PositiveDuration
	TransfersDuration gtfstime.PositiveDuration
	Loads             LoadsCount
}

// weightedDuration is fallback + transfers walking time, the basic
// criteria's third dimension (spec.md §4.E).
func (c Criteria) weightedDuration() gtfstime.PositiveDuration {
	return c.FallbackDuration.Add(c.TransfersDuration)
}

// Provider supplies the Criteria value type, the dominance relation,
// and the constructors for each extension step the solver applies:
// boarding, riding, transferring and arriving. Two instantiations:
// Basic and Loads (spec.md §4.E).
type Provider interface {
	// Initial builds the starting criteria for an origin's Waiting
	// label.
	Initial(arrival gtfstime.UTCInstant) Criteria

	// Board extends c with one more leg (a vehicle boarded).
	Board(c Criteria) Criteria

	// Ride extends c across one traversed vehicle segment: it
	// advances the arrival time to the segment's end and, under
	// Loads, folds in the segment's passenger-load category.
	Ride(c Criteria, arrival gtfstime.UTCInstant, load basemodel.LoadCategory) Criteria

	// Transfer extends c with a walking connection of the given
	// durations and updates the arrival time to the debark instant
	// plus the total transfer duration.
	Transfer(c Criteria, arrival gtfstime.UTCInstant, walking, total gtfstime.PositiveDuration) Criteria

	// Arrive finalizes c at arrival, with the destination's fallback
	// duration already folded into FallbackDuration.
	Arrive(c Criteria, arrival gtfstime.UTCInstant, fallback gtfstime.PositiveDuration) Criteria

	// IsLower reports whether a dominates b: a is better-or-equal on
	// every active dimension and strictly better on at least one.
	IsLower(a, b Criteria) bool

	// Bound returns a loose, arrival-optimistic projection of c used
	// for early-termination pruning against the arrived front: it must
	// never report domination the real eventual criteria wouldn't
	// also exhibit.
	Bound(c Criteria) gtfstime.UTCInstant
}
