package criteria

import (
	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/gtfstime"
)

// Basic is the Provider comparing arrival time, leg count, and
// fallback+transfer walking duration — spec.md §4.E "Basic criteria".
type Basic struct{}

func (Basic) Initial(arrival gtfstime.UTCInstant) Criteria {
	return Criteria{ArrivalTime: arrival}
}

func (Basic) Board(c Criteria) Criteria {
	c.NbLegs++
	return c
}

// Ride advances the arrival time across the segment; load is not one
// of Basic's dimensions.
func (Basic) Ride(c Criteria, arrival gtfstime.UTCInstant, load basemodel.LoadCategory) Criteria {
	c.ArrivalTime = arrival
	return c
}

func (Basic) Transfer(c Criteria, arrival gtfstime.UTCInstant, walking, total gtfstime.PositiveDuration) Criteria {
	c.ArrivalTime = arrival
	c.TransfersDuration = c.TransfersDuration.Add(total)
	return c
}

func (Basic) Arrive(c Criteria, arrival gtfstime.UTCInstant, fallback gtfstime.PositiveDuration) Criteria {
	c.ArrivalTime = arrival
	c.FallbackDuration = c.FallbackDuration.Add(fallback)
	return c
}

// IsLower is strict componentwise dominance over (ArrivalTime, NbLegs,
// weightedDuration), per spec.md §4.E.
func (Basic) IsLower(a, b Criteria) bool {
	return dominates3(
		int64(a.ArrivalTime), int64(b.ArrivalTime),
		int64(a.NbLegs), int64(b.NbLegs),
		a.weightedDuration().Seconds(), b.weightedDuration().Seconds(),
	)
}

// Bound projects c's arrival time unchanged: under Basic there is no
// further dimension that could make the eventual criteria worse on
// arrival time, so the instantaneous value is already a valid
// optimistic bound.
func (Basic) Bound(c Criteria) gtfstime.UTCInstant {
	return c.ArrivalTime
}

// dominates3 reports whether the a-triple dominates the b-triple:
// every component of a is <= the matching component of b, and at
// least one is strictly less.
func dominates3(a1, b1, a2, b2, a3, b3 int64) bool {
	return dominatesN([]int64{a1, a2, a3}, []int64{b1, b2, b3})
}

// dominatesN generalizes dominates3 to an arbitrary number of
// dimensions: every component of a must be <= the matching component
// of b, with at least one strictly less.
func dominatesN(a, b []int64) bool {
	strictlyLess := false
	for i := range a {
		switch {
		case a[i] > b[i]:
			return false
		case a[i] < b[i]:
			strictlyLess = true
		}
	}
	return strictlyLess
}
