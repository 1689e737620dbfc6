package criteria

import (
	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/gtfstime"
)

// Loads is the Provider adding passenger-load avoidance to Basic's
// dimensions — spec.md §4.E "Loads criteria".
type Loads struct{}

func (Loads) Initial(arrival gtfstime.UTCInstant) Criteria {
	return Basic{}.Initial(arrival)
}

func (Loads) Board(c Criteria) Criteria {
	return Basic{}.Board(c)
}

// Ride advances the arrival time across the segment and folds the
// segment's load category into c's LoadsCount vector.
func (Loads) Ride(c Criteria, arrival gtfstime.UTCInstant, load basemodel.LoadCategory) Criteria {
	c.ArrivalTime = arrival
	c.Loads = c.Loads.Add(load)
	return c
}

func (Loads) Transfer(c Criteria, arrival gtfstime.UTCInstant, walking, total gtfstime.PositiveDuration) Criteria {
	return Basic{}.Transfer(c, arrival, walking, total)
}

func (Loads) Arrive(c Criteria, arrival gtfstime.UTCInstant, fallback gtfstime.PositiveDuration) Criteria {
	return Basic{}.Arrive(c, arrival, fallback)
}

// loadsRank reduces a LoadsCount into a single scalar where the
// high-load segment count outweighs medium, which outweighs low — the
// "higher indices outweigh lower" ordering spec.md §4.E describes.
// Counts are assumed to stay well under 1,000 per journey (max_legs is
// a small safety cap), so the weights never collide.
func (l LoadsCount) loadsRank() int64 {
	return int64(l[basemodel.LoadHigh])*1_000_000 +
		int64(l[basemodel.LoadMedium])*1_000 +
		int64(l[basemodel.LoadLow])
}

// IsLower is strict componentwise dominance over (ArrivalTime, NbLegs,
// weightedDuration, loadsRank).
func (Loads) IsLower(a, b Criteria) bool {
	return dominatesN(
		[]int64{
			int64(a.ArrivalTime), int64(a.NbLegs), a.weightedDuration().Seconds(), a.Loads.loadsRank(),
		},
		[]int64{
			int64(b.ArrivalTime), int64(b.NbLegs), b.weightedDuration().Seconds(), b.Loads.loadsRank(),
		},
	)
}

// Bound is identical to Basic's: loads never make an arrival time
// worse, so the arrival-time-only bound remains valid for pruning.
func (Loads) Bound(c Criteria) gtfstime.UTCInstant {
	return c.ArrivalTime
}
