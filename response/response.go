// Package response turns a solved journey-tree handle into a flat,
// printable sequence of legs: spec.md §4.I.
package response

import (
	"github.com/transitkit/laxago/criteria"
	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/journey"
	"github.com/transitkit/laxago/paretofront"
	"github.com/transitkit/laxago/transitdata"
)

// LegKind tags what kind of movement a Leg represents.
type LegKind int

const (
	// LegAccess is the fallback walk from the request's true origin
	// point to the first boarded/egressed stop.
	LegAccess LegKind = iota
	// LegVehicle is riding a single trip from one position to a later
	// one without detraining.
	LegVehicle
	// LegTransfer is a walking connection between two stops.
	LegTransfer
	// LegEgress is the fallback walk from the last stop to the
	// request's true destination point.
	LegEgress
)

func (k LegKind) String() string {
	switch k {
	case LegAccess:
		return "access"
	case LegVehicle:
		return "vehicle"
	case LegTransfer:
		return "transfer"
	case LegEgress:
		return "egress"
	default:
		return "unknown"
	}
}

// Leg is one movement segment of a Journey. Trip is only meaningful
// when Kind is LegVehicle.
type Leg struct {
	Kind     LegKind
	FromStop transitdata.StopIdx
	ToStop   transitdata.StopIdx
	DepartAt gtfstime.UTCInstant
	ArriveAt gtfstime.UTCInstant
	Trip     transitdata.Trip
}

// Journey is one Pareto-optimal itinerary, legs in travel order.
type Journey struct {
	Legs     []Leg
	Arrival  gtfstime.UTCInstant
	Criteria criteria.Criteria
}

// Assemble walks tree from entry's node back to its origin, producing
// a Journey in travel order. departure is the request's
// departure_datetime, used to synthesize the leading access leg.
func Assemble(tree *journey.Tree, entry paretofront.Entry, departure gtfstime.UTCInstant) Journey {
	chain := nodeChain(tree, entry.Node)

	out := Journey{Arrival: entry.Criteria.ArrivalTime, Criteria: entry.Criteria}

	root := chain[0] // Waiting: the origin, after its fallback walk in
	out.Legs = append(out.Legs, Leg{
		Kind:     LegAccess,
		FromStop: root.Stop,
		ToStop:   root.Stop,
		DepartAt: departure,
		ArriveAt: root.ArrivedAt,
	})

	lastStop := root.Stop
	lastAt := root.ArrivedAt

	var pendingTrip transitdata.Trip
	var pendingBoardStop transitdata.StopIdx
	var pendingBoardedAt gtfstime.UTCInstant

	for i := 1; i < len(chain); i++ {
		n := chain[i]
		switch n.Kind {
		case journey.KindOnboard:
			pendingTrip = n.Trip
			pendingBoardedAt = n.BoardedAt
			pendingBoardStop = lastStop

		case journey.KindDebarked:
			out.Legs = append(out.Legs, Leg{
				Kind:     LegVehicle,
				FromStop: pendingBoardStop,
				ToStop:   n.DebarkedStop,
				DepartAt: pendingBoardedAt,
				ArriveAt: n.DebarkedAt,
				Trip:     pendingTrip,
			})
			lastStop = n.DebarkedStop
			lastAt = n.DebarkedAt

		case journey.KindWaiting:
			out.Legs = append(out.Legs, Leg{
				Kind:     LegTransfer,
				FromStop: lastStop,
				ToStop:   n.Stop,
				DepartAt: lastAt,
				ArriveAt: n.ArrivedAt,
			})
			lastStop = n.Stop
			lastAt = n.ArrivedAt

		case journey.KindArrived:
			out.Legs = append(out.Legs, Leg{
				Kind:     LegEgress,
				FromStop: lastStop,
				ToStop:   lastStop,
				DepartAt: lastAt,
				ArriveAt: out.Arrival,
			})
		}
	}

	return out
}

// AssembleAll assembles every entry on a Pareto front, in front order.
func AssembleAll(tree *journey.Tree, entries []paretofront.Entry, departure gtfstime.UTCInstant) []Journey {
	out := make([]Journey, len(entries))
	for i, e := range entries {
		out[i] = Assemble(tree, e, departure)
	}
	return out
}

func nodeChain(tree *journey.Tree, leaf journey.Handle) []journey.Node {
	var chain []journey.Node
	for h := leaf; h != journey.NoParent; {
		n := tree.Node(h)
		chain = append(chain, n)
		h = n.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
