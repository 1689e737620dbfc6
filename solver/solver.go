// Package solver implements the round-based labelling loop that turns
// a transitdata.TransitData and a Request into a Pareto-optimal set of
// journeys: spec.md §4.H.
package solver

import (
	"sort"
	"time"

	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/criteria"
	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/journey"
	"github.com/transitkit/laxago/paretofront"
	"github.com/transitkit/laxago/timetable"
	"github.com/transitkit/laxago/transitdata"
)

// Tag annotates how a Response concluded.
type Tag int

const (
	TagNone Tag = iota
	TagNoRoute
	TagTimeout
)

// Response is the solver's raw output. response.Assemble turns each
// Arrived entry into a printable journey by walking Tree from the
// entry's handle back to its root.
type Response struct {
	Tree    *journey.Tree
	Arrived []paretofront.Entry
	Tag     Tag
}

// ProviderFor resolves a basemodel.CriteriaImplem to the concrete
// criteria.Provider the solver runs.
func ProviderFor(impl basemodel.CriteriaImplem) criteria.Provider {
	if impl == basemodel.CriteriaLoads {
		return criteria.Loads{}
	}
	return criteria.Basic{}
}

type resolvedEndpoint struct {
	stop     transitdata.StopIdx
	fallback gtfstime.PositiveDuration
}

// Solve runs the labelling loop described by spec.md §4.H against data
// for req, using provider as the dominance capability.
func Solve(data *transitdata.TransitData, provider criteria.Provider, req Request) (*Response, error) {
	tree := journey.NewTree()

	if len(req.Origins) == 0 || len(req.Destinations) == 0 {
		return &Response{Tree: tree, Tag: TagNone}, nil
	}

	origins := resolveEndpoints(data, req.Origins)
	destinations := resolveEndpoints(data, req.Destinations)
	if len(origins) == 0 || len(destinations) == 0 {
		return &Response{Tree: tree, Tag: TagNoRoute}, nil
	}

	destFallback := make(map[transitdata.StopIdx]gtfstime.PositiveDuration, len(destinations))
	for _, e := range destinations {
		destFallback[e.stop] = e.fallback
	}

	s := &solveState{
		data:         data,
		provider:     provider,
		tree:         tree,
		req:          req,
		destFallback: destFallback,
		arrivedFront: paretofront.New(provider),
	}

	newWaiting := map[transitdata.StopIdx]*paretofront.Front{}
	for _, o := range origins {
		arrivedAt := req.DepartureDatetime.Add(o.fallback)
		h := tree.InsertWaiting(journey.NoParent, o.stop, arrivedAt)
		c := provider.Initial(arrivedAt)
		frontFor(newWaiting, provider, o.stop).Add(h, c)

		// An origin that is itself a destination needs no vehicle leg at
		// all: it arrives by walking straight through (spec.md §8 B2).
		if fallback, ok := destFallback[o.stop]; ok {
			arrival := arrivedAt.Add(fallback)
			ac := provider.Arrive(c, arrival, fallback)
			ah := tree.InsertArrived(h)
			s.arrivedFront.Add(ah, ac)
		}
	}

	deadline := time.Time{}
	if req.Deadline != gtfstime.Zero {
		deadline = time.Now().Add(req.Deadline.Duration())
	}

	maxLegs := req.maxLegs()
	for round := 0; round <= maxLegs; round++ {
		if len(newWaiting) == 0 {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return &Response{Tree: tree, Arrived: s.arrivedFront.Entries(), Tag: TagTimeout}, nil
		}

		newDebarked := s.boardAndRide(newWaiting)
		s.mergeDebarked(newDebarked)
		nextWaiting := s.transfer(newDebarked)
		s.arrive(newDebarked)

		newWaiting = nextWaiting
	}

	return &Response{Tree: tree, Arrived: s.arrivedFront.Entries(), Tag: TagNone}, nil
}

func resolveEndpoints(data *transitdata.TransitData, in []Endpoint) []resolvedEndpoint {
	out := make([]resolvedEndpoint, 0, len(in))
	for _, e := range in {
		stop, ok := data.Lookup(e.StopID)
		if !ok {
			continue
		}
		out = append(out, resolvedEndpoint{stop: stop, fallback: e.Fallback})
	}
	return out
}

// solveState holds the fronts that persist across rounds: debarkedFront
// accumulates every debarked label ever produced at a stop; waiting
// labels only need to be checked for dominance against other labels
// produced in the same round (spec.md §4.H board & ride reads only
// "new waiting labels"), so they live in a round-local map instead.
// arrivedFront is the single request-wide destination front.
type solveState struct {
	data     *transitdata.TransitData
	provider criteria.Provider
	tree     *journey.Tree
	req      Request

	destFallback map[transitdata.StopIdx]gtfstime.PositiveDuration

	debarkedFront map[transitdata.StopIdx]*paretofront.Front
	arrivedFront  *paretofront.Front
}

func frontFor(m map[transitdata.StopIdx]*paretofront.Front, provider criteria.Provider, stop transitdata.StopIdx) *paretofront.Front {
	f, ok := m[stop]
	if !ok {
		f = paretofront.New(provider)
		m[stop] = f
	}
	return f
}

func sortedStops(m map[transitdata.StopIdx]*paretofront.Front) []transitdata.StopIdx {
	stops := make([]transitdata.StopIdx, 0, len(m))
	for s := range m {
		stops = append(stops, s)
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i] < stops[j] })
	return stops
}

// prunedByArrived reports whether some already-arrived journey already
// reaches the destination no later than c's best possible eventual
// arrival time (provider.Bound(c)): target pruning, spec.md §4.H
// "Pruning".
func (s *solveState) prunedByArrived(c criteria.Criteria) bool {
	bound := s.provider.Bound(c)
	for _, e := range s.arrivedFront.Entries() {
		if e.Criteria.ArrivalTime <= bound {
			return true
		}
	}
	return false
}

// boardAndRide is round step 1: for every dirty waiting stop, for
// every mission passing through it, board the earliest trip each
// waiting label permits and walk every downstream position, proposing
// a Debarked label at each one.
func (s *solveState) boardAndRide(newWaiting map[transitdata.StopIdx]*paretofront.Front) map[transitdata.StopIdx]*paretofront.Front {
	newDebarked := map[transitdata.StopIdx]*paretofront.Front{}

	for _, stop := range sortedStops(newWaiting) {
		labels := newWaiting[stop].Entries()
		positions := s.data.MissionsOf(stop)

		for _, pos := range sortedPositions(positions) {
			for _, w := range labels {
				node := s.tree.Node(w.Node)
				trip, ok := s.data.EarliestTripToBoardAt(node.ArrivedAt, pos.Timetable, pos.Index, nil)
				if !ok {
					continue
				}

				boardedAt := s.data.BoardTimeOf(trip, pos.Index)
				onboard := s.tree.InsertOnboard(w.Node, trip, pos.Index, boardedAt)
				c := s.provider.Board(w.Criteria)
				c.TransfersDuration = c.TransfersDuration.Add(s.req.LegArrivalPenalty)

				s.rideFrom(onboard, trip, pos.Index, c, newDebarked)
			}
		}
	}

	return newDebarked
}

// rideFrom walks every position after boardedPosition on trip's
// mission, proposing a Debarked label at each one.
func (s *solveState) rideFrom(onboard journey.Handle, trip transitdata.Trip, boardedPosition int, c criteria.Criteria, newDebarked map[transitdata.StopIdx]*paretofront.Front) {
	segmentStart := boardedPosition
	position := boardedPosition
	for {
		next, ok := s.data.NextPosition(trip.Mission, position)
		if !ok {
			return
		}
		position = next.Index

		arrival := s.data.ArrivalTimeOf(trip, position)
		load := s.data.LoadCategoryAt(trip, segmentStart)
		c = s.provider.Ride(c, arrival, load)
		segmentStart = position

		if s.prunedByArrived(c) {
			continue
		}

		stop := s.data.StopAt(trip.Mission, position)
		debarked := s.tree.InsertDebarked(onboard, stop, arrival)
		frontFor(newDebarked, s.provider, stop).Add(debarked, c)
	}
}

// mergeDebarked is round step 2: every newly proposed debarked label
// is folded into the persistent debarkedFront for its stop.
func (s *solveState) mergeDebarked(newDebarked map[transitdata.StopIdx]*paretofront.Front) {
	if s.debarkedFront == nil {
		s.debarkedFront = map[transitdata.StopIdx]*paretofront.Front{}
	}
	for _, stop := range sortedStops(newDebarked) {
		frontFor(s.debarkedFront, s.provider, stop).Merge(newDebarked[stop])
	}
}

// transfer is round step 3: every newly debarked label fans out across
// its stop's outgoing transfers into next round's waiting labels.
func (s *solveState) transfer(newDebarked map[transitdata.StopIdx]*paretofront.Front) map[transitdata.StopIdx]*paretofront.Front {
	nextWaiting := map[transitdata.StopIdx]*paretofront.Front{}

	for _, stopA := range sortedStops(newDebarked) {
		for _, label := range newDebarked[stopA].Entries() {
			node := s.tree.Node(label.Node)
			for _, t := range s.data.OutgoingTransfersAt(stopA) {
				arrivedAt := node.DebarkedAt.Add(t.Total)
				c := s.provider.Transfer(label.Criteria, arrivedAt, t.Walking, t.Total)
				c.TransfersDuration = c.TransfersDuration.Add(s.req.LegWalkingPenalty)

				if s.prunedByArrived(c) {
					continue
				}

				h := s.tree.InsertWaiting(label.Node, t.OtherStop, arrivedAt)
				frontFor(nextWaiting, s.provider, t.OtherStop).Add(h, c)
			}
		}
	}

	return nextWaiting
}

// arrive is round step 4: every newly debarked label sitting at a
// destination stop produces an Arrived label.
func (s *solveState) arrive(newDebarked map[transitdata.StopIdx]*paretofront.Front) {
	for _, stop := range sortedStops(newDebarked) {
		fallback, ok := s.destFallback[stop]
		if !ok {
			continue
		}
		for _, label := range newDebarked[stop].Entries() {
			node := s.tree.Node(label.Node)
			arrivedAt := node.DebarkedAt.Add(fallback)
			c := s.provider.Arrive(label.Criteria, arrivedAt, fallback)

			h := s.tree.InsertArrived(label.Node)
			s.arrivedFront.Add(h, c)
		}
	}
}

func sortedPositions(positions []timetable.Position) []timetable.Position {
	out := append([]timetable.Position(nil), positions...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timetable != out[j].Timetable {
			return out[i].Timetable < out[j].Timetable
		}
		return out[i].Index < out[j].Index
	})
	return out
}
