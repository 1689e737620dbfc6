// Package timetable groups vehicle journeys sharing an identical stop
// sequence into missions, storing per-position board/debark times in a
// vehicle order that permits binary-search earliest-boardable lookup.
//
// See spec.md §3 "Mission / Timetable" and §4.C.
package timetable

import (
	"sort"

	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/gtfstime"
)

// ID identifies a single TimetableData within a Store.
type ID int

// Position locates a stop within a timetable's stop sequence.
type Position struct {
	Timetable ID
	Index     int
}

// VehicleData carries the originating identifier and service days of
// one vehicle (a "trip") stored in a TimetableData.
type VehicleData struct {
	VehicleJourneyID string
	Pattern          calendar.DaysPattern
}

// StopTime is one (board, debark) pair for a vehicle at one position.
type StopTime struct {
	Board  gtfstime.LocalTime
	Debark gtfstime.LocalTime
}

// TimetableData is a mission: a group of vehicles visiting the
// identical ordered stop sequence. board_times[p][v] and
// debark_times[p][v] are stored as [position][vehicle] to keep a
// single position's column contiguous, since earliest-boardable
// lookup binary-searches exactly one column at a time.
type TimetableData struct {
	stopSequence []int // opaque stop handles; interpreted by transitdata
	boardTimes   [][]gtfstime.LocalTime
	debarkTimes  [][]gtfstime.LocalTime
	vehicles     []VehicleData
}

// StopSequence returns the ordered stop handles served by this
// timetable.
func (tt *TimetableData) StopSequence() []int { return tt.stopSequence }

// Len returns the stop-sequence length L.
func (tt *TimetableData) Len() int { return len(tt.stopSequence) }

// NbVehicles returns the number of vehicles V in this timetable.
func (tt *TimetableData) NbVehicles() int { return len(tt.vehicles) }

// Vehicle returns the VehicleData for vehicle v.
func (tt *TimetableData) Vehicle(v int) VehicleData { return tt.vehicles[v] }

// BoardTime returns board_times[p][v].
func (tt *TimetableData) BoardTime(p, v int) gtfstime.LocalTime { return tt.boardTimes[p][v] }

// DebarkTime returns debark_times[p][v].
func (tt *TimetableData) DebarkTime(p, v int) gtfstime.LocalTime { return tt.debarkTimes[p][v] }

// columnOrder reports whether inserting candidate times at
// position p preserves invariant I2's total order against the
// existing column, returning -1/0/1 for strictly-before/equal/after,
// or false if the candidate is inconsistent with the existing order
// (some vehicles strictly before, some strictly after).
func columnOrder(existing []gtfstime.LocalTime, value gtfstime.LocalTime) (rank int, consistent bool) {
	lowerThanSome := false
	greaterThanSome := false
	for _, v := range existing {
		switch {
		case value < v:
			lowerThanSome = true
		case value > v:
			greaterThanSome = true
		}
	}
	switch {
	case lowerThanSome && greaterThanSome:
		return 0, false
	case lowerThanSome:
		return -1, true
	case greaterThanSome:
		return 1, true
	default:
		return 0, true
	}
}

// insertionRank checks invariant I2 for inserting a full candidate time
// vector: every position must agree on the same relative rank against
// the existing vehicles, and that rank must be consistent across all
// positions (ties allowed only when the whole vector is equal at that
// position).
func (tt *TimetableData) insertionRank(boards []gtfstime.LocalTime) (rank int, ok bool) {
	if len(tt.vehicles) == 0 {
		return 0, true
	}

	firstRank, consistent := columnOrder(tt.boardTimes[0], boards[0])
	if !consistent {
		return 0, false
	}

	for p := 1; p < len(boards); p++ {
		r, ok := columnOrder(tt.boardTimes[p], boards[p])
		if !ok {
			return 0, false
		}
		// A position may report "equal" (rank 0) even when another
		// position found a strict order, as long as it never
		// contradicts the established strict rank.
		if r != 0 && firstRank != 0 && r != firstRank {
			return 0, false
		}
		if firstRank == 0 && r != 0 {
			firstRank = r
		}
	}

	return firstRank, true
}

// insertAt inserts a vehicle's full time vectors at the position
// given by insertionRank: rank < 0 means before every vehicle,
// rank > 0 after every vehicle, rank == 0 means ties (placed before
// the equal vehicles, so the most recently inserted tie comes first).
func (tt *TimetableData) insertAt(boards, debarks []gtfstime.LocalTime, data VehicleData) int {
	idx := 0
	if rank, _ := tt.insertionRank(boards); rank > 0 {
		idx = len(tt.vehicles)
	}

	if len(tt.boardTimes) == 0 {
		tt.boardTimes = make([][]gtfstime.LocalTime, len(boards))
		tt.debarkTimes = make([][]gtfstime.LocalTime, len(boards))
	}

	for p := range boards {
		tt.boardTimes[p] = insertLocalTime(tt.boardTimes[p], idx, boards[p])
		tt.debarkTimes[p] = insertLocalTime(tt.debarkTimes[p], idx, debarks[p])
	}

	vehicles := make([]VehicleData, 0, len(tt.vehicles)+1)
	vehicles = append(vehicles, tt.vehicles[:idx]...)
	vehicles = append(vehicles, data)
	vehicles = append(vehicles, tt.vehicles[idx:]...)
	tt.vehicles = vehicles

	return idx
}

func insertLocalTime(s []gtfstime.LocalTime, idx int, v gtfstime.LocalTime) []gtfstime.LocalTime {
	s = append(s, 0)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

// EarliestBoardable returns the index (within this timetable's
// vehicle order) of the vehicle satisfying spec.md §4.C's
// earliest-boardable query at position p: the day-pattern must allow
// day, board_times[p][v] must be >= minTime, and filter(v) must
// accept. Binary search locates the first candidate satisfying the
// time bound; a linear scan forward then applies day/filter. Returns
// -1 if no vehicle qualifies.
func (tt *TimetableData) EarliestBoardable(p int, minTime gtfstime.LocalTime, day calendar.Day, pool *calendar.DaysPatternPool, filter func(v int) bool) int {
	column := tt.boardTimes[p]
	start := sort.Search(len(column), func(i int) bool {
		return column[i] >= minTime
	})

	for v := start; v < len(column); v++ {
		if !pool.IsAllowed(tt.vehicles[v].Pattern, day) {
			continue
		}
		if filter != nil && !filter(v) {
			continue
		}
		return v
	}
	return -1
}
