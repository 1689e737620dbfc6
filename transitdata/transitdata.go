// Package transitdata assembles the interned stop vocabulary,
// timetable store, days-pattern pool and transfer lists into one
// immutable structure queried by the solver. See spec.md §4.D.
//
// TransitData is built once (Build) and never mutated afterward:
// every exported method after that point is a pure read, matching
// §5's "immutable after construction, shared by reference across
// parallel requests without synchronisation" model.
package transitdata

import (
	"sort"
	"time"

	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/timetable"
)

// StopIdx is an interned stop handle, spec.md §3 "Stop".
type StopIdx int

// TransferEntry is one directed transfer edge stored on a stop's
// outgoing or incoming list.
type TransferEntry struct {
	OtherStop StopIdx
	Walking   gtfstime.PositiveDuration
	Total     gtfstime.PositiveDuration
	Handle    int
}

type stopData struct {
	id        string
	positions []timetable.Position
	outgoing  []TransferEntry
	incoming  []TransferEntry
}

// Trip identifies a single run of a vehicle on a specific day within a
// timetable — spec.md's glossary "Vehicle / Trip".
type Trip struct {
	Mission timetable.ID
	Vehicle int
	Day     calendar.Day
}

// maxDayLookahead bounds how many subsequent days EarliestTripToBoardAt
// tries before giving up, covering the case where the minimum boarding
// instant falls after the last vehicle of its own service day.
const maxDayLookahead = 2

// TransitData is the built, immutable transit network: interned stop
// vocabulary, timetable store, days-pattern pool and transfer lists.
type TransitData struct {
	cal      *calendar.Calendar
	pool     *calendar.DaysPatternPool
	store    *timetable.Store
	stops    []stopData
	stopIdx  map[string]StopIdx
	location *time.Location
	loads    *basemodel.LoadsData
}

// Calendar returns the dataset's calendar.
func (d *TransitData) Calendar() *calendar.Calendar { return d.cal }

// Pool returns the days-pattern pool.
func (d *TransitData) Pool() *calendar.DaysPatternPool { return d.pool }

// Store returns the timetable store, for callers (the solver) that
// need direct TimetableData access beyond the query surface below.
func (d *TransitData) Store() *timetable.Store { return d.store }

// Location returns the timezone used to convert between LocalTime and
// UTCInstant. A single location is used dataset-wide, matching the
// agency-level timezone resolution basemodel.Builder already performs.
func (d *TransitData) Location() *time.Location { return d.location }

// NbStops returns the number of interned stops.
func (d *TransitData) NbStops() int { return len(d.stops) }

// StopID returns the external identifier for an interned stop.
func (d *TransitData) StopID(s StopIdx) string { return d.stops[s].id }

// Lookup resolves an external stop identifier to its interned handle.
// Returns false if the identifier is unknown (spec.md §7 Category 4:
// callers turn this into a NoRoute response, not a hard failure).
func (d *TransitData) Lookup(id string) (StopIdx, bool) {
	idx, ok := d.stopIdx[id]
	return idx, ok
}

// MissionsOf returns every (mission, position) at which stop is
// visited.
func (d *TransitData) MissionsOf(stop StopIdx) []timetable.Position {
	return d.stops[stop].positions
}

// OutgoingTransfersAt returns stop's outgoing transfer list.
func (d *TransitData) OutgoingTransfersAt(stop StopIdx) []TransferEntry {
	return d.stops[stop].outgoing
}

// IncomingTransfersAt returns stop's incoming transfer list.
func (d *TransitData) IncomingTransfersAt(stop StopIdx) []TransferEntry {
	return d.stops[stop].incoming
}

// StopAt returns the stop visited at (mission, position).
func (d *TransitData) StopAt(mission timetable.ID, position int) StopIdx {
	return StopIdx(d.store.Timetable(mission).StopSequence()[position])
}

// NextPosition returns the position following (mission, position)
// within the same mission, or false if position is the last one.
func (d *TransitData) NextPosition(mission timetable.ID, position int) (timetable.Position, bool) {
	tt := d.store.Timetable(mission)
	if position+1 >= tt.Len() {
		return timetable.Position{}, false
	}
	return timetable.Position{Timetable: mission, Index: position + 1}, true
}

// EarliestTripToBoardAt finds the earliest trip boardable at (mission,
// position) no earlier than minTime, honoring filter, per spec.md
// §4.C. It tries the service day minTime falls on first, then up to
// maxDayLookahead subsequent days, so a label arriving late on one
// service day can still board an early vehicle the next day.
func (d *TransitData) EarliestTripToBoardAt(minTime gtfstime.UTCInstant, mission timetable.ID, position int, filter func(v int) bool) (Trip, bool) {
	tt := d.store.Timetable(mission)
	startDay, ok := d.cal.DateToDay(minTime.Time(d.cal))
	if !ok {
		return Trip{}, false
	}

	for offset := 0; offset <= maxDayLookahead; offset++ {
		day := calendar.Day(int(startDay) + offset)
		if int(day) >= d.cal.NbDays() {
			break
		}
		local := d.localTimeFloor(day, minTime)
		v := tt.EarliestBoardable(position, local, day, d.pool, filter)
		if v != -1 {
			return Trip{Mission: mission, Vehicle: v, Day: day}, true
		}
	}
	return Trip{}, false
}

// localTimeFloor converts minTime into the LocalTime domain of day.
// When day is later than minTime's own day, the conversion naturally
// yields a negative offset, which poses no lower bound at all (every
// non-negative board time on that day qualifies), exactly the behavior
// wanted when rolling forward to the next service day.
func (d *TransitData) localTimeFloor(day calendar.Day, minTime gtfstime.UTCInstant) gtfstime.LocalTime {
	dayStart := d.cal.DayToDate(day)
	localMidnight := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, d.location)
	delta := minTime.Time(d.cal).Sub(localMidnight)
	return gtfstime.LocalTime(delta / time.Second)
}

// ArrivalTimeOf returns the UTC arrival instant of trip at position.
func (d *TransitData) ArrivalTimeOf(trip Trip, position int) gtfstime.UTCInstant {
	tt := d.store.Timetable(trip.Mission)
	local := tt.DebarkTime(position, trip.Vehicle)
	return gtfstime.Combine(d.cal, trip.Day, local, d.location)
}

// BoardTimeOf returns the UTC departure instant of trip at position.
func (d *TransitData) BoardTimeOf(trip Trip, position int) gtfstime.UTCInstant {
	tt := d.store.Timetable(trip.Mission)
	local := tt.BoardTime(position, trip.Vehicle)
	return gtfstime.Combine(d.cal, trip.Day, local, d.location)
}

// DayOf returns the service day a trip runs on.
func (d *TransitData) DayOf(trip Trip) calendar.Day { return trip.Day }

// VehicleJourneyOf returns the originating vehicle journey identifier
// of a trip.
func (d *TransitData) VehicleJourneyOf(trip Trip) string {
	return d.store.Timetable(trip.Mission).Vehicle(trip.Vehicle).VehicleJourneyID
}

// LoadCategoryAt returns the passenger-load category of trip's segment
// starting at position, defaulting to basemodel.LoadLow when no loads
// CSV was supplied or no entry covers this tuple (spec.md §6).
func (d *TransitData) LoadCategoryAt(trip Trip, position int) basemodel.LoadCategory {
	return d.loads.Get(d.VehicleJourneyOf(trip), position, trip.Day)
}

// Build constructs a TransitData from a basemodel.BaseModel: every
// stop referenced by a vehicle journey or a transfer is interned,
// vehicle journeys are grouped into timetables via the configured
// TimetablesStore strategy, and every (mission, position) and transfer
// is indexed onto its stop(s). This is the only place allowed to
// mutate the arenas (spec.md §4.D).
func Build(base *basemodel.BaseModel) (*TransitData, error) {
	d := &TransitData{
		cal:     base.Calendar,
		pool:    base.Pool,
		store:   timetable.NewStore(),
		stopIdx: make(map[string]StopIdx),
		loads:   base.Loads,
	}

	d.location = time.UTC
	for _, vj := range base.VehicleJourneys {
		if vj.Timezone != nil {
			d.location = vj.Timezone
			break
		}
	}

	var strategy timetable.Strategy
	switch base.Config.Implem {
	case basemodel.ImplemDaily:
		strategy = timetable.Daily{}
	default:
		strategy = timetable.Periodic{}
	}

	for _, vj := range base.VehicleJourneys {
		stops := make([]int, len(vj.StopTimes))
		boards := make([]gtfstime.LocalTime, len(vj.StopTimes))
		debarks := make([]gtfstime.LocalTime, len(vj.StopTimes))
		for i, st := range vj.StopTimes {
			stops[i] = int(d.internStop(st.StopID))
			boards[i] = st.Board
			debarks[i] = st.Debark
		}

		in := timetable.VehicleInput{
			VehicleJourneyID: vj.ID,
			StopSequence:     stops,
			Boards:           boards,
			Debarks:          debarks,
			Pattern:          vj.Pattern,
		}

		days := d.pool.DaysIn(vj.Pattern)
		for _, in := range strategy.Expand(in, days, d.pool) {
			id, _ := d.store.Insert(in)
			for p, stop := range in.StopSequence {
				s := StopIdx(stop)
				d.stops[s].positions = append(d.stops[s].positions, timetable.Position{Timetable: id, Index: p})
			}
		}
	}

	for handle, t := range base.Transfers {
		from := d.internStop(t.FromStopID)
		to := d.internStop(t.ToStopID)
		d.stops[from].outgoing = append(d.stops[from].outgoing, TransferEntry{
			OtherStop: to, Walking: t.Walking, Total: t.Total, Handle: handle,
		})
		d.stops[to].incoming = append(d.stops[to].incoming, TransferEntry{
			OtherStop: from, Walking: t.Walking, Total: t.Total, Handle: handle,
		})
	}

	// Deterministic iteration over stops requires deterministic
	// transfer order per stop; interning order already gives this, but
	// sort defensively by handle so a reordered base.Transfers slice
	// (e.g. a different storage backend's row order) can't change it.
	for i := range d.stops {
		sortTransfers(d.stops[i].outgoing)
		sortTransfers(d.stops[i].incoming)
	}

	return d, nil
}

func sortTransfers(ts []TransferEntry) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Handle < ts[j].Handle })
}

func (d *TransitData) internStop(id string) StopIdx {
	if idx, ok := d.stopIdx[id]; ok {
		return idx
	}
	idx := StopIdx(len(d.stops))
	d.stopIdx[id] = idx
	d.stops = append(d.stops, stopData{id: id})
	return idx
}
