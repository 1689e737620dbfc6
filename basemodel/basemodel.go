// Package basemodel builds spec.md's BaseModel — the typed,
// calendar-resolved build input to the transitdata package — out of a
// parsed GTFS feed (storage.FeedReader) and an optional passenger-load
// CSV (loadsdata.Load's output).
//
// This is the boundary named in spec.md §1 "out of scope": GTFS
// parsing itself lives in parse/storage; this package is where that
// external representation turns into the core's input contract.
package basemodel

import (
	"time"

	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/gtfstime"
)

// LoadCategory is the passenger-load annotation on a stop-time
// segment. The zero value is LoadLow, matching spec.md §6's
// "missing entries default to Low".
type LoadCategory int

const (
	LoadLow LoadCategory = iota
	LoadMedium
	LoadHigh
)

func (c LoadCategory) String() string {
	switch c {
	case LoadLow:
		return "low"
	case LoadMedium:
		return "medium"
	case LoadHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Regularity hooks the (currently inert) Rare/Intermittent/Frequent
// classification spec.md §9 mentions but leaves unwired.
type Regularity int

const (
	RegularityUnknown Regularity = iota
	RegularityRare
	RegularityIntermittent
	RegularityFrequent
)

// ConnectionOverhead is added to a transfer's walking duration to get
// its total duration: boarding/alighting buffer, not part of the raw
// walk. Matches the NTFS convention of a fixed ~2 minute connection
// margin.
const ConnectionOverhead = 2 * time.Minute

// Implem selects the TimetablesStore strategy (spec.md §9).
type Implem int

const (
	ImplemPeriodic Implem = iota
	ImplemDaily
)

// CriteriaImplem selects which criteria.Provider the solver runs
// with.
type CriteriaImplem int

const (
	CriteriaBasic CriteriaImplem = iota
	CriteriaLoads
)

// Config carries build-time parameters spec.md §6 lists as part of
// the build input, plus the implem/criteria selections spec.md §6
// groups with the CLI surface.
type Config struct {
	DefaultTransferDuration gtfstime.PositiveDuration
	Implem                  Implem
	CriteriaImplem          CriteriaImplem
}

// StopTimeEntry is one (stop, board, debark) tuple of a vehicle
// journey's timed stop visits.
type StopTimeEntry struct {
	StopID string
	Board  gtfstime.LocalTime
	Debark gtfstime.LocalTime
}

// VehicleJourney is a single scheduled run: a sequence of timed stop
// visits, the days it operates, and its originating route/trip
// identity.
type VehicleJourney struct {
	ID         string
	RouteID    string
	Headsign   string
	StopTimes  []StopTimeEntry
	Pattern    calendar.DaysPattern
	Timezone   *time.Location
	Regularity Regularity
}

// Transfer is a fixed-duration connection between two stops.
type Transfer struct {
	FromStopID string
	ToStopID   string
	Walking    gtfstime.PositiveDuration
	Total      gtfstime.PositiveDuration
}

// LoadsData maps (vehicle journey, stop position, day) to a load
// category. Populated by the loadsdata package; nil means "no loads
// data supplied", which FromFeed treats identically to an empty one
// (every lookup defaults to LoadLow).
type LoadsData struct {
	entries map[loadsKey]LoadCategory
}

type loadsKey struct {
	vehicleJourneyID string
	position         int
	day              calendar.Day
}

// NewLoadsData creates an empty LoadsData ready for Set calls.
func NewLoadsData() *LoadsData {
	return &LoadsData{entries: make(map[loadsKey]LoadCategory)}
}

// Set records the load category for one (vehicle, position, day)
// tuple.
func (l *LoadsData) Set(vehicleJourneyID string, position int, day calendar.Day, cat LoadCategory) {
	l.entries[loadsKey{vehicleJourneyID, position, day}] = cat
}

// Get returns the load category for the tuple, defaulting to LoadLow
// per spec.md §6 when absent or when l is nil.
func (l *LoadsData) Get(vehicleJourneyID string, position int, day calendar.Day) LoadCategory {
	if l == nil {
		return LoadLow
	}
	cat, ok := l.entries[loadsKey{vehicleJourneyID, position, day}]
	if !ok {
		return LoadLow
	}
	return cat
}

// DroppedJourney records one Category 3 build error (spec.md §7): a
// vehicle journey whose stop times violated invariant I1, logged and
// excluded rather than failing the whole build.
type DroppedJourney struct {
	VehicleJourneyID string
	Cause            error
}

// BuildReport accumulates non-fatal build outcomes.
type BuildReport struct {
	Dropped []DroppedJourney
}

func (r *BuildReport) drop(id string, cause error) {
	r.Dropped = append(r.Dropped, DroppedJourney{VehicleJourneyID: id, Cause: cause})
}

// BaseModel is spec.md §6's build input: indexed collections of stop
// points, vehicle journeys with per-stop timed visits, transfers and
// a resolved calendar.
type BaseModel struct {
	Calendar        *calendar.Calendar
	Pool            *calendar.DaysPatternPool
	VehicleJourneys []VehicleJourney
	Transfers       []Transfer
	Loads           *LoadsData
	Config          Config
	Report          *BuildReport
}
