// Package storage holds the journey planner's one exercised loader
// collaborator: an in-memory GTFS feed store that a parsed archive is
// written into, then read back out as the input to basemodel.Builder.
package storage

import (
	"github.com/transitkit/laxago/model"
)

// FeedMetadata summarizes a parsed archive: the fields parse.ParseStatic
// derives from calendar.txt/calendar_dates.txt/agency.txt/stop_times.txt
// along the way, returned to the caller that built the feed.
type FeedMetadata struct {
	Timezone          string
	CalendarStartDate string
	CalendarEndDate   string
	MaxArrival        string
	MaxDeparture      string
}

// Storage holds a single parsed feed behind a content hash, write-once
// then read-many.
type Storage interface {
	// Gets a reader for the feed with the given hash.
	GetReader(hash string) (FeedReader, error)

	// Gets a writer for the feed with the given hash.
	GetWriter(hash string) (FeedWriter, error)
}

// Writes GTFS records for a single feed.
//
// As stop_times.txt tends to be very large, BeginStopTimes() and
// EndStopTimes() are called before and after all calls to
// WriteStopTime(), allowing transactions/batching/whathaveyou.
type FeedWriter interface {
	WriteAgency(agency model.Agency) error
	WriteStop(stop model.Stop) error
	WriteRoute(route model.Route) error
	WriteTrip(trip model.Trip) error
	BeginTrips() error
	EndTrips() error
	WriteCalendar(cal model.Calendar) error
	WriteCalendarDate(caldate model.CalendarDate) error
	WriteTransfer(transfer model.Transfer) error
	WriteStopTime(stopTime model.StopTime) error
	BeginStopTimes() error
	EndStopTimes() error
	Close() error
}

type FeedReader interface {
	Agencies() ([]model.Agency, error)
	Stops() ([]model.Stop, error)
	Routes() ([]model.Route, error)
	Trips() ([]model.Trip, error)
	StopTimes() ([]model.StopTime, error)
	Calendars() ([]model.Calendar, error)
	CalendarDates() ([]model.CalendarDate, error)
	Transfers() ([]model.Transfer, error)
}
