package basemodel

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/model"
	"github.com/transitkit/laxago/storage"
)

// Builder constructs a BaseModel from a parsed feed.
type Builder struct{}

// FromFeed reads every GTFS collection out of reader and resolves it
// into a BaseModel: trips become VehicleJourneys with a days-pattern
// resolved from calendar.txt/calendar_dates.txt, stop_times become
// per-position StopTimeEntry lists, and transfers.txt (when the
// reader exposes one) becomes Transfer records. A vehicle journey
// whose stop times violate invariant I1 (non-decreasing board/debark)
// is dropped and recorded in the returned BuildReport rather than
// failing the whole build (spec.md §7 Category 3).
func (Builder) FromFeed(reader storage.FeedReader, loads *LoadsData, cfg Config) (*BaseModel, error) {
	calendars, err := reader.Calendars()
	if err != nil {
		return nil, errors.Wrap(err, "reading calendars")
	}
	calDates, err := reader.CalendarDates()
	if err != nil {
		return nil, errors.Wrap(err, "reading calendar dates")
	}

	first, last, err := dateRange(calendars, calDates)
	if err != nil {
		return nil, err
	}

	cal, err := calendar.New(first, last)
	if err != nil {
		return nil, errors.Wrap(err, "building calendar")
	}
	pool := calendar.NewDaysPatternPool(cal)

	serviceDates, err := resolveServiceDates(calendars, calDates)
	if err != nil {
		return nil, err
	}
	servicePatterns := make(map[string]calendar.DaysPattern, len(serviceDates))
	for serviceID, dates := range serviceDates {
		servicePatterns[serviceID] = pool.GetOrInsert(dates)
	}

	loc, err := resolveDefaultTimezone(reader)
	if err != nil {
		return nil, err
	}

	trips, err := reader.Trips()
	if err != nil {
		return nil, errors.Wrap(err, "reading trips")
	}
	tripsByID := make(map[string]model.Trip, len(trips))
	for _, t := range trips {
		tripsByID[t.ID] = t
	}

	stopTimes, err := reader.StopTimes()
	if err != nil {
		return nil, errors.Wrap(err, "reading stop times")
	}
	stopTimesByTrip := make(map[string][]model.StopTime)
	for _, st := range stopTimes {
		stopTimesByTrip[st.TripID] = append(stopTimesByTrip[st.TripID], st)
	}

	report := &BuildReport{}
	vehicleJourneys := make([]VehicleJourney, 0, len(trips))
	for _, trip := range trips {
		sts := stopTimesByTrip[trip.ID]
		sort.Slice(sts, func(i, j int) bool { return sts[i].StopSequence < sts[j].StopSequence })

		vj, err := buildVehicleJourney(trip, sts, loc)
		if err != nil {
			report.drop(trip.ID, err)
			continue
		}
		pattern, ok := servicePatterns[trip.ServiceID]
		if !ok {
			report.drop(trip.ID, fmt.Errorf("unknown service_id %q", trip.ServiceID))
			continue
		}
		vj.Pattern = pattern
		vehicleJourneys = append(vehicleJourneys, vj)
	}

	transfers, err := buildTransfers(reader, cfg.DefaultTransferDuration)
	if err != nil {
		return nil, err
	}

	return &BaseModel{
		Calendar:        cal,
		Pool:            pool,
		VehicleJourneys: vehicleJourneys,
		Transfers:       transfers,
		Loads:           loads,
		Config:          cfg,
		Report:          report,
	}, nil
}

func buildVehicleJourney(trip model.Trip, sts []model.StopTime, loc *time.Location) (VehicleJourney, error) {
	if len(sts) == 0 {
		return VehicleJourney{}, fmt.Errorf("trip %q has no stop times", trip.ID)
	}

	entries := make([]StopTimeEntry, 0, len(sts))
	var prevDebark gtfstime.LocalTime
	for i, st := range sts {
		board, err := gtfstime.ParseLocalTimeCompact(st.Departure)
		if err != nil {
			return VehicleJourney{}, errors.Wrapf(err, "trip %q stop_sequence %d departure", trip.ID, st.StopSequence)
		}
		debark, err := gtfstime.ParseLocalTimeCompact(st.Arrival)
		if err != nil {
			return VehicleJourney{}, errors.Wrapf(err, "trip %q stop_sequence %d arrival", trip.ID, st.StopSequence)
		}
		if debark > board {
			return VehicleJourney{}, fmt.Errorf("trip %q stop_sequence %d: debark %s after board %s", trip.ID, st.StopSequence, debark, board)
		}
		if i > 0 && debark < prevDebark {
			return VehicleJourney{}, fmt.Errorf("trip %q stop_sequence %d: time goes backwards", trip.ID, st.StopSequence)
		}
		prevDebark = board

		entries = append(entries, StopTimeEntry{StopID: st.StopID, Board: board, Debark: debark})
	}

	return VehicleJourney{
		ID:        trip.ID,
		RouteID:   trip.RouteID,
		Headsign:  trip.Headsign,
		StopTimes: entries,
		Timezone:  loc,
	}, nil
}

func resolveDefaultTimezone(reader storage.FeedReader) (*time.Location, error) {
	agencies, err := reader.Agencies()
	if err != nil {
		return nil, errors.Wrap(err, "reading agencies")
	}
	if len(agencies) == 0 {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(agencies[0].Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading timezone %q", agencies[0].Timezone)
	}
	return loc, nil
}

func dateRange(calendars []model.Calendar, calDates []model.CalendarDate) (first, last time.Time, err error) {
	var dates []string
	for _, c := range calendars {
		dates = append(dates, c.StartDate, c.EndDate)
	}
	for _, cd := range calDates {
		dates = append(dates, cd.Date)
	}
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("no calendar or calendar_dates entries: cannot determine date range")
	}

	for _, d := range dates {
		t, err := parseYYYYMMDD(d)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if last.IsZero() || t.After(last) {
			last = t
		}
	}
	return first, last, nil
}

func parseYYYYMMDD(s string) (time.Time, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// resolveServiceDates expands each calendar.txt weekday pattern into
// concrete dates, then applies calendar_dates.txt additions (1) and
// removals (2) on top, per GTFS semantics.
func resolveServiceDates(calendars []model.Calendar, calDates []model.CalendarDate) (map[string][]time.Time, error) {
	dates := make(map[string]map[string]bool)

	for _, c := range calendars {
		start, err := parseYYYYMMDD(c.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseYYYYMMDD(c.EndDate)
		if err != nil {
			return nil, err
		}
		set := dates[c.ServiceID]
		if set == nil {
			set = make(map[string]bool)
			dates[c.ServiceID] = set
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if c.Weekday&(1<<uint(d.Weekday())) != 0 {
				set[d.Format("20060102")] = true
			}
		}
	}

	for _, cd := range calDates {
		set := dates[cd.ServiceID]
		if set == nil {
			set = make(map[string]bool)
			dates[cd.ServiceID] = set
		}
		switch cd.ExceptionType {
		case 1:
			set[cd.Date] = true
		case 2:
			delete(set, cd.Date)
		default:
			return nil, fmt.Errorf("service %q date %q: invalid exception_type %d", cd.ServiceID, cd.Date, cd.ExceptionType)
		}
	}

	out := make(map[string][]time.Time, len(dates))
	for serviceID, set := range dates {
		ds := make([]time.Time, 0, len(set))
		for d := range set {
			t, err := parseYYYYMMDD(d)
			if err != nil {
				return nil, err
			}
			ds = append(ds, t)
		}
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
		out[serviceID] = ds
	}
	return out, nil
}

func buildTransfers(reader storage.FeedReader, defaultDuration gtfstime.PositiveDuration) ([]Transfer, error) {
	raw, err := reader.Transfers()
	if err != nil {
		return nil, errors.Wrap(err, "reading transfers")
	}

	out := make([]Transfer, 0, len(raw))
	for _, t := range raw {
		walking := defaultDuration
		if t.MinTransferTime > 0 {
			walking = gtfstime.NewPositiveDuration(time.Duration(t.MinTransferTime) * time.Second)
		}
		total := walking.Add(gtfstime.NewPositiveDuration(ConnectionOverhead))
		out = append(out, Transfer{
			FromStopID: t.FromStopID,
			ToStopID:   t.ToStopID,
			Walking:    walking,
			Total:      total,
		})
	}
	return out, nil
}
