// Package loadsdata reads the optional passenger-occupancy overlay
// that feeds basemodel.LoadsData: a CSV mapping (trip, stop position,
// date) to a load category.
package loadsdata

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/calendar"
)

type entryCSV struct {
	TripID       string `csv:"trip_id"`
	StopSequence int    `csv:"stop_sequence"`
	Date         string `csv:"date"`
	Load         string `csv:"load"`
}

func parseLoad(s string) (basemodel.LoadCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "":
		return basemodel.LoadLow, nil
	case "medium":
		return basemodel.LoadMedium, nil
	case "high":
		return basemodel.LoadHigh, nil
	default:
		return basemodel.LoadLow, fmt.Errorf("unknown load category: '%s'", s)
	}
}

// Load parses the CSV read from r into a basemodel.LoadsData, resolving
// each row's date against cal to a calendar.Day. Rows whose date falls
// outside cal's span are dropped, not rejected: a loads overlay that
// slightly overruns the schedule it annotates shouldn't block a build.
func Load(r io.Reader, cal *calendar.Calendar) (*basemodel.LoadsData, error) {
	rows := []*entryCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling loads csv: %w", err)
	}

	data := basemodel.NewLoadsData()

	for _, row := range rows {
		date, err := time.ParseInLocation("20060102", row.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing date '%s': %w", row.Date, err)
		}

		day, ok := cal.DateToDay(date)
		if !ok {
			continue
		}

		cat, err := parseLoad(row.Load)
		if err != nil {
			return nil, fmt.Errorf("trip '%s' position %d: %w", row.TripID, row.StopSequence, err)
		}

		data.Set(row.TripID, row.StopSequence, day, cat)
	}

	return data, nil
}
