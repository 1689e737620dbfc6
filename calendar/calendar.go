// Package calendar maps calendar dates onto the dataset's compact day
// index, and interns sets of service days ("days patterns") into a
// shared pool so that equal bitsets are stored once.
//
// This is §4.A of the journey-planning engine: a Calendar fixes the
// contiguous date range the dataset covers, and a DaysPatternPool
// deduplicates the day-bitsets vehicles run on.
package calendar

import (
	"fmt"
	"time"
)

// Day is a zero-based offset into the dataset's date range: 0 is
// Calendar.FirstDate(), Day(Calendar.NbDays()-1) is Calendar.LastDate().
type Day uint16

// MaxDays is the hard limit on a dataset's date range (spec.md §7,
// Category 5 resource error). A Day is a uint16, so this is also the
// type's natural ceiling.
const MaxDays = 65535

// Calendar fixes the contiguous date range [FirstDate, LastDate] the
// dataset covers.
type Calendar struct {
	firstDate time.Time // always truncated to midnight UTC
	nbDays    int
}

// ErrCalendarTooLarge is returned when the requested date range would
// need more than MaxDays distinct days.
var ErrCalendarTooLarge = fmt.Errorf("calendar would exceed %d days", MaxDays)

// New builds a Calendar spanning [firstDate, lastDate] inclusive. Both
// bounds are truncated to UTC midnight. Returns ErrCalendarTooLarge if
// the range doesn't fit in a Day.
func New(firstDate, lastDate time.Time) (*Calendar, error) {
	first := truncateUTC(firstDate)
	last := truncateUTC(lastDate)

	if last.Before(first) {
		return nil, fmt.Errorf("last date %s is before first date %s", last, first)
	}

	nbDays := int(last.Sub(first).Hours()/24) + 1
	if nbDays > MaxDays {
		return nil, ErrCalendarTooLarge
	}

	return &Calendar{firstDate: first, nbDays: nbDays}, nil
}

func truncateUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstDate is the earliest date covered by the calendar.
func (c *Calendar) FirstDate() time.Time { return c.firstDate }

// LastDate is the latest date covered by the calendar.
func (c *Calendar) LastDate() time.Time { return c.firstDate.AddDate(0, 0, c.nbDays-1) }

// NbDays is the number of distinct days in the calendar.
func (c *Calendar) NbDays() int { return c.nbDays }

// DateToDay converts a date into a Day offset. Returns false if the
// date falls outside the calendar's range.
func (c *Calendar) DateToDay(date time.Time) (Day, bool) {
	d := truncateUTC(date)
	offset := int(d.Sub(c.firstDate).Hours() / 24)
	if offset < 0 || offset >= c.nbDays {
		return 0, false
	}
	return Day(offset), true
}

// DayToDate converts a Day offset back into a date. Panics if day is
// out of range: callers only ever hold Day values the calendar itself
// produced.
func (c *Calendar) DayToDate(day Day) time.Time {
	if int(day) >= c.nbDays {
		panic(fmt.Sprintf("day %d out of range [0, %d)", day, c.nbDays))
	}
	return c.firstDate.AddDate(0, 0, int(day))
}

// Contains reports whether date falls within the calendar's range.
func (c *Calendar) Contains(date time.Time) bool {
	_, ok := c.DateToDay(date)
	return ok
}
