package gtfstime

import (
	"fmt"
	"time"

	"github.com/transitkit/laxago/calendar"
)

// LocalTime is a local daily offset in seconds from the start of a
// service day. It may be negative (rare) or exceed 86400 (common:
// GTFS/NTFS encode trips past midnight as e.g. 25:30:00 rather than
// rolling the date over), matching spec.md's
// SecondsSinceTimezonedDayStart.
type LocalTime int32

// NewLocalTime builds a LocalTime from hours/minutes/seconds
// components, allowing hours >= 24 for overnight service.
func NewLocalTime(h, m, s int) LocalTime {
	return LocalTime(h*3600 + m*60 + s)
}

// ParseLocalTime parses a GTFS-style "HH:MM:SS" string (hours may
// exceed 23).
func ParseLocalTime(s string) (LocalTime, error) {
	var h, m, sec int
	n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if err != nil || n != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM:SS", s)
	}
	if m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid time %q: minute/second out of range", s)
	}
	return NewLocalTime(h, m, sec), nil
}

// ParseLocalTimeCompact parses the "HHMMSS" form (no colons, hours may
// exceed 23) used internally once a feed's stop_times have been
// normalized (see parse.ParseStopTimes).
func ParseLocalTimeCompact(s string) (LocalTime, error) {
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid compact time %q: want 6 digits", s)
	}
	var h, m, sec int
	n, err := fmt.Sscanf(s, "%2d%2d%2d", &h, &m, &sec)
	if err != nil || n != 3 {
		return 0, fmt.Errorf("invalid compact time %q", s)
	}
	if m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid compact time %q: minute/second out of range", s)
	}
	return NewLocalTime(h, m, sec), nil
}

func (t LocalTime) String() string {
	neg := ""
	v := int64(t)
	if v < 0 {
		neg = "-"
		v = -v
	}
	h := v / 3600
	m := (v % 3600) / 60
	s := v % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", neg, h, m, s)
}

// UTCInstant is an absolute instant expressed as a second count from
// the dataset's Calendar.FirstDate() at UTC midnight. It is the
// engine's sole currency for comparing times across stops and
// timezones: spec.md's SecondsSinceDatasetUTCStart.
type UTCInstant int64

// Combine builds a UTCInstant from a day offset, a local time, and the
// timezone that local time is expressed in.
func Combine(cal *calendar.Calendar, day calendar.Day, local LocalTime, loc *time.Location) UTCInstant {
	dayStart := cal.DayToDate(day)
	localMidnight := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, loc)
	instant := localMidnight.Add(time.Duration(local) * time.Second)
	base := time.Date(cal.FirstDate().Year(), cal.FirstDate().Month(), cal.FirstDate().Day(), 0, 0, 0, 0, time.UTC)
	return UTCInstant(instant.UTC().Sub(base) / time.Second)
}

// FromTime converts an absolute time.Time into a UTCInstant relative
// to cal's first date.
func FromTime(cal *calendar.Calendar, t time.Time) UTCInstant {
	base := time.Date(cal.FirstDate().Year(), cal.FirstDate().Month(), cal.FirstDate().Day(), 0, 0, 0, 0, time.UTC)
	return UTCInstant(t.UTC().Sub(base) / time.Second)
}

// Time converts the instant back to an absolute time.Time in UTC.
func (u UTCInstant) Time(cal *calendar.Calendar) time.Time {
	base := time.Date(cal.FirstDate().Year(), cal.FirstDate().Month(), cal.FirstDate().Day(), 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(u) * time.Second)
}

// Add adds a PositiveDuration to an instant.
func (u UTCInstant) Add(d PositiveDuration) UTCInstant {
	return u + UTCInstant(d.Seconds())
}

// Sub returns the PositiveDuration between two instants. Panics if
// other is after u: callers (e.g. criteria construction) must only
// subtract a departure from a later arrival.
func (u UTCInstant) Sub(other UTCInstant) PositiveDuration {
	if other > u {
		panic(fmt.Sprintf("Sub: %d is before %d", u, other))
	}
	return PositiveDuration{seconds: int64(u - other)}
}

// Before reports whether u happens before other.
func (u UTCInstant) Before(other UTCInstant) bool { return u < other }

// ParseDatetime parses the CLI's "%Y%m%dT%H%M%S" datetime format into
// an absolute time.Time in loc, per spec.md §6.
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("20060102T150405", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing datetime %q (expected format 20210101T060000): %w", s, err)
	}
	return t, nil
}
