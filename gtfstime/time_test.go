package gtfstime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/gtfstime"
)

func TestParseLocalTime(t *testing.T) {
	lt, err := gtfstime.ParseLocalTime("08:15:00")
	require.NoError(t, err)
	assert.Equal(t, gtfstime.NewLocalTime(8, 15, 0), lt)

	// Overnight trips: GTFS allows hours past 23.
	lt, err = gtfstime.ParseLocalTime("25:30:00")
	require.NoError(t, err)
	assert.Equal(t, gtfstime.NewLocalTime(25, 30, 0), lt)
	assert.Equal(t, "25:30:00", lt.String())

	_, err = gtfstime.ParseLocalTime("08:99:00")
	assert.Error(t, err)
}

func TestCombineAndSub(t *testing.T) {
	cal, err := calendar.New(
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	morning := gtfstime.NewLocalTime(8, 0, 0)
	evening := gtfstime.NewLocalTime(18, 0, 0)

	departure := gtfstime.Combine(cal, 0, morning, time.UTC)
	arrival := gtfstime.Combine(cal, 0, evening, time.UTC)

	d := arrival.Sub(departure)
	assert.Equal(t, int64(10*3600), d.Seconds())
}

func TestCombineOvernight(t *testing.T) {
	cal, err := calendar.New(
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	// 25:30 on day 0 lands on day 1 at 01:30.
	lt := gtfstime.NewLocalTime(25, 30, 0)
	instant := gtfstime.Combine(cal, 0, lt, time.UTC)
	got := instant.Time(cal)
	assert.Equal(t, time.Date(2021, 1, 2, 1, 30, 0, 0, time.UTC), got)
}

func TestParseDatetime(t *testing.T) {
	got, err := gtfstime.ParseDatetime("20210101T060000", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC), got)

	_, err = gtfstime.ParseDatetime("not-a-datetime", time.UTC)
	assert.Error(t, err)
}

func TestPositiveDurationPanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() {
		gtfstime.NewPositiveDuration(-time.Second)
	})
}

func TestPositiveDurationAdd(t *testing.T) {
	a := gtfstime.NewPositiveDuration(30 * time.Second)
	b := gtfstime.NewPositiveDuration(45 * time.Second)
	assert.Equal(t, int64(75), a.Add(b).Seconds())
}
