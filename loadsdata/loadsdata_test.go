package loadsdata_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/loadsdata"
)

func newCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New(
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return cal
}

func TestLoadParsesRows(t *testing.T) {
	cal := newCalendar(t)
	csv := `trip_id,stop_sequence,date,load
V1,0,20210101,high
V1,1,20210102,medium
V2,0,20210101,low
`
	data, err := loadsdata.Load(strings.NewReader(csv), cal)
	require.NoError(t, err)

	day1, ok := cal.DateToDay(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	day2, ok := cal.DateToDay(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)

	assert.Equal(t, basemodel.LoadHigh, data.Get("V1", 0, day1))
	assert.Equal(t, basemodel.LoadMedium, data.Get("V1", 1, day2))
	assert.Equal(t, basemodel.LoadLow, data.Get("V2", 0, day1))
}

func TestLoadDropsRowsOutsideCalendarRange(t *testing.T) {
	cal := newCalendar(t)
	csv := `trip_id,stop_sequence,date,load
V1,0,20210101,high
V1,1,20300101,high
`
	data, err := loadsdata.Load(strings.NewReader(csv), cal)
	require.NoError(t, err)

	day1, ok := cal.DateToDay(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, basemodel.LoadHigh, data.Get("V1", 0, day1))

	// the out-of-range row was silently dropped, not an error: the
	// only way to observe it is that V1's position 1 defaults to Low
	// at every in-range day instead of carrying High.
	assert.Equal(t, basemodel.LoadLow, data.Get("V1", 1, day1))
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	cal := newCalendar(t)
	csv := `trip_id,stop_sequence,date,load
V1,0,20210101,crowded
`
	_, err := loadsdata.Load(strings.NewReader(csv), cal)
	assert.Error(t, err)
}

func TestLoadCaseInsensitiveCategories(t *testing.T) {
	cal := newCalendar(t)
	csv := `trip_id,stop_sequence,date,load
V1,0,20210101,HIGH
V2,0,20210101,Medium
V3,0,20210101,
`
	data, err := loadsdata.Load(strings.NewReader(csv), cal)
	require.NoError(t, err)

	day1, ok := cal.DateToDay(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)

	assert.Equal(t, basemodel.LoadHigh, data.Get("V1", 0, day1))
	assert.Equal(t, basemodel.LoadMedium, data.Get("V2", 0, day1))
	assert.Equal(t, basemodel.LoadLow, data.Get("V3", 0, day1))
}

func TestLoadRejectsMalformedDate(t *testing.T) {
	cal := newCalendar(t)
	csv := `trip_id,stop_sequence,date,load
V1,0,not-a-date,high
`
	_, err := loadsdata.Load(strings.NewReader(csv), cal)
	assert.Error(t, err)
}
