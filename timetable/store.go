package timetable

import (
	"strconv"
	"strings"

	"github.com/transitkit/laxago/calendar"
	"github.com/transitkit/laxago/gtfstime"
)

// VehicleInput is one unordered input vehicle journey to Build: a
// sequence of (stop, board, debark) tuples sharing one days-pattern.
type VehicleInput struct {
	VehicleJourneyID string
	StopSequence     []int
	Boards           []gtfstime.LocalTime
	Debarks          []gtfstime.LocalTime
	Pattern          calendar.DaysPattern
}

// Store owns the arena of TimetableData built from a stream of
// VehicleInput values, grouped by identical stop sequence. It is
// build-time mutable and read-only afterward, matching §5's
// immutable-after-build model for TransitData as a whole.
type Store struct {
	timetables []*TimetableData
	byStopSeq  map[string][]ID
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{byStopSeq: make(map[string][]ID)}
}

// Timetable returns the TimetableData for id.
func (s *Store) Timetable(id ID) *TimetableData { return s.timetables[id] }

// Len returns the number of distinct timetables built so far.
func (s *Store) Len() int { return len(s.timetables) }

func stopSeqKey(seq []int) string {
	var b strings.Builder
	for i, stop := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(stop))
	}
	return b.String()
}

// Insert places one vehicle into the store, following §4.C's
// grouping-then-ordered-insertion algorithm: vehicles are grouped by
// stop sequence, then inserted into the first existing timetable in
// that group whose per-position vectors remain totally ordered
// (invariant I2); a new timetable is created in the group otherwise.
// Returns the timetable and within-timetable vehicle index the
// vehicle landed at.
func (s *Store) Insert(in VehicleInput) (ID, int) {
	key := stopSeqKey(in.StopSequence)

	for _, id := range s.byStopSeq[key] {
		tt := s.timetables[id]
		if _, ok := tt.insertionRank(in.Boards); ok {
			idx := tt.insertAt(in.Boards, in.Debarks, VehicleData{
				VehicleJourneyID: in.VehicleJourneyID,
				Pattern:          in.Pattern,
			})
			return id, idx
		}
	}

	tt := &TimetableData{stopSequence: append([]int(nil), in.StopSequence...)}
	idx := tt.insertAt(in.Boards, in.Debarks, VehicleData{
		VehicleJourneyID: in.VehicleJourneyID,
		Pattern:          in.Pattern,
	})

	id := ID(len(s.timetables))
	s.timetables = append(s.timetables, tt)
	s.byStopSeq[key] = append(s.byStopSeq[key], id)

	return id, idx
}
