package calendar

import "time"

// DaysPattern is an opaque handle into a DaysPatternPool. Two patterns
// built from the same set of allowed days compare equal.
type DaysPattern int

type daysPatternData struct {
	allowedDays []bool
}

// DaysPatternPool interns days-patterns: it never stores the same
// bitset twice. Construction (GetOrInsert) is build-time only; reads
// (IsAllowed, DaysIn) are lock-free and safe for concurrent use once
// building has finished, matching §5's immutable-after-build model.
type DaysPatternPool struct {
	calendar *Calendar
	patterns []daysPatternData
	scratch  []bool // reused across GetOrInsert calls
}

// NewDaysPatternPool creates an empty pool sized for the given
// calendar.
func NewDaysPatternPool(cal *Calendar) *DaysPatternPool {
	return &DaysPatternPool{
		calendar: cal,
		scratch:  make([]bool, cal.NbDays()),
	}
}

// GetOrInsert interns the set of dates (filtered through the pool's
// calendar; dates outside the calendar's range are silently skipped,
// per spec.md §4.A) and returns a handle to it. A bitset identical to
// one already in the pool is never duplicated: GetOrInsert scans the
// existing entries first.
func (p *DaysPatternPool) GetOrInsert(dates []time.Time) DaysPattern {
	for i := range p.scratch {
		p.scratch[i] = false
	}

	for _, date := range dates {
		if day, ok := p.calendar.DateToDay(date); ok {
			p.scratch[day] = true
		}
	}

	return p.getOrInsertBitset(p.scratch)
}

// GetOrInsertDays is like GetOrInsert but takes Day offsets directly,
// useful when the caller has already resolved dates (e.g. the "daily"
// TimetablesStore strategy fanning a vehicle out one day at a time).
func (p *DaysPatternPool) GetOrInsertDays(days []Day) DaysPattern {
	for i := range p.scratch {
		p.scratch[i] = false
	}
	for _, d := range days {
		if int(d) < len(p.scratch) {
			p.scratch[d] = true
		}
	}
	return p.getOrInsertBitset(p.scratch)
}

func (p *DaysPatternPool) getOrInsertBitset(bitset []bool) DaysPattern {
	for idx, existing := range p.patterns {
		if bitsetsEqual(existing.allowedDays, bitset) {
			return DaysPattern(idx)
		}
	}

	stored := make([]bool, len(bitset))
	copy(stored, bitset)
	p.patterns = append(p.patterns, daysPatternData{allowedDays: stored})
	return DaysPattern(len(p.patterns) - 1)
}

func bitsetsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsAllowed reports whether day is allowed by pattern.
func (p *DaysPatternPool) IsAllowed(pattern DaysPattern, day Day) bool {
	return p.patterns[pattern].allowedDays[day]
}

// DaysIn returns the sorted list of days allowed by pattern.
func (p *DaysPatternPool) DaysIn(pattern DaysPattern) []Day {
	allowed := p.patterns[pattern].allowedDays
	days := make([]Day, 0, len(allowed))
	for i, ok := range allowed {
		if ok {
			days = append(days, Day(i))
		}
	}
	return days
}

// Len returns the number of distinct patterns interned so far. Used by
// tests asserting property P2 (no duplicate bitsets).
func (p *DaysPatternPool) Len() int {
	return len(p.patterns)
}
