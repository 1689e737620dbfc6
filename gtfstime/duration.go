// Package gtfstime holds the engine's time types: durations and
// dataset-relative timestamps, in both local and UTC flavors. See
// spec.md §3 "Time".
package gtfstime

import (
	"fmt"
	"time"
)

// PositiveDuration is a non-negative duration. Constructing one from a
// negative value panics: unlike malformed input from an external
// archive (handled with errors, per spec.md §7), a negative duration
// reaching this constructor is always a programming error in the
// core itself.
type PositiveDuration struct {
	seconds int64
}

// NewPositiveDuration builds a PositiveDuration from a time.Duration.
// Panics if d is negative.
func NewPositiveDuration(d time.Duration) PositiveDuration {
	if d < 0 {
		panic(fmt.Sprintf("negative duration %s is not a PositiveDuration", d))
	}
	return PositiveDuration{seconds: int64(d / time.Second)}
}

// Zero is the zero-length PositiveDuration.
var Zero = PositiveDuration{}

// Duration returns the value as a time.Duration.
func (d PositiveDuration) Duration() time.Duration {
	return time.Duration(d.seconds) * time.Second
}

// Seconds returns the value in whole seconds.
func (d PositiveDuration) Seconds() int64 { return d.seconds }

// Add returns d + other.
func (d PositiveDuration) Add(other PositiveDuration) PositiveDuration {
	return PositiveDuration{seconds: d.seconds + other.seconds}
}

func (d PositiveDuration) String() string {
	return d.Duration().String()
}
