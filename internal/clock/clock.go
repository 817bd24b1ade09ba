// Package clock provides an injectable time source so billing logic can be
// driven with deterministic "now" values in tests.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// At returns a Fixed clock at the given instant.
func At(t time.Time) Fixed { return Fixed{T: t} }
