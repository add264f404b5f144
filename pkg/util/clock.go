package util

import "time"

type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

type RealClock struct{}

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (RealClock) Now() time.Time                         { return time.Now() }

// TimestampLayout is the transaction-time format of the execution report.
const TimestampLayout = "20060102-150405.000"

// Timestamper renders report timestamps from a Clock. The matching core
// treats the returned string as an opaque tag.
type Timestamper struct {
	Clock Clock
}

func (t Timestamper) Stamp() string {
	return t.Clock.Now().Format(TimestampLayout)
}
