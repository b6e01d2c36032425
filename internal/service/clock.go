package service

import "time"

// Clock provides the wall-clock time the ledger stamps on intervals and
// clear markers. It exists so offset and clamping edge cases can be tested
// against fixed instants.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// TestClock reports a fixed, mutable time.
type TestClock struct {
	CurrentTime time.Time
}

func (t *TestClock) Now() time.Time {
	return t.CurrentTime
}
