package calibration

import "time"

// Clock abstracts wall-clock time so day statuses and completion can be
// tested without waiting for calendar days to pass.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// RealClock returns the system clock.
func RealClock() Clock {
	return realClock{}
}
