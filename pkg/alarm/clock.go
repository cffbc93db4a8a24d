package alarm

import "time"

// Timer is a pending one-shot callback
type Timer interface {
	// Stop prevents the callback from running. It returns false if the timer already fired.
	Stop() bool
}

// Clock abstracts time so the scheduler can be driven by tests
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns a Clock backed by the time package
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
