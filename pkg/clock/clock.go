package clock

import "time"

// Clock supplies wall-clock time to components whose behavior depends on
// "now", so tests can drive due-ness without sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
