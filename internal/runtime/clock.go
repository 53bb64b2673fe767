package runtime

import "time"

// Clock abstracts the engine's time source so tests can drive frames and
// motion phase deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default wall clock.
var SystemClock Clock = systemClock{}
