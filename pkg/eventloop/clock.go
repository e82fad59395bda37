package eventloop

import "time"

// Timer is the handle returned for a scheduled callback. The form core never
// cancels its timers; the handle exists for owners that tear the host down.
type Timer interface {
	Stop() bool
}

// Clock supplies the current time and delayed callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster enqueues work onto the host loop from foreign goroutines.
type Poster interface {
	Post(fn func()) bool
}

// Wall is the real-time Clock. Its timers fire on their own goroutines, so
// it only suits callers that do not share state with a Loop.
var Wall Clock = wallClock{}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
