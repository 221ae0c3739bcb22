package client

import "time"

// Clock abstracts wall-clock time so the offline queue's cooldown timer
// can be driven virtually in tests, per spec.md §9 REDESIGN FLAGS:
// "model as an explicit state machine over {Idle, Draining, CoolingDown}
// driven by a timer source, so tests can inject virtual time."
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// realClock is the production Clock, backed by the time package.
type realClock struct{}

func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time                  { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
