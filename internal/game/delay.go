package game

import "time"

// Delayer suspends the day for flavor. Delays are not cancellable.
type Delayer interface {
	Delay(d time.Duration)
}

// SleepDelayer sleeps for real.
type SleepDelayer struct{}

func (SleepDelayer) Delay(d time.Duration) { time.Sleep(d) }

// NoDelay returns immediately. Used by tests and the autopilot.
type NoDelay struct{}

func (NoDelay) Delay(time.Duration) {}
