package game

import (
	"FishingDay/internal/economy"
	"FishingDay/internal/pond"
)

// EventKind names a step of the day worth telling the player about.
type EventKind string

const (
	EventDayStart     EventKind = "DAY_START"
	EventForecast     EventKind = "FORECAST"
	EventAcquired     EventKind = "ACQUIRED"
	EventRejected     EventKind = "REJECTED"
	EventAutoPlan     EventKind = "AUTO_PLAN"
	EventSkipped      EventKind = "SKIPPED"
	EventNoViable     EventKind = "NO_VIABLE_CATCH"
	EventNoFishOnPole EventKind = "NO_FISH_FOR_POLE"
	EventEndedEarly   EventKind = "ENDED_EARLY"
	EventCasting      EventKind = "CASTING"
	EventCast         EventKind = "CAST"
	EventJudging      EventKind = "JUDGING"
	EventDayEnd       EventKind = "DAY_END"
)

// Event carries the data for one EventKind. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Day      int
	Wealth   int
	Forecast *pond.Forecast
	Item     economy.Acquirable
	Plan     *economy.Plan
	Cast     *pond.Result
	Report   *DayReport
	Err      error
}

// Listener receives the day's events, typically to render them.
type Listener interface {
	Notice(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) Notice(e Event) { f(e) }

type nopListener struct{}

func (nopListener) Notice(Event) {}
