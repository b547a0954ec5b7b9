package game

import (
	"context"
	"time"

	"FishingDay/internal/model"
	"FishingDay/internal/pond"
)

// EndReason says how a day reached Reset.
type EndReason string

const (
	EndPlayed   EndReason = "PLAYED"
	EndSkipped  EndReason = "SKIPPED"
	EndNoViable EndReason = "NO_VIABLE_CATCH"
	// EndQuit days are reported to hooks but count toward no outcome.
	EndQuit EndReason = "QUIT"
)

// PurchaseRecord is one acquisition attempt of the day.
type PurchaseRecord struct {
	Item     string
	Price    int
	Accepted bool
}

// DayReport describes a finished day.
type DayReport struct {
	SessionID     string
	DayID         string
	Day           int
	Choice        Choice
	Pole          *model.Pole
	Forecast      pond.Forecast
	OpeningWealth int
	ClosingWealth int
	DidFish       bool
	Outcome       model.Outcome
	Reason        EndReason
	Purchases     []PurchaseRecord
	Casts         []pond.Result
	StartedAt     time.Time
	EndedAt       time.Time
}

// Earned returns the total reward of the day's catches.
func (r DayReport) Earned() int {
	n := 0
	for _, c := range r.Casts {
		n += c.Reward()
	}
	return n
}

// Caught returns how many casts landed a fish.
func (r DayReport) Caught() int {
	n := 0
	for _, c := range r.Casts {
		if c.Caught {
			n++
		}
	}
	return n
}

// DayHook is told about every finished day, and about the day the player quit,
// for journaling or digests.
type DayHook interface {
	DayEnded(ctx context.Context, r DayReport) error
}
