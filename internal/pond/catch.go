package pond

import (
	"github.com/cockroachdb/errors"

	"FishingDay/internal/model"
)

var (
	// ErrNoPole is returned when a cast is attempted without a rented pole.
	ErrNoPole = errors.New("no fishing pole rented")
	// ErrNoBait is returned when no bait of the chosen color is held.
	ErrNoBait = errors.New("no bait of that color")
)

// Result is the outcome of one cast.
type Result struct {
	Color  model.Color
	Caught bool
	Fish   model.Fish
}

// Reward returns the value earned by the cast, zero on a miss.
func (r Result) Reward() int {
	if !r.Caught {
		return 0
	}
	return r.Fish.Value
}

// Attempt consumes one bait of color from player, whatever the outcome, and tries to
// take a fish of the pole's size and that color out of p. The reward is not applied.
func Attempt(p *Pond, player *model.Player, color model.Color) (Result, error) {
	if player.Pole == nil {
		return Result{}, ErrNoPole
	}
	if !player.ConsumeBait(color) {
		return Result{}, errors.Wrapf(ErrNoBait, "color %s", color)
	}

	fish, ok := p.take(player.Pole.Size, color)
	return Result{Color: color, Caught: ok, Fish: fish}, nil
}
