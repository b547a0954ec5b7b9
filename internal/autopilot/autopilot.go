// Package autopilot plays days without a human: it always takes the auto
// allocation and casts the held bait with the most matching fish.
package autopilot

import (
	"context"

	"go.uber.org/zap"

	"FishingDay/internal/game"
	"FishingDay/internal/model"
)

// Pilot is a game.Controller that needs no input.
type Pilot struct {
	days int // 0 plays until stopped
	log  *zap.Logger
}

var (
	_ game.Controller = (*Pilot)(nil)
	_ game.Listener   = (*Pilot)(nil)
)

// New creates a Pilot that stops asking to continue after days days.
func New(days int, log *zap.Logger) *Pilot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pilot{days: days, log: log}
}

func (p *Pilot) ChooseEquipment(context.Context, game.View) (game.Choice, error) {
	return game.ChooseAuto, nil
}

// NextOrder is never reached after an auto choice; it declines just in case.
func (p *Pilot) NextOrder(context.Context, game.View) (game.Order, bool, error) {
	return game.Order{}, false, nil
}

func (p *Pilot) ChooseBait(_ context.Context, v game.View) (model.Color, bool, error) {
	color, ok := PickBait(v)
	return color, ok, nil
}

func (p *Pilot) Cast(context.Context) error { return nil }

func (p *Pilot) Continue(_ context.Context, r game.DayReport) (bool, error) {
	return p.days <= 0 || r.Day < p.days, nil
}

// Notice logs the events a person would have read on screen.
func (p *Pilot) Notice(e game.Event) {
	switch e.Kind {
	case game.EventAutoPlan:
		if e.Plan != nil {
			p.log.Info("auto plan",
				zap.Int("day", e.Day),
				zap.Stringer("size", e.Plan.Best.Size),
				zap.Stringer("color", e.Plan.Best.Color),
				zap.Int("bundles", e.Plan.Bundles),
				zap.Int("spent", e.Plan.Spent()),
			)
		}
	case game.EventRejected:
		p.log.Warn("rejected", zap.Int("day", e.Day), zap.Error(e.Err))
	case game.EventNoViable, game.EventNoFishOnPole:
		p.log.Info(string(e.Kind), zap.Int("day", e.Day), zap.Int("wealth", e.Wealth))
	case game.EventCast:
		if e.Cast != nil && e.Cast.Caught {
			p.log.Debug("caught",
				zap.Int("day", e.Day),
				zap.Stringer("size", e.Cast.Fish.Size),
				zap.Stringer("color", e.Cast.Fish.Color),
				zap.Int("value", e.Cast.Fish.Value),
			)
		}
	}
}

// PickBait returns the held bait color with the most fish in the pond that the
// rented pole can land. With no pole, or no held color matching any fish, it
// falls back to the first held color. ok is false when no bait is held.
func PickBait(v game.View) (model.Color, bool) {
	var (
		best      model.Color
		bestCount = -1
	)
	for _, c := range model.Colors {
		if v.Baits[c] <= 0 {
			continue
		}
		n := 0
		if v.Pole != nil {
			for _, gc := range v.Pond {
				if gc.Size == v.Pole.Size && gc.Color == c {
					n += gc.Count
				}
			}
		}
		if n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, bestCount >= 0
}
