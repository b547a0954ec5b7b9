package economy

import (
	"github.com/cockroachdb/errors"

	"FishingDay/internal/config"
	"FishingDay/internal/model"
)

// Shop prices poles and bait from the game settings.
type Shop struct {
	poleCost config.SizeTable[int]
	baitCost config.ColorTable[int]
}

// NewShop creates a Shop from the game settings.
func NewShop(cfg config.Game) *Shop {
	return &Shop{poleCost: cfg.PoleCost, baitCost: cfg.BaitCost}
}

// Pole returns the pole of the given size with its rental cost.
func (s *Shop) Pole(size model.Size) model.Pole {
	return model.Pole{Size: size, Cost: s.poleCost.Of(size)}
}

// Bait returns one unit of bait of the given color with its cost.
func (s *Shop) Bait(color model.Color) model.Bait {
	return model.Bait{Color: color, Cost: s.baitCost.Of(color)}
}

// CheapestBait returns the lowest bait cost.
func (s *Shop) CheapestBait() int {
	return min(s.baitCost.Red, s.baitCost.Blue, s.baitCost.Green)
}

// Rent rents the pole of the given size for p.
func (s *Shop) Rent(p *model.Player, size model.Size) error {
	return Acquire(p, Rental{Pole: s.Pole(size)})
}

// Buy buys quantity units of bait of the given color for p.
func (s *Shop) Buy(p *model.Player, color model.Color, quantity int) error {
	if quantity <= 0 {
		return errors.Wrapf(ErrInvalidQuantity, "got %d", quantity)
	}
	bait := s.Bait(color)
	if bait.Cost > 0 && quantity > p.Wealth/bait.Cost {
		return errors.Wrapf(ErrInsufficientFunds, "%d %s bait at %d each, have %d", quantity, color, bait.Cost, p.Wealth)
	}
	return Acquire(p, BaitPurchase{Bait: bait, Quantity: quantity})
}
