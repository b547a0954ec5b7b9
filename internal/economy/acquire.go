package economy

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"

	"FishingDay/internal/model"
)

var (
	// ErrInsufficientFunds is returned when the player cannot pay the full price.
	ErrInsufficientFunds = errors.New("not enough wealth")
	// ErrInvalidQuantity is returned for non-positive purchase quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Acquirable is anything the player pays for: a pole rental or a batch of bait.
type Acquirable interface {
	Price() int
	Grant(p *model.Player)
	String() string
}

// Acquire charges the player and grants the item. Nothing changes when it fails.
func Acquire(p *model.Player, a Acquirable) error {
	price := a.Price()
	if price < 0 || price > p.Wealth {
		return errors.Wrapf(ErrInsufficientFunds, "%s costs %d, have %d", a, price, p.Wealth)
	}
	p.Wealth -= price
	a.Grant(p)
	return nil
}

// Rental rents a pole for the day.
type Rental struct {
	Pole model.Pole
}

func (r Rental) Price() int { return r.Pole.Cost }

func (r Rental) Grant(p *model.Player) {
	pole := r.Pole
	p.Pole = &pole
}

func (r Rental) String() string { return fmt.Sprintf("%s fishing pole", r.Pole.Size) }

// BaitPurchase buys Quantity units of one bait.
type BaitPurchase struct {
	Bait     model.Bait
	Quantity int
}

// Price saturates at math.MaxInt so a huge quantity can never wrap into an
// affordable or negative price.
func (b BaitPurchase) Price() int {
	if b.Quantity <= 0 || b.Bait.Cost <= 0 {
		return 0
	}
	if b.Quantity > math.MaxInt/b.Bait.Cost {
		return math.MaxInt
	}
	return b.Bait.Cost * b.Quantity
}

func (b BaitPurchase) Grant(p *model.Player) {
	for i := 0; i < b.Quantity; i++ {
		p.Baits = append(p.Baits, b.Bait)
	}
}

func (b BaitPurchase) String() string { return fmt.Sprintf("%d %s bait", b.Quantity, b.Bait.Color) }
