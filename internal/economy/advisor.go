package economy

import (
	"go.uber.org/zap"

	"FishingDay/internal/config"
	"FishingDay/internal/model"
	"FishingDay/internal/pond"
)

// Purchase is one accepted or rejected acquisition made by the advisor.
type Purchase struct {
	Item Acquirable
	Err  error
}

// Plan records what an auto-allocation decided and bought.
type Plan struct {
	Best         model.Group
	Rented       bool
	WealthBefore int
	WeightedCost int
	Bundles      int
	Remainder    int
	Purchases    []Purchase
}

// Spent returns the total price of the accepted purchases.
func (p Plan) Spent() int {
	n := 0
	for _, pu := range p.Purchases {
		if pu.Err == nil {
			n += pu.Item.Price()
		}
	}
	return n
}

// Advisor rents the pole and splits the budget across bait with weights
// biased toward the most plentiful color in the pond.
type Advisor struct {
	shop        *Shop
	bestWeight  int
	otherWeight int
	// includeBest buys the best color's balance share as well.
	includeBest bool
	log         *zap.Logger
}

// NewAdvisor creates an Advisor from the game settings.
func NewAdvisor(shop *Shop, cfg config.Game, log *zap.Logger) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	includeBest := true
	if cfg.IncludeBestInBalance != nil {
		includeBest = *cfg.IncludeBestInBalance
	}
	return &Advisor{
		shop:        shop,
		bestWeight:  cfg.BestBaitWeight,
		otherWeight: cfg.OtherBaitWeight,
		includeBest: includeBest,
		log:         log,
	}
}

// WeightedCost returns the price of one bundle when best is the advised color.
func (a *Advisor) WeightedCost(best model.Color) int {
	total := a.bestWeight * a.shop.Bait(best).Cost
	for _, c := range a.balanceColors(best) {
		total += a.otherWeight * a.shop.Bait(c).Cost
	}
	return total
}

func (a *Advisor) balanceColors(best model.Color) []model.Color {
	if a.includeBest {
		return model.Colors
	}
	out := make([]model.Color, 0, len(model.Colors)-1)
	for _, c := range model.Colors {
		if c != best {
			out = append(out, c)
		}
	}
	return out
}

// AutoAllocate rents the pole for the most plentiful group in p, then spends what is
// left on weighted bundles of bait and the change on single units.
// Spending never exceeds the player's wealth at call time.
func (a *Advisor) AutoAllocate(p *pond.Pond, player *model.Player) Plan {
	best := p.Best()
	plan := Plan{Best: best, WealthBefore: player.Wealth}

	rental := Rental{Pole: a.shop.Pole(best.Size)}
	err := Acquire(player, rental)
	plan.Purchases = append(plan.Purchases, Purchase{Item: rental, Err: err})
	plan.Rented = err == nil
	if err != nil {
		a.log.Debug("auto rental rejected", zap.Stringer("size", best.Size), zap.Error(err))
	}

	plan.WeightedCost = a.WeightedCost(best.Color)
	plan.Bundles = player.Wealth / plan.WeightedCost
	plan.Remainder = player.Wealth % plan.WeightedCost

	a.buy(&plan, player, best.Color, a.bestWeight*plan.Bundles)
	for _, c := range a.balanceColors(best.Color) {
		a.buy(&plan, player, c, a.otherWeight*plan.Bundles)
	}

	a.spendChange(&plan, player, best.Color)

	a.log.Debug("auto allocation done",
		zap.Stringer("size", best.Size),
		zap.Stringer("color", best.Color),
		zap.Int("weighted_cost", plan.WeightedCost),
		zap.Int("bundles", plan.Bundles),
		zap.Int("remainder", plan.Remainder),
		zap.Int("spent", plan.Spent()),
	)
	return plan
}

func (a *Advisor) spendChange(plan *Plan, player *model.Player, best model.Color) {
	change := plan.Remainder

	bestCost := a.shop.Bait(best).Cost
	if change >= bestCost {
		n := change / bestCost
		if a.buy(plan, player, best, n) {
			change -= n * bestCost
		}
	}

	for _, c := range []model.Color{model.ColorGreen, model.ColorBlue, model.ColorRed} {
		cost := a.shop.Bait(c).Cost
		if change < cost {
			continue
		}
		if a.buy(plan, player, c, 1) {
			change -= cost
		}
	}
}

func (a *Advisor) buy(plan *Plan, player *model.Player, color model.Color, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	item := BaitPurchase{Bait: a.shop.Bait(color), Quantity: quantity}
	err := Acquire(player, item)
	plan.Purchases = append(plan.Purchases, Purchase{Item: item, Err: err})
	return err == nil
}
