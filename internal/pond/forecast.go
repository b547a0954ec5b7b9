package pond

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"FishingDay/internal/config"
	"FishingDay/internal/model"
	"FishingDay/internal/rng"
)

// Forecast describes how a day's pond was stocked.
type Forecast struct {
	Counts          map[model.Size]int
	RedPercentage   int
	BluePercentage  int
	GreenPercentage int
}

// Total returns the number of fish stocked.
func (f Forecast) Total() int {
	n := 0
	for _, c := range f.Counts {
		n += c
	}
	return n
}

// Generator draws a new pond each day from the configured ranges.
type Generator struct {
	counts config.SizeTable[config.Range]
	values config.SizeTable[config.Range]
	red    config.Range
	blue   config.Range
	rng    *rand.Rand
	log    *zap.Logger
}

// NewGenerator creates a Generator from the game settings.
func NewGenerator(cfg config.Game, r *rand.Rand, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		counts: cfg.FishCount,
		values: cfg.FishValue,
		red:    cfg.RedPercentage,
		blue:   cfg.BluePercentage,
		rng:    r,
		log:    log,
	}
}

// Generate restocks p and returns the forecast it was stocked from.
// Unconsumed fish from the previous day are discarded.
func (g *Generator) Generate(p *Pond) Forecast {
	fc := Forecast{Counts: make(map[model.Size]int, len(model.Sizes))}
	for _, size := range model.Sizes {
		r := g.counts.Of(size)
		fc.Counts[size] = rng.IntRange(g.rng, r.Min, r.Max)
	}

	fc.RedPercentage = rng.IntRange(g.rng, g.red.Min, g.red.Max)
	fc.BluePercentage = rng.IntRange(g.rng, g.blue.Min, g.blue.Max)
	// Not renormalized: when red+blue exceed 100 green simply gets no share.
	fc.GreenPercentage = max(0, 100-fc.RedPercentage-fc.BluePercentage)

	fish := make([]model.Fish, 0, fc.Total())
	for _, size := range model.Sizes {
		for i := 0; i < fc.Counts[size]; i++ {
			fish = append(fish, model.Fish{
				Size:  size,
				Color: g.rollColor(fc.RedPercentage, fc.BluePercentage),
				Value: g.rollValue(size),
			})
		}
	}
	p.Restock(fish)

	g.log.Debug("pond restocked",
		zap.Int("small", fc.Counts[model.SizeSmall]),
		zap.Int("medium", fc.Counts[model.SizeMedium]),
		zap.Int("big", fc.Counts[model.SizeBig]),
		zap.Int("red_pct", fc.RedPercentage),
		zap.Int("blue_pct", fc.BluePercentage),
		zap.Int("green_pct", fc.GreenPercentage),
	)
	return fc
}

func (g *Generator) rollColor(redPct, bluePct int) model.Color {
	roll := g.rng.IntN(100)
	if roll < redPct {
		return model.ColorRed
	}
	if roll < redPct+bluePct {
		return model.ColorBlue
	}
	return model.ColorGreen
}

func (g *Generator) rollValue(size model.Size) int {
	r := g.values.Of(size)
	return rng.IntRange(g.rng, r.Min, r.Max)
}
