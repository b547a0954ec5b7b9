package model

// Pole is the equipment rented for a day. It can only catch fish of its own size.
type Pole struct {
	Size Size
	Cost int
}

// Bait is one consumable unit. Each cast uses exactly one.
type Bait struct {
	Color Color
	Cost  int
}

// Player holds the per-day economy state.
type Player struct {
	Wealth int
	Pole   *Pole
	Baits  []Bait
}

// NewPlayer returns a player with the given opening wealth and no equipment.
func NewPlayer(wealth int) *Player {
	return &Player{Wealth: wealth}
}

// HasBait reports whether at least one bait of color c is held.
func (p *Player) HasBait(c Color) bool {
	for _, b := range p.Baits {
		if b.Color == c {
			return true
		}
	}
	return false
}

// HasOnlyBait reports whether every held bait is of color c. An empty bag counts.
func (p *Player) HasOnlyBait(c Color) bool {
	for _, b := range p.Baits {
		if b.Color != c {
			return false
		}
	}
	return true
}

// ConsumeBait removes one bait of color c and reports whether one was held.
func (p *Player) ConsumeBait(c Color) bool {
	for i, b := range p.Baits {
		if b.Color == c {
			p.Baits = append(p.Baits[:i], p.Baits[i+1:]...)
			return true
		}
	}
	return false
}

// BaitCounts groups the bag by color. Colors with no bait are omitted.
func (p *Player) BaitCounts() map[Color]int {
	out := make(map[Color]int, len(Colors))
	for _, b := range p.Baits {
		out[b.Color]++
	}
	return out
}
