package pond

import (
	"math/rand/v2"
	"sort"

	"FishingDay/internal/model"
)

// Pond is the day's multiset of catchable fish.
type Pond struct {
	fish []model.Fish
	rng  *rand.Rand
}

// New returns an empty pond that draws catches from rng.
func New(rng *rand.Rand) *Pond {
	return &Pond{rng: rng}
}

// Restock replaces the whole content of the pond.
func (p *Pond) Restock(fish []model.Fish) {
	p.fish = append(p.fish[:0:0], fish...)
}

// Len returns the number of fish left.
func (p *Pond) Len() int { return len(p.fish) }

// HasAny reports whether any fish is left.
func (p *Pond) HasAny() bool { return len(p.fish) > 0 }

// CanBeCaughtBy reports whether any fish of the given size is left.
func (p *Pond) CanBeCaughtBy(size model.Size) bool {
	for _, f := range p.fish {
		if f.Size == size {
			return true
		}
	}
	return false
}

// HasSpecific reports whether a fish with exactly this size and color is left.
func (p *Pond) HasSpecific(size model.Size, color model.Color) bool {
	for _, f := range p.fish {
		if f.Size == size && f.Color == color {
			return true
		}
	}
	return false
}

// Count returns how many fish of the given size and color are left.
func (p *Pond) Count(size model.Size, color model.Color) int {
	n := 0
	for _, f := range p.fish {
		if f.Size == size && f.Color == color {
			n++
		}
	}
	return n
}

// Counts groups the pond by size and color, ordered by size then color.
// Empty groups are omitted.
func (p *Pond) Counts() []model.GroupCount {
	byGroup := make(map[model.Group]int)
	for _, f := range p.fish {
		byGroup[model.Group{Size: f.Size, Color: f.Color}]++
	}
	out := make([]model.GroupCount, 0, len(byGroup))
	for g, n := range byGroup {
		out = append(out, model.GroupCount{Group: g, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size < out[j].Size
		}
		return out[i].Color < out[j].Color
	})
	return out
}

// Best returns the size and color group holding the most fish.
// Ties go to the smaller size, then to the earlier color. An empty pond yields small red.
func (p *Pond) Best() model.Group {
	best := model.GroupCount{Group: model.Group{Size: model.SizeSmall, Color: model.ColorRed}}
	for _, gc := range p.Counts() {
		if gc.Count > best.Count {
			best = gc
		}
	}
	return best.Group
}

// take removes and returns a uniformly chosen fish matching size and color.
func (p *Pond) take(size model.Size, color model.Color) (model.Fish, bool) {
	matches := make([]int, 0, len(p.fish))
	for i, f := range p.fish {
		if f.Size == size && f.Color == color {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return model.Fish{}, false
	}
	idx := matches[p.rng.IntN(len(matches))]
	caught := p.fish[idx]
	p.fish = append(p.fish[:idx], p.fish[idx+1:]...)
	return caught, true
}
