package model

// Size is the ordinal category of a fish. It also selects the pole tier able to catch it.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeBig
)

// Sizes lists every category from the smallest tier up.
var Sizes = []Size{SizeSmall, SizeMedium, SizeBig}

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeBig:
		return "big"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the configured categories.
func (s Size) Valid() bool { return s >= SizeSmall && s <= SizeBig }

// Color is the tag of a fish; a bait of the same color is needed to catch it.
type Color int

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
)

// Colors lists every tag in menu order.
var Colors = []Color{ColorRed, ColorBlue, ColorGreen}

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	default:
		return "unknown"
	}
}

func (c Color) Valid() bool { return c >= ColorRed && c <= ColorGreen }

// Fish is one catchable unit. Value is fixed when the pond is stocked.
type Fish struct {
	Size  Size
	Color Color
	Value int
}

// Group identifies a category+tag pair.
type Group struct {
	Size  Size
	Color Color
}

// GroupCount is a read-only count of fish in one group.
type GroupCount struct {
	Group
	Count int
}
