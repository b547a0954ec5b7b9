package config

import "FishingDay/internal/model"

// Of returns the entry for size s.
func (t SizeTable[T]) Of(s model.Size) T {
	switch s {
	case model.SizeMedium:
		return t.Medium
	case model.SizeBig:
		return t.Big
	default:
		return t.Small
	}
}

// Of returns the entry for color c.
func (t ColorTable[T]) Of(c model.Color) T {
	switch c {
	case model.ColorBlue:
		return t.Blue
	case model.ColorGreen:
		return t.Green
	default:
		return t.Red
	}
}
