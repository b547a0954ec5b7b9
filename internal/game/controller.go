package game

import (
	"context"

	"FishingDay/internal/model"
	"FishingDay/internal/pond"
)

// Choice is an entry of the equipment menu.
type Choice int

const (
	ChooseSmall Choice = iota + 1
	ChooseMedium
	ChooseBig
	ChooseAuto
	ChooseSkip
	ChooseQuit
)

func (c Choice) String() string {
	switch c {
	case ChooseSmall:
		return "small"
	case ChooseMedium:
		return "medium"
	case ChooseBig:
		return "big"
	case ChooseAuto:
		return "auto"
	case ChooseSkip:
		return "skip"
	case ChooseQuit:
		return "quit"
	default:
		return "none"
	}
}

// Size returns the pole size for the three rent choices.
func (c Choice) Size() (model.Size, bool) {
	switch c {
	case ChooseSmall:
		return model.SizeSmall, true
	case ChooseMedium:
		return model.SizeMedium, true
	case ChooseBig:
		return model.SizeBig, true
	default:
		return 0, false
	}
}

// Order is one manual bait purchase request.
type Order struct {
	Color    model.Color
	Quantity int
}

// View is a read-only snapshot of the day handed to the controller.
type View struct {
	Day      int
	Wealth   int
	Pole     *model.Pole
	Baits    map[model.Color]int
	Pond     []model.GroupCount
	Forecast pond.Forecast
}

// Controller answers the day's menus. Returning ok=false from NextOrder stops
// shopping and from ChooseBait ends the day's fishing.
type Controller interface {
	ChooseEquipment(ctx context.Context, v View) (Choice, error)
	NextOrder(ctx context.Context, v View) (o Order, ok bool, err error)
	ChooseBait(ctx context.Context, v View) (c model.Color, ok bool, err error)
	// Cast blocks until the player pulls the pole.
	Cast(ctx context.Context) error
	Continue(ctx context.Context, r DayReport) (bool, error)
}
