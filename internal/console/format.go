package console

import (
	"fmt"
	"strings"

	"FishingDay/internal/game"
	"FishingDay/internal/model"
	"FishingDay/internal/pond"
)

func formatForecast(fc pond.Forecast) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Today's forecast: %d small fish, %d medium fish, and %d big fish.\n",
		fc.Counts[model.SizeSmall], fc.Counts[model.SizeMedium], fc.Counts[model.SizeBig]))
	b.WriteString(fmt.Sprintf("%d%% are red, %d%% are blue, and %d%% are green!",
		fc.RedPercentage, fc.BluePercentage, fc.GreenPercentage))
	return b.String()
}

func formatPond(counts []model.GroupCount) string {
	var b strings.Builder
	b.WriteString("Available fishes in the pond:\n")
	for _, gc := range counts {
		b.WriteString(fmt.Sprintf("%s %s fish: %d available\n", gc.Color, gc.Size, gc.Count))
	}
	return b.String()
}

func formatBag(bag map[model.Color]int) string {
	var b strings.Builder
	b.WriteString("Current bait inventory:\n")
	for _, c := range model.Colors {
		if n := bag[c]; n > 0 {
			b.WriteString(fmt.Sprintf("%s bait: %d available\n", c, n))
		}
	}
	return b.String()
}

func formatEvent(e game.Event) string {
	switch e.Kind {
	case game.EventDayStart:
		return fmt.Sprintf("\nDay %d starts!\nInitial gold: %d", e.Day, e.Wealth)
	case game.EventForecast:
		if e.Forecast == nil {
			return ""
		}
		return formatForecast(*e.Forecast)
	case game.EventAcquired:
		return fmt.Sprintf("You got %s. You have %d gold left.", e.Item, e.Wealth)
	case game.EventRejected:
		if e.Item != nil {
			return fmt.Sprintf("Could not get %s: %v.", e.Item, e.Err)
		}
		return fmt.Sprintf("Cannot do that: %v.", e.Err)
	case game.EventAutoPlan:
		if e.Plan == nil {
			return ""
		}
		return fmt.Sprintf("Auto plan: %s %s fish look best. %d bundle(s) of %d gold, %d gold of change.",
			e.Plan.Best.Color, e.Plan.Best.Size, e.Plan.Bundles, e.Plan.WeightedCost, e.Plan.Remainder)
	case game.EventSkipped:
		return "\nSkipping the day..."
	case game.EventNoViable:
		return "No suitable fish for your pole and bait. Skipping the day."
	case game.EventNoFishOnPole:
		return "No fish left that your pole can catch. Done fishing."
	case game.EventEndedEarly:
		return "You decided to end the day early."
	case game.EventCasting:
		return "Casting..."
	case game.EventCast:
		if e.Cast == nil {
			return ""
		}
		if !e.Cast.Caught {
			return "No fish caught this time."
		}
		f := e.Cast.Fish
		return fmt.Sprintf("You caught a %s %s fish worth %d gold!", f.Color, f.Size, f.Value)
	case game.EventJudging:
		return "Judging your performance..."
	case game.EventDayEnd:
		if e.Report == nil {
			return ""
		}
		return formatDayEnd(*e.Report)
	default:
		return ""
	}
}

func formatDayEnd(r game.DayReport) string {
	var b strings.Builder
	if r.Reason == game.EndPlayed {
		switch r.Outcome {
		case model.OutcomeWin:
			b.WriteString(fmt.Sprintf("You won! You earned more than %d gold.\n", r.OpeningWealth))
		case model.OutcomeLose:
			b.WriteString(fmt.Sprintf("You lost! You earned %d gold or less.\n", r.OpeningWealth))
		default:
			b.WriteString("It's a tie! You kept the same gold.\n")
		}
	} else {
		b.WriteString("It's a tie! No fishing today.\n")
	}
	b.WriteString(fmt.Sprintf("End of Day %d. You have %d gold.", r.Day, r.ClosingWealth))
	return b.String()
}
