package notifier

import (
	"fmt"
	"strings"

	"FishingDay/internal/game"
	"FishingDay/internal/model"
	"FishingDay/internal/recorder"
)

var outcomeIcon = map[model.Outcome]string{
	model.OutcomeWin:  "🏆",
	model.OutcomeLose: "📉",
	model.OutcomeTie:  "🤝",
}

// FormatDayDigest formats a finished day into a Telegram message.
func FormatDayDigest(r game.DayReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎣 <b>Fishing Day %d</b> | %s\n\n", r.Day, r.EndedAt.Format("2006-01-02 15:04")))

	fc := r.Forecast
	b.WriteString(fmt.Sprintf("Forecast: %d small, %d medium, %d big\n",
		fc.Counts[model.SizeSmall], fc.Counts[model.SizeMedium], fc.Counts[model.SizeBig]))
	b.WriteString(fmt.Sprintf("Colors: %d%% red, %d%% blue, %d%% green\n\n",
		fc.RedPercentage, fc.BluePercentage, fc.GreenPercentage))

	b.WriteString(fmt.Sprintf("Choice: %s", r.Choice))
	if r.Pole != nil {
		b.WriteString(fmt.Sprintf(" (%s pole)", r.Pole.Size))
	}
	b.WriteString("\n")

	spent, rejected := 0, 0
	for _, p := range r.Purchases {
		if p.Accepted {
			spent += p.Price
		} else {
			rejected++
		}
	}
	b.WriteString(fmt.Sprintf("Spent: %d gold", spent))
	if rejected > 0 {
		b.WriteString(fmt.Sprintf(" (%d rejected)", rejected))
	}
	b.WriteString("\n")

	if r.DidFish {
		b.WriteString(fmt.Sprintf("Casts: %d, caught %d, earned %d gold\n", len(r.Casts), r.Caught(), r.Earned()))
	}

	b.WriteString(fmt.Sprintf("\nWealth: %d → %d\n", r.OpeningWealth, r.ClosingWealth))
	b.WriteString(fmt.Sprintf("%s <b>%s</b>", outcomeIcon[r.Outcome], r.Outcome))
	if r.Reason != game.EndPlayed {
		b.WriteString(fmt.Sprintf(" (%s)", strings.ToLower(string(r.Reason))))
	}
	return b.String()
}

// FormatSummary formats the session totals.
func FormatSummary(sessionID string, s recorder.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📦 <b>Session summary</b> %s\n\n", sessionID))
	b.WriteString(fmt.Sprintf("Days: %d\n", s.Days))
	b.WriteString(fmt.Sprintf("Wins: %d | Losses: %d | Ties: %d\n", s.Wins, s.Losses, s.Ties))
	b.WriteString(fmt.Sprintf("Earned from catches: %d gold", s.Earned))
	return b.String()
}
