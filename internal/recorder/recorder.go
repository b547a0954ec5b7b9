package recorder

import (
	"context"

	"FishingDay/internal/game"
	"FishingDay/internal/model"
)

// Summary totals the finished days of one session.
type Summary struct {
	Days   int
	Wins   int
	Losses int
	Ties   int
	// Earned is the sum of catch rewards over all days.
	Earned int
}

// Add counts one day's report into the summary. The day the player quit is
// journaled but not counted.
func (s *Summary) Add(r game.DayReport) {
	if r.Reason == game.EndQuit {
		return
	}
	s.Days++
	switch r.Outcome {
	case model.OutcomeWin:
		s.Wins++
	case model.OutcomeLose:
		s.Losses++
	default:
		s.Ties++
	}
	s.Earned += r.Earned()
}

// Recorder journals finished days for later analysis. Nothing is read back to
// restore a game.
type Recorder interface {
	RecordDay(ctx context.Context, r game.DayReport) error
	Summary(ctx context.Context, sessionID string) (Summary, error)
	Close() error
}

// Hook adapts a Recorder to a game.DayHook.
func Hook(r Recorder) game.DayHook { return hook{r} }

type hook struct{ rec Recorder }

func (h hook) DayEnded(ctx context.Context, r game.DayReport) error {
	return h.rec.RecordDay(ctx, r)
}
