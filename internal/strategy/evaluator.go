package strategy

import "FishingDay/internal/model"

// Evaluator maps end-of-day wealth to an outcome.
type Evaluator struct {
	// Threshold is the wealth that must be exceeded to win.
	Threshold int
}

// NewEvaluator creates an Evaluator that wins above threshold.
func NewEvaluator(threshold int) *Evaluator {
	return &Evaluator{Threshold: threshold}
}

// Evaluate returns Tie when no fishing happened. Otherwise wealth above the
// threshold wins and anything else, break-even included, loses.
func (e *Evaluator) Evaluate(wealth int, didFish bool) model.Outcome {
	if !didFish {
		return model.OutcomeTie
	}
	if wealth > e.Threshold {
		return model.OutcomeWin
	}
	return model.OutcomeLose
}
