package model

// Outcome is the result of one day.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
	OutcomeTie  Outcome = "TIE"
)
