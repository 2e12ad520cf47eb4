package models

import "fmt"

// GameMode selects how a run ends.
type GameMode string

const (
	ModeSprint   GameMode = "sprint"   // timed, ends on timeout or the wrong-answer limit
	ModeSurvival GameMode = "survival" // untimed, ends on the first wrong answer
)

// Valid reports whether m is a known mode.
func (m GameMode) Valid() bool {
	return m == ModeSprint || m == ModeSurvival
}

// Title is the display name used in feedback messages.
func (m GameMode) Title() string {
	if m == ModeSurvival {
		return "Survival"
	}
	return "Sprint"
}

// ParseGameMode parses a mode name.
func ParseGameMode(s string) (GameMode, error) {
	m := GameMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown game mode %q", s)
	}
	return m, nil
}

// WrongLimit is the number of wrong answers that ends a run in mode m.
func (m GameMode) WrongLimit() int {
	if m == ModeSprint {
		return 3
	}
	return 1
}

// SprintMinutes is one of the supported sprint durations.
type SprintMinutes int

const DefaultSprintMinutes SprintMinutes = 1

// Valid reports whether m is 1, 3 or 5.
func (m SprintMinutes) Valid() bool {
	return m == 1 || m == 3 || m == 5
}

// Seconds returns the sprint length in seconds.
func (m SprintMinutes) Seconds() int {
	return int(m) * 60
}

// Phase is the lifecycle position of a run.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhaseEnded   Phase = "ended"
)

// EndReason explains why a run ended. Empty while idle or running.
type EndReason string

const (
	EndReasonNone   EndReason = ""
	EndReasonTime   EndReason = "time"
	EndReasonWrong  EndReason = "wrong"
	EndReasonManual EndReason = "manual"
)

// FeedbackTone colours the feedback line.
type FeedbackTone string

const (
	ToneNeutral FeedbackTone = ""
	ToneCorrect FeedbackTone = "correct"
	ToneWrong   FeedbackTone = "wrong"
)
