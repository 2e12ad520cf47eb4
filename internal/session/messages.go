package session

import (
	"fmt"

	"github.com/vytor/mathsprint/internal/models"
)

const (
	correctMessage  = "Correct!"
	resetMessage    = "Best score reset for this mode."
	newBestSuffix   = " New personal best!"
	defaultQuestion = "Question"
)

func minutesLabel(m models.SprintMinutes) string {
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

func startMessage(mode models.GameMode, minutes models.SprintMinutes) string {
	if mode == models.ModeSprint {
		return fmt.Sprintf("Go! %s on the clock.", minutesLabel(minutes))
	}
	return "Go! Survival ends on your first wrong answer."
}

func endMessage(mode models.GameMode, reason models.EndReason, score, correct, answered int) string {
	tally := fmt.Sprintf("Final score: %d | Correct: %d/%d", score, correct, answered)
	switch reason {
	case models.EndReasonTime:
		return "Time! " + tally
	case models.EndReasonWrong:
		if mode == models.ModeSurvival {
			return "Wrong answer ends Survival. " + tally
		}
		return "Three wrong answers reached. " + tally
	default:
		return tally
	}
}

func modeMessage(mode models.GameMode) string {
	return fmt.Sprintf("Switched to %s. Press Start to play.", mode.Title())
}

func sprintMinutesMessage(m models.SprintMinutes) string {
	return fmt.Sprintf("Sprint length set to %s.", minutesLabel(m))
}

func missedMessage(label, correct string) string {
	return fmt.Sprintf("Missed: %s = %s", label, correct)
}
