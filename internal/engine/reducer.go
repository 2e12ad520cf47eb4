package engine

import (
	"fmt"

	"github.com/vytor/mathsprint/internal/difficulty"
	"github.com/vytor/mathsprint/internal/models"
)

// Reduce returns the state after applying ev to s. s is left untouched.
// An event type outside this package's set panics: it can only come from a
// caller bug.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case SetMode:
		if s.Running() {
			return s
		}
		return reset(s, e.Mode, s.SprintMinutes, e.Message)

	case SetSprintMinutes:
		if s.Running() {
			return s
		}
		return reset(s, s.Mode, e.Minutes, e.Message)

	case StartRun:
		next := s.Clone()
		seed := e.Seed
		next.Phase = models.PhaseRunning
		next.Score = 0
		next.Streak = 0
		next.TotalAnswered = 0
		next.TotalCorrect = 0
		next.WrongAnswers = 0
		next.WrongLimit = s.Mode.WrongLimit()
		next.Question = e.InitialQuestion
		next.History = []HistoryEntry{}
		next.NextHistoryID = 0
		next.Feedback = Feedback{Message: e.Message, Tone: models.ToneCorrect}
		next.EndReason = models.EndReasonNone
		next.RunSeed = &seed
		next.DifficultyLevel = difficulty.Clamp(e.InitialDifficultyLevel)
		next.NextDifficultyThreshold = max(2, e.NextDifficultyThreshold)
		next.TimeLeftSec = timerFor(s.Mode, s.SprintMinutes)
		return next

	case Tick:
		if !s.Running() || s.Mode != models.ModeSprint || s.TimeLeftSec == nil {
			return s
		}
		next := s.Clone()
		left := max(0, *s.TimeLeftSec-1)
		next.TimeLeftSec = &left
		if left == 0 {
			next.Phase = models.PhaseEnded
			next.EndReason = models.EndReasonTime
		}
		return next

	case SubmitInvalid:
		if !s.Running() {
			return s
		}
		next := s.Clone()
		next.Feedback = Feedback{Message: e.Message, Tone: models.ToneWrong}
		return next

	case SubmitResolved:
		if !s.Running() || s.Question == nil {
			return s
		}
		return resolve(s, e)

	case EndRun:
		if !s.Running() {
			return s
		}
		next := s.Clone()
		next.Phase = models.PhaseEnded
		next.EndReason = e.Reason
		return next

	case SetFeedback:
		next := s.Clone()
		next.Feedback = Feedback{Message: e.Message, Tone: e.Tone}
		return next

	default:
		panic(fmt.Sprintf("engine: unhandled event %T", ev))
	}
}

func resolve(s State, e SubmitResolved) State {
	next := s.Clone()
	next.TotalAnswered++
	next.Score += e.ScoreDelta
	outcome := models.OutcomeWrong
	if e.IsCorrect {
		next.TotalCorrect++
		next.Streak++
		outcome = models.OutcomeCorrect
	} else {
		next.Streak = 0
		next.WrongAnswers++
	}

	entry := HistoryEntry{
		ID:                 s.NextHistoryID,
		QuestionLabel:      e.QuestionLabel,
		CorrectAnswerLabel: e.CorrectAnswerLabel,
		Outcome:            outcome,
		NormalizedAnswer:   e.NormalizedAnswer,
	}
	history := make([]HistoryEntry, 0, min(len(s.History)+1, HistoryLimit))
	history = append(history, entry)
	for _, h := range s.History {
		if len(history) == HistoryLimit {
			break
		}
		history = append(history, h)
	}
	next.History = history
	next.NextHistoryID = s.NextHistoryID + 1

	next.DifficultyLevel = e.NextDifficultyLevel
	next.NextDifficultyThreshold = e.NextDifficultyThreshold

	if e.IsCorrect {
		next.Feedback = Feedback{Message: e.CorrectMessage, Tone: models.ToneCorrect}
	} else {
		next.Feedback = Feedback{Message: e.WrongMessage, Tone: models.ToneWrong}
	}

	endByWrong := next.WrongAnswers >= s.WrongLimit
	endByTime := s.Mode == models.ModeSprint && s.TimeLeftSec != nil && *s.TimeLeftSec <= 0
	switch {
	case endByTime:
		next.Phase = models.PhaseEnded
		next.EndReason = models.EndReasonTime
	case endByWrong:
		next.Phase = models.PhaseEnded
		next.EndReason = models.EndReasonWrong
	default:
		next.Question = e.NextQuestion
	}
	return next
}

// reset returns an idle state for mode and minutes. Difficulty fields carry
// over; they are replaced on the next StartRun.
func reset(s State, mode models.GameMode, minutes models.SprintMinutes, message string) State {
	next := s.Clone()
	next.Phase = models.PhaseIdle
	next.Mode = mode
	next.SprintMinutes = minutes
	next.TimeLeftSec = timerFor(mode, minutes)
	next.Score = 0
	next.Streak = 0
	next.TotalAnswered = 0
	next.TotalCorrect = 0
	next.WrongAnswers = 0
	next.WrongLimit = mode.WrongLimit()
	next.Question = nil
	next.History = []HistoryEntry{}
	next.NextHistoryID = 0
	next.EndReason = models.EndReasonNone
	next.RunSeed = nil
	next.Feedback = Feedback{Message: message}
	return next
}
