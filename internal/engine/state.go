// Package engine holds the run state machine shared by every game. Reduce is
// a pure transition function: it never mutates its input and never draws
// random numbers.
package engine

import (
	"github.com/vytor/mathsprint/internal/difficulty"
	"github.com/vytor/mathsprint/internal/models"
)

// HistoryLimit caps the number of answered questions kept on a run.
const HistoryLimit = 25

// Feedback is the message line shown under the question.
type Feedback struct {
	Message string              `json:"message"`
	Tone    models.FeedbackTone `json:"tone"`
}

// HistoryEntry records one resolved answer.
type HistoryEntry struct {
	ID                 int            `json:"id"`
	QuestionLabel      string         `json:"question_label"`
	CorrectAnswerLabel string         `json:"correct_answer_label"`
	Outcome            models.Outcome `json:"outcome"`
	NormalizedAnswer   string         `json:"normalized_answer"`
}

// State is the whole observable state of a run. TimeLeftSec is nil outside
// sprint mode and RunSeed is nil until a run starts.
type State struct {
	Phase                   models.Phase         `json:"phase"`
	Mode                    models.GameMode      `json:"mode"`
	SprintMinutes           models.SprintMinutes `json:"sprint_minutes"`
	TimeLeftSec             *int                 `json:"time_left_sec"`
	Score                   int                  `json:"score"`
	Streak                  int                  `json:"streak"`
	TotalAnswered           int                  `json:"total_answered"`
	TotalCorrect            int                  `json:"total_correct"`
	WrongAnswers            int                  `json:"wrong_answers"`
	WrongLimit              int                  `json:"wrong_limit"`
	DifficultyLevel         int                  `json:"difficulty_level"`
	NextDifficultyThreshold int                  `json:"next_difficulty_threshold"`
	Question                models.Question      `json:"question"`
	Feedback                Feedback             `json:"feedback"`
	History                 []HistoryEntry       `json:"history"`
	NextHistoryID           int                  `json:"next_history_id"`
	EndReason               models.EndReason     `json:"end_reason"`
	RunSeed                 *uint32              `json:"run_seed"`
}

// Options seeds a fresh state. Zero values select sprint, one minute and
// difficulty level 1.
type Options struct {
	Mode                   models.GameMode
	SprintMinutes          models.SprintMinutes
	InitialDifficultyLevel int
}

// NewState returns an idle state.
func NewState(opts Options) State {
	mode := opts.Mode
	if !mode.Valid() {
		mode = models.ModeSprint
	}
	minutes := opts.SprintMinutes
	if !minutes.Valid() {
		minutes = models.DefaultSprintMinutes
	}
	level := opts.InitialDifficultyLevel
	if level == 0 {
		level = 1
	}

	return State{
		Phase:                   models.PhaseIdle,
		Mode:                    mode,
		SprintMinutes:           minutes,
		TimeLeftSec:             timerFor(mode, minutes),
		WrongLimit:              mode.WrongLimit(),
		DifficultyLevel:         difficulty.Clamp(level),
		NextDifficultyThreshold: 2,
		History:                 []HistoryEntry{},
	}
}

// Running reports whether answers are currently accepted.
func (s State) Running() bool {
	return s.Phase == models.PhaseRunning
}

// Clone returns a copy that shares no slices or pointers with s.
func (s State) Clone() State {
	out := s
	out.TimeLeftSec = copyInt(s.TimeLeftSec)
	if s.RunSeed != nil {
		seed := *s.RunSeed
		out.RunSeed = &seed
	}
	out.History = append([]HistoryEntry(nil), s.History...)
	if out.History == nil {
		out.History = []HistoryEntry{}
	}
	return out
}

func timerFor(mode models.GameMode, minutes models.SprintMinutes) *int {
	if mode != models.ModeSprint {
		return nil
	}
	secs := minutes.Seconds()
	return &secs
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
