package engine

import "github.com/vytor/mathsprint/internal/models"

// Event is one input to Reduce. The set of implementations is closed.
type Event interface {
	event()
}

// SetMode switches mode and resets the run. Ignored while running.
type SetMode struct {
	Mode    models.GameMode
	Message string
}

// SetSprintMinutes changes the sprint length and resets the run. Ignored
// while running.
type SetSprintMinutes struct {
	Minutes models.SprintMinutes
	Message string
}

// StartRun begins a run unconditionally. Callers must not send it while a
// run is already in progress.
type StartRun struct {
	Seed                    uint32
	InitialQuestion         models.Question
	InitialDifficultyLevel  int
	NextDifficultyThreshold int
	Message                 string
}

// Tick advances the sprint clock by one second.
type Tick struct{}

// SubmitInvalid reports malformed input. It never counts as an attempt.
type SubmitInvalid struct {
	Message string
}

// SubmitResolved records a well-formed answer. NextQuestion is only
// installed if the run continues.
type SubmitResolved struct {
	IsCorrect               bool
	NormalizedAnswer        string
	ScoreDelta              int
	NextQuestion            models.Question
	NextDifficultyLevel     int
	NextDifficultyThreshold int
	QuestionLabel           string
	CorrectAnswerLabel      string
	CorrectMessage          string
	WrongMessage            string
}

// EndRun stops a running run with Reason.
type EndRun struct {
	Reason models.EndReason
}

// SetFeedback replaces the feedback line in any phase.
type SetFeedback struct {
	Message string
	Tone    models.FeedbackTone
}

func (SetMode) event()          {}
func (SetSprintMinutes) event() {}
func (StartRun) event()         {}
func (Tick) event()             {}
func (SubmitInvalid) event()    {}
func (SubmitResolved) event()   {}
func (EndRun) event()           {}
func (SetFeedback) event()      {}
