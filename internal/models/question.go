package models

// Question is a single prompt produced by a game's generator. Concrete
// question types are owned by the game that produces them.
type Question interface {
	// Prompt is the text shown to the player.
	Prompt() string
}

// Outcome classifies an evaluated answer.
type Outcome string

const (
	OutcomeInvalid Outcome = "invalid"
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
)

// AnswerOutcome is the result of evaluating raw input against a question.
// Message is set only for invalid input; NormalizedAnswer only otherwise.
type AnswerOutcome struct {
	Kind             Outcome `json:"kind"`
	Message          string  `json:"message,omitempty"`
	NormalizedAnswer string  `json:"normalized_answer,omitempty"`
}

// ScoreContext is what a score policy sees for one resolved answer.
// TotalCorrect and TotalAnswered already include the answer being scored.
type ScoreContext struct {
	IsCorrect       bool
	CurrentScore    int
	TotalCorrect    int
	TotalAnswered   int
	DifficultyLevel int
	Mode            GameMode
	TimeLeftSec     *int
}
