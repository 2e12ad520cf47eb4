package models

import "time"

// RunRecord is an archived, finished run.
type RunRecord struct {
	ID              int64         `json:"id"`
	GameID          string        `json:"game_id"`
	Mode            GameMode      `json:"mode"`
	SprintMinutes   SprintMinutes `json:"sprint_minutes"`
	Score           int           `json:"score"`
	TotalAnswered   int           `json:"total_answered"`
	TotalCorrect    int           `json:"total_correct"`
	WrongAnswers    int           `json:"wrong_answers"`
	DifficultyLevel int           `json:"difficulty_level"`
	EndReason       EndReason     `json:"end_reason"`
	Seed            uint32        `json:"seed"`
	CreatedAt       time.Time     `json:"created_at"`
}

type RunFilter struct {
	GameID    string
	Mode      GameMode
	EndReason EndReason
	Limit     int
	Offset    int
}

// BestScore is the stored personal best for one game and mode.
type BestScore struct {
	GameID string   `json:"game_id"`
	Mode   GameMode `json:"mode"`
	Score  int      `json:"score"`
}
