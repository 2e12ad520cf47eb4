// Package leaderboard stores personal bests and sprint preferences as
// versioned JSON documents in a key-value repository. Unreadable documents
// are replaced by empty defaults; only repository failures are returned.
package leaderboard

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository"
)

const (
	LeaderboardKey = "mathgames.leaderboard"
	SprintPrefsKey = "mathgames.sprintPrefs"

	payloadVersion = 1
)

// Game ids that were renamed. Stored entries under the old id are folded
// into the new one.
var gameAliases = map[string]string{
	"number-sense-sprint":    "speed-arithmetic",
	"prime-factor-challenge": "factor-rush",
	"exponent-sprint":        "power-blitz",
}

// CanonicalGameID maps a retired game id to its replacement.
func CanonicalGameID(id string) string {
	if to, ok := gameAliases[id]; ok {
		return to
	}
	return id
}

// Board is the stored leaderboard document.
type Board struct {
	Version            int            `json:"version"`
	Scores             map[string]int `json:"scores"`
	MigratedLegacyKeys bool           `json:"migratedLegacyKeys"`
}

// SprintPrefs is the stored sprint-length document.
type SprintPrefs struct {
	Version int                             `json:"version"`
	ByGame  map[string]models.SprintMinutes `json:"byGame"`
}

// SaveResult reports whether a save raised the stored best.
type SaveResult struct {
	Updated   bool `json:"updated"`
	BestScore int  `json:"best_score"`
}

// Store reads and writes both documents. It is safe for concurrent use.
type Store struct {
	kv repository.KeyValueRepository
	mu sync.Mutex
}

// New creates a Store over kv.
func New(kv repository.KeyValueRepository) *Store {
	return &Store{kv: kv}
}

// EntryKey is the score key for one game and mode.
func EntryKey(gameID string, mode models.GameMode) string {
	return gameID + "|" + string(mode)
}

func emptyBoard() Board {
	return Board{Version: payloadVersion, Scores: map[string]int{}}
}

// Read returns the leaderboard, migrating legacy keys and retired game ids
// on the way. The normalized document is written back when it changed.
func (s *Store) Read(ctx context.Context) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *Store) read(ctx context.Context) (Board, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard")

	raw, ok, err := s.kv.Get(ctx, LeaderboardKey)
	if err != nil {
		log.Error("failed to read leaderboard: %v", err)
		return Board{}, err
	}

	board := emptyBoard()
	if ok {
		if parsed, perr := decodeBoard(raw); perr == nil {
			board = parsed
		} else {
			log.Warn("discarding unreadable leaderboard: %v", perr)
		}
	}

	if !board.MigratedLegacyKeys {
		if board, err = s.migrateLegacy(ctx, board); err != nil {
			log.Error("failed to migrate legacy scores: %v", err)
			return Board{}, err
		}
	}
	board.Scores = normalizeScores(board.Scores)

	encoded, err := json.Marshal(board)
	if err != nil {
		return Board{}, err
	}
	if !ok || string(encoded) != raw {
		if err := s.kv.Set(ctx, LeaderboardKey, string(encoded)); err != nil {
			log.Error("failed to write leaderboard: %v", err)
			return Board{}, err
		}
	}
	return board, nil
}

type boardPayload struct {
	Version            *int                       `json:"version"`
	Scores             map[string]json.RawMessage `json:"scores"`
	MigratedLegacyKeys bool                       `json:"migratedLegacyKeys"`
}

func decodeBoard(raw string) (Board, error) {
	var p boardPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Board{}, err
	}
	if p.Version == nil || *p.Version != payloadVersion || p.Scores == nil {
		return Board{}, errUnknownPayload
	}
	board := Board{Version: payloadVersion, Scores: make(map[string]int, len(p.Scores)), MigratedLegacyKeys: p.MigratedLegacyKeys}
	for k, v := range p.Scores {
		board.Scores[k] = scoreValue(v)
	}
	return board, nil
}

// scoreValue reads a stored score leniently: numbers and numeric strings
// count, anything else is 0. Negative values clamp to 0.
func scoreValue(v json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}

func normalizeScores(scores map[string]int) map[string]int {
	out := make(map[string]int, len(scores))
	for key, v := range scores {
		game, mode, found := strings.Cut(key, "|")
		if found {
			key = CanonicalGameID(game) + "|" + mode
		}
		out[key] = max(out[key], v)
	}
	return out
}

// Keys written by earlier single-game versions.
const (
	legacyExponentSprint     = "exponentSprintBestScore"
	legacyNumberSenseSprint  = "numberSenseBest:sprint"
	legacyNumberSenseSprint2 = "numberSenseSprintBestScore"
	legacyNumberSenseSurvive = "numberSenseBest:survival"
)

func (s *Store) migrateLegacy(ctx context.Context, board Board) (Board, error) {
	next := Board{Version: payloadVersion, Scores: make(map[string]int, len(board.Scores)+3), MigratedLegacyKeys: true}
	for k, v := range board.Scores {
		next.Scores[k] = v
	}

	read := func(key string) (int, error) {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil || !ok {
			return 0, err
		}
		return parseLeadingInt(raw), nil
	}
	fold := func(key string, v int) {
		if v > 0 {
			next.Scores[key] = max(next.Scores[key], v)
		}
	}

	exponent, err := read(legacyExponentSprint)
	if err != nil {
		return Board{}, err
	}
	sprintA, err := read(legacyNumberSenseSprint)
	if err != nil {
		return Board{}, err
	}
	sprintB, err := read(legacyNumberSenseSprint2)
	if err != nil {
		return Board{}, err
	}
	survival, err := read(legacyNumberSenseSurvive)
	if err != nil {
		return Board{}, err
	}

	fold(EntryKey("exponent-sprint", models.ModeSprint), exponent)
	fold(EntryKey("number-sense-sprint", models.ModeSprint), max(sprintA, sprintB))
	fold(EntryKey("number-sense-sprint", models.ModeSurvival), survival)
	return next, nil
}

// parseLeadingInt reads an optional sign and leading digits, ignoring any
// trailing text. The result is floored at 0.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// BestScore returns the stored best for gameID and mode, or 0.
func (s *Store) BestScore(ctx context.Context, gameID string, mode models.GameMode) (int, error) {
	board, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}
	return board.Scores[EntryKey(CanonicalGameID(gameID), mode)], nil
}

// SaveBestScore stores score if it beats the current best. Negative scores
// count as 0. The stored value never decreases.
func (s *Store) SaveBestScore(ctx context.Context, gameID string, mode models.GameMode, score int) (SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("leaderboard")
	board, err := s.read(ctx)
	if err != nil {
		return SaveResult{}, err
	}

	key := EntryKey(CanonicalGameID(gameID), mode)
	current := board.Scores[key]
	safe := max(0, score)
	if safe <= current {
		return SaveResult{Updated: false, BestScore: current}, nil
	}

	board.Scores[key] = safe
	if err := s.write(ctx, LeaderboardKey, board); err != nil {
		log.Error("failed to save best score: %v", err)
		return SaveResult{}, err
	}
	log.Info("best score updated: %s=%d (was %d)", key, safe, current)
	return SaveResult{Updated: true, BestScore: safe}, nil
}

// ResetBestScore removes the stored best for gameID and mode.
func (s *Store) ResetBestScore(ctx context.Context, gameID string, mode models.GameMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.read(ctx)
	if err != nil {
		return err
	}
	key := EntryKey(CanonicalGameID(gameID), mode)
	if _, ok := board.Scores[key]; !ok {
		return nil
	}
	delete(board.Scores, key)
	logger.FromContext(ctx).WithPrefix("leaderboard").Info("best score reset: %s", key)
	return s.write(ctx, LeaderboardKey, board)
}

// Bests returns the stored best for every mode of gameID.
func (s *Store) Bests(ctx context.Context, gameID string) ([]models.BestScore, error) {
	board, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	id := CanonicalGameID(gameID)
	out := make([]models.BestScore, 0, 2)
	for _, mode := range []models.GameMode{models.ModeSprint, models.ModeSurvival} {
		out = append(out, models.BestScore{GameID: id, Mode: mode, Score: board.Scores[EntryKey(id, mode)]})
	}
	return out, nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(encoded))
}
