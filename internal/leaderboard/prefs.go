package leaderboard

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
)

var errUnknownPayload = errors.New("unknown payload version")

type prefsPayload struct {
	Version *int                       `json:"version"`
	ByGame  map[string]json.RawMessage `json:"byGame"`
}

// ReadSprintPrefs returns the stored sprint lengths. Values other than 3 or
// 5 read as 1.
func (s *Store) ReadSprintPrefs(ctx context.Context) (SprintPrefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPrefs(ctx)
}

func (s *Store) readPrefs(ctx context.Context) (SprintPrefs, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard")
	prefs := SprintPrefs{Version: payloadVersion, ByGame: map[string]models.SprintMinutes{}}

	raw, ok, err := s.kv.Get(ctx, SprintPrefsKey)
	if err != nil {
		log.Error("failed to read sprint preferences: %v", err)
		return SprintPrefs{}, err
	}
	if !ok {
		return prefs, nil
	}

	var p prefsPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil || p.Version == nil || *p.Version != payloadVersion || p.ByGame == nil {
		log.Warn("discarding unreadable sprint preferences")
		return prefs, nil
	}

	// Canonical ids win over retired ones.
	for id, v := range p.ByGame {
		if CanonicalGameID(id) == id {
			prefs.ByGame[id] = sprintMinutesValue(v)
		}
	}
	for id, v := range p.ByGame {
		canonical := CanonicalGameID(id)
		if _, taken := prefs.ByGame[canonical]; canonical != id && !taken {
			prefs.ByGame[canonical] = sprintMinutesValue(v)
		}
	}
	return prefs, nil
}

func sprintMinutesValue(v json.RawMessage) models.SprintMinutes {
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return models.DefaultSprintMinutes
	}
	if m := models.SprintMinutes(n); float64(m) == n && (m == 3 || m == 5) {
		return m
	}
	return models.DefaultSprintMinutes
}

// SprintMinutes returns the preferred sprint length for gameID, default 1.
func (s *Store) SprintMinutes(ctx context.Context, gameID string) (models.SprintMinutes, error) {
	prefs, err := s.ReadSprintPrefs(ctx)
	if err != nil {
		return 0, err
	}
	if m, ok := prefs.ByGame[CanonicalGameID(gameID)]; ok {
		return m, nil
	}
	return models.DefaultSprintMinutes, nil
}

// SetSprintMinutes stores the preferred sprint length for gameID.
func (s *Store) SetSprintMinutes(ctx context.Context, gameID string, minutes models.SprintMinutes) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.readPrefs(ctx)
	if err != nil {
		return err
	}
	if !minutes.Valid() {
		minutes = models.DefaultSprintMinutes
	}
	prefs.ByGame[CanonicalGameID(gameID)] = minutes
	return s.write(ctx, SprintPrefsKey, prefs)
}
