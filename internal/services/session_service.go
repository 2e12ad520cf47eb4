package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/mathsprint/internal/engine"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/games"
	"github.com/vytor/mathsprint/internal/jobs"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/session"
)

// GameCatalog resolves game ids to playable definitions.
type GameCatalog interface {
	Get(id string) (games.Definition, bool)
	List() []games.Definition
}

// ScoreStore is the persistence a session needs for bests and preferences.
type ScoreStore interface {
	session.BestScoreStore
	session.SprintPrefStore
	Bests(ctx context.Context, gameID string) ([]models.BestScore, error)
}

// SessionSnapshot is what clients see of one session.
type SessionSnapshot struct {
	ID        string                `json:"id"`
	GameID    string                `json:"game_id"`
	Title     string                `json:"title"`
	Prompt    string                `json:"prompt,omitempty"`
	BestScore int                   `json:"best_score"`
	State     engine.State          `json:"state"`
	Outcome   *models.AnswerOutcome `json:"outcome,omitempty"`
}

// SessionService manages one run orchestrator per client session
type SessionService interface {
	ListGames(ctx context.Context) []games.Definition
	Create(ctx context.Context, gameID string, mode models.GameMode) (*SessionSnapshot, error)
	Get(ctx context.Context, id string) (*SessionSnapshot, error)
	Delete(ctx context.Context, id string) error
	Start(ctx context.Context, id string) (*SessionSnapshot, error)
	SubmitAnswer(ctx context.Context, id, answer string) (*SessionSnapshot, error)
	End(ctx context.Context, id string) (*SessionSnapshot, error)
	ResetBest(ctx context.Context, id string) (*SessionSnapshot, error)
	SetMode(ctx context.Context, id string, mode models.GameMode) (*SessionSnapshot, error)
	SetSprintMinutes(ctx context.Context, id string, minutes models.SprintMinutes) (*SessionSnapshot, error)
	EvictIdle(ctx context.Context) int
	RunJanitor(ctx context.Context, every time.Duration)
	Count() int
	Close()
}

// SessionConfig tunes the session service. Zero values pick defaults.
type SessionConfig struct {
	MaxSessions  int
	TTL          time.Duration
	TickInterval time.Duration
	NewTicker    session.TickerFactory
	Now          func() time.Time
}

type sessionEntry struct {
	runner   *session.Runner
	lastSeen time.Time
}

type sessionService struct {
	catalog GameCatalog
	scores  ScoreStore
	queue   jobs.JobQueue
	cfg     SessionConfig
	log     *logger.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionService creates a new SessionService. Finished runs go to queue;
// a nil queue disables the run archive.
func NewSessionService(catalog GameCatalog, scores ScoreStore, queue jobs.JobQueue, cfg SessionConfig, log *logger.Logger) SessionService {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Default()
	}
	return &sessionService{
		catalog:  catalog,
		scores:   scores,
		queue:    queue,
		cfg:      cfg,
		log:      log.WithPrefix("sessions"),
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *sessionService) ListGames(ctx context.Context) []games.Definition {
	logger.FromContext(ctx).Debug("listing games")
	return s.catalog.List()
}

func (s *sessionService) Create(ctx context.Context, gameID string, mode models.GameMode) (*SessionSnapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating session: game_id=%s, mode=%s", gameID, mode)

	def, ok := s.catalog.Get(gameID)
	if !ok {
		return nil, errors.NewNotFoundError("game", gameID)
	}
	if mode == "" {
		mode = models.ModeSprint
	}
	if !mode.Valid() {
		return nil, errors.NewValidationError("mode", "must be 'sprint' or 'survival'")
	}
	policy, err := session.PolicyByName(def.Scoring)
	if err != nil {
		log.Error("game %s has bad scoring: %v", def.ID, err)
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	s.evictLocked(ctx)
	if len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		log.Warn("session limit reached: %d", s.cfg.MaxSessions)
		return nil, errors.NewConflictError("too many active sessions, try again later")
	}

	id := uuid.NewString()
	runner := session.New(ctx, session.Options{
		Definition:   def,
		Scores:       s.scores,
		Prefs:        s.scores,
		ScorePolicy:  policy,
		Mode:         mode,
		TickInterval: s.cfg.TickInterval,
		NewTicker:    s.cfg.NewTicker,
		OnRunEnded:   s.archive,
		Logger:       s.log.WithField("session", id),
	})
	s.sessions[id] = &sessionEntry{runner: runner, lastSeen: s.cfg.Now()}
	s.mu.Unlock()

	log.Info("session created: id=%s, game_id=%s, mode=%s", id, def.ID, mode)
	return s.snapshot(ctx, id, runner, runner.State(), nil), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("getting session: id=%s", id)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, id, runner, runner.State(), nil), nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting session: id=%s", id)

	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return errors.NewNotFoundError("session", id)
	}
	entry.runner.Close()
	log.Info("session deleted: id=%s", id)
	return nil
}

func (s *sessionService) Start(ctx context.Context, id string) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("starting run: session_id=%s", id)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, id, runner, runner.StartRun(ctx), nil), nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, id, answer string) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("submitting answer: session_id=%s", id)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	state, outcome := runner.SubmitAnswer(ctx, answer)
	var out *models.AnswerOutcome
	if outcome.Kind != "" {
		out = &outcome
	}
	return s.snapshot(ctx, id, runner, state, out), nil
}

func (s *sessionService) End(ctx context.Context, id string) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("ending run: session_id=%s", id)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, id, runner, runner.EndRun(ctx), nil), nil
}

func (s *sessionService) ResetBest(ctx context.Context, id string) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("resetting best score: session_id=%s", id)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := runner.ResetBestForMode(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, id, runner, state, nil), nil
}

func (s *sessionService) SetMode(ctx context.Context, id string, mode models.GameMode) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("setting mode: session_id=%s, mode=%s", id, mode)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := runner.SetMode(ctx, mode)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, id, runner, state, nil), nil
}

func (s *sessionService) SetSprintMinutes(ctx context.Context, id string, minutes models.SprintMinutes) (*SessionSnapshot, error) {
	logger.FromContext(ctx).Debug("setting sprint minutes: session_id=%s, minutes=%d", id, minutes)
	runner, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := runner.SetSprintMinutes(ctx, minutes)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, id, runner, state, nil), nil
}

// EvictIdle drops sessions unused for longer than the TTL.
func (s *sessionService) EvictIdle(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(ctx)
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *sessionService) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	s.log.Debug("session janitor started: every=%s", every)
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("session janitor stopped")
			return
		case <-t.C:
			s.EvictIdle(ctx)
		}
	}
}

func (s *sessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every session's ticker.
func (s *sessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		entry.runner.Close()
		delete(s.sessions, id)
	}
	s.log.Info("all sessions closed")
}

func (s *sessionService) evictLocked(ctx context.Context) int {
	cutoff := s.cfg.Now().Add(-s.cfg.TTL)
	evicted := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			entry.runner.Close()
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		logger.FromContext(ctx).Info("evicted %d idle sessions", evicted)
	}
	return evicted
}

// lookup finds a live session and marks it as used.
func (s *sessionService) lookup(ctx context.Context, id string) (*session.Runner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}
	now := s.cfg.Now()
	if now.Sub(entry.lastSeen) > s.cfg.TTL {
		entry.runner.Close()
		delete(s.sessions, id)
		logger.FromContext(ctx).Info("session expired: id=%s", id)
		return nil, errors.NewNotFoundError("session", id)
	}
	entry.lastSeen = now
	return entry.runner, nil
}

func (s *sessionService) snapshot(ctx context.Context, id string, runner *session.Runner, state engine.State, outcome *models.AnswerOutcome) *SessionSnapshot {
	def := runner.Definition()
	snap := &SessionSnapshot{
		ID:      id,
		GameID:  def.ID,
		Title:   def.Title,
		State:   state,
		Outcome: outcome,
	}
	if state.Question != nil {
		snap.Prompt = state.Question.Prompt()
	}
	best, err := s.scores.BestScore(ctx, def.ID, state.Mode)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to read best score: %v", err)
	}
	snap.BestScore = best
	return snap
}

// archive is the runners' OnRunEnded hook. It runs under the runner's lock.
func (s *sessionService) archive(ctx context.Context, run models.RunRecord) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueArchive(ctx, run); err != nil {
		logger.FromContext(ctx).Error("failed to archive run: %v", err)
	}
}
