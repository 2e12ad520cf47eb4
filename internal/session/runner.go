// Package session drives one player's runs of one game: it owns the random
// stream and the ticker, feeds events into the engine, and persists scores
// when a run ends.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/mathsprint/internal/difficulty"
	"github.com/vytor/mathsprint/internal/engine"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/games"
	"github.com/vytor/mathsprint/internal/leaderboard"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/rng"
)

// BestScoreStore persists personal bests. SaveBestScore must never lower a
// stored value.
type BestScoreStore interface {
	BestScore(ctx context.Context, gameID string, mode models.GameMode) (int, error)
	SaveBestScore(ctx context.Context, gameID string, mode models.GameMode, score int) (leaderboard.SaveResult, error)
	ResetBestScore(ctx context.Context, gameID string, mode models.GameMode) error
}

// SprintPrefStore persists the preferred sprint length per game.
type SprintPrefStore interface {
	SprintMinutes(ctx context.Context, gameID string) (models.SprintMinutes, error)
	SetSprintMinutes(ctx context.Context, gameID string, minutes models.SprintMinutes) error
}

// Options configures a Runner. Definition and Scores are required.
type Options struct {
	Definition   games.Definition
	Scores       BestScoreStore
	Prefs        SprintPrefStore
	ScorePolicy  ScorePolicy
	Mode         models.GameMode
	TickInterval time.Duration
	NewTicker    TickerFactory
	Now          func() time.Time
	// OnRunEnded is called with the finished run while the Runner is
	// locked. It must not call back into the Runner.
	OnRunEnded func(ctx context.Context, run models.RunRecord)
	Logger     *logger.Logger
}

// Runner serializes all calls; it is safe for concurrent use.
type Runner struct {
	mu sync.Mutex

	def       games.Definition
	scores    BestScoreStore
	prefs     SprintPrefStore
	policy    ScorePolicy
	interval  time.Duration
	newTicker TickerFactory
	now       func() time.Time
	onEnded   func(ctx context.Context, run models.RunRecord)
	log       *logger.Logger
	bgCtx     context.Context

	state  engine.State
	stream *rng.Stream

	tickGen  uint64
	stopTick func()
}

// New creates an idle Runner. The sprint length comes from Prefs when set.
func New(ctx context.Context, opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}
	log = log.WithPrefix("session").WithField("game", opts.Definition.ID)

	r := &Runner{
		def:       opts.Definition,
		scores:    opts.Scores,
		prefs:     opts.Prefs,
		policy:    opts.ScorePolicy,
		interval:  opts.TickInterval,
		newTicker: opts.NewTicker,
		now:       opts.Now,
		onEnded:   opts.OnRunEnded,
		log:       log,
		bgCtx:     logger.NewContext(context.Background(), log),
	}
	if r.policy == nil {
		r.policy = DefaultScorePolicy
	}
	if r.interval <= 0 {
		r.interval = time.Second
	}
	if r.newTicker == nil {
		r.newTicker = NewRealTicker
	}
	if r.now == nil {
		r.now = time.Now
	}

	minutes := models.DefaultSprintMinutes
	if r.prefs != nil {
		if m, err := r.prefs.SprintMinutes(ctx, r.def.ID); err != nil {
			log.Error("failed to read sprint preference: %v", err)
		} else {
			minutes = m
		}
	}
	r.state = engine.NewState(engine.Options{
		Mode:                   opts.Mode,
		SprintMinutes:          minutes,
		InitialDifficultyLevel: r.def.InitialDifficulty,
	})
	return r
}

// Definition returns the game this runner plays.
func (r *Runner) Definition() games.Definition {
	return r.def
}

// State returns a snapshot of the current state.
func (r *Runner) State() engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// BestScore returns the stored best for the current mode.
func (r *Runner) BestScore(ctx context.Context) (int, error) {
	r.mu.Lock()
	mode := r.state.Mode
	r.mu.Unlock()
	return r.scores.BestScore(ctx, r.def.ID, mode)
}

// StartRun begins a run with a fresh seed. It does nothing while a run is
// in progress.
func (r *Runner) StartRun(ctx context.Context) engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Running() {
		return r.state.Clone()
	}

	seed := rng.SeedFromTime(r.now())
	r.stream = rng.New(seed)
	diff := difficulty.Initial(r.stream, r.def.InitialDifficulty)
	question := r.def.Generator.Generate(games.GenerateContext{
		Rng:             r.stream,
		DifficultyLevel: diff.Level,
	})

	r.apply(ctx, engine.StartRun{
		Seed:                    seed,
		InitialQuestion:         question,
		InitialDifficultyLevel:  diff.Level,
		NextDifficultyThreshold: diff.NextThreshold,
		Message:                 startMessage(r.state.Mode, r.state.SprintMinutes),
	})
	logger.FromContext(ctx).WithFields(map[string]any{
		"game": r.def.ID,
		"mode": string(r.state.Mode),
		"seed": seed,
	}).Info("run started")

	if r.state.Mode == models.ModeSprint {
		r.startTicker()
	}
	return r.state.Clone()
}

// SubmitAnswer evaluates raw against the current question. Malformed input
// only updates the feedback line.
func (r *Runner) SubmitAnswer(ctx context.Context, raw string) (engine.State, models.AnswerOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	if !s.Running() || s.Question == nil {
		return s.Clone(), models.AnswerOutcome{}
	}

	gen := r.def.Generator
	outcome := gen.Evaluate(s.Question, raw)
	if outcome.Kind == models.OutcomeInvalid {
		r.apply(ctx, engine.SubmitInvalid{Message: outcome.Message})
		return r.state.Clone(), outcome
	}

	isCorrect := outcome.Kind == models.OutcomeCorrect
	totalAnswered := s.TotalAnswered + 1
	totalCorrect := s.TotalCorrect
	wrongAnswers := s.WrongAnswers
	if isCorrect {
		totalCorrect++
	} else {
		wrongAnswers++
	}

	delta := r.policy(models.ScoreContext{
		IsCorrect:       isCorrect,
		CurrentScore:    s.Score,
		TotalCorrect:    totalCorrect,
		TotalAnswered:   totalAnswered,
		DifficultyLevel: s.DifficultyLevel,
		Mode:            s.Mode,
		TimeLeftSec:     copyInt(s.TimeLeftSec),
	})

	diff := difficulty.State{Level: s.DifficultyLevel, NextThreshold: s.NextDifficultyThreshold}
	if isCorrect {
		diff = difficulty.AdvanceOnCorrect(diff, totalCorrect, r.stream)
	}

	endsByWrong := wrongAnswers >= s.WrongLimit
	endsByTime := s.Mode == models.ModeSprint && s.TimeLeftSec != nil && *s.TimeLeftSec <= 0
	var next models.Question
	if !endsByWrong && !endsByTime {
		next = gen.Generate(games.GenerateContext{
			Rng:             r.stream,
			DifficultyLevel: diff.Level,
			Previous:        s.Question,
		})
	}

	label := gen.QuestionLabel(s.Question)
	if label == "" {
		label = defaultQuestion
	}
	correctLabel := gen.CorrectAnswerLabel(s.Question)

	r.apply(ctx, engine.SubmitResolved{
		IsCorrect:               isCorrect,
		NormalizedAnswer:        outcome.NormalizedAnswer,
		ScoreDelta:              delta,
		NextQuestion:            next,
		NextDifficultyLevel:     diff.Level,
		NextDifficultyThreshold: diff.NextThreshold,
		QuestionLabel:           label,
		CorrectAnswerLabel:      correctLabel,
		CorrectMessage:          correctMessage,
		WrongMessage:            missedMessage(label, correctLabel),
	})
	return r.state.Clone(), outcome
}

// SetMode switches mode when idle or ended. Selecting the current mode does
// nothing.
func (r *Runner) SetMode(ctx context.Context, mode models.GameMode) (engine.State, error) {
	if !mode.Valid() {
		return engine.State{}, errors.NewValidationError("mode", "must be 'sprint' or 'survival'")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if mode == r.state.Mode {
		return r.state.Clone(), nil
	}
	r.apply(ctx, engine.SetMode{Mode: mode, Message: modeMessage(mode)})
	return r.state.Clone(), nil
}

// SetSprintMinutes changes and persists the sprint length. It is ignored
// while a run is in progress.
func (r *Runner) SetSprintMinutes(ctx context.Context, minutes models.SprintMinutes) (engine.State, error) {
	if !minutes.Valid() {
		return engine.State{}, errors.NewValidationError("minutes", "must be 1, 3 or 5")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if minutes == r.state.SprintMinutes || r.state.Running() {
		return r.state.Clone(), nil
	}
	if r.prefs != nil {
		if err := r.prefs.SetSprintMinutes(ctx, r.def.ID, minutes); err != nil {
			logger.FromContext(ctx).Error("failed to save sprint preference: %v", err)
			return r.state.Clone(), errors.NewInternalError(err)
		}
	}
	r.apply(ctx, engine.SetSprintMinutes{Minutes: minutes, Message: sprintMinutesMessage(minutes)})
	return r.state.Clone(), nil
}

// EndRun stops a running run by request.
func (r *Runner) EndRun(ctx context.Context) engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apply(ctx, engine.EndRun{Reason: models.EndReasonManual})
	return r.state.Clone()
}

// ResetBestForMode clears the stored best for the current mode.
func (r *Runner) ResetBestForMode(ctx context.Context) (engine.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.scores.ResetBestScore(ctx, r.def.ID, r.state.Mode); err != nil {
		logger.FromContext(ctx).Error("failed to reset best score: %v", err)
		return r.state.Clone(), errors.NewInternalError(err)
	}
	r.apply(ctx, engine.SetFeedback{Message: resetMessage, Tone: models.ToneNeutral})
	return r.state.Clone(), nil
}

// Tick advances the sprint clock by one second.
func (r *Runner) Tick(ctx context.Context) engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apply(ctx, engine.Tick{})
	return r.state.Clone()
}

// Close stops the ticker. A running run is left as it is.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTicker()
}

// apply runs ev through the reducer. Leaving the running phase stops the
// ticker and finishes the run. r.mu must be held.
func (r *Runner) apply(ctx context.Context, ev engine.Event) {
	prev := r.state
	r.state = engine.Reduce(prev, ev)
	if prev.Running() && !r.state.Running() {
		r.stopTicker()
		r.finish(ctx)
	}
}

// finish persists the score, posts the summary line and archives the run.
func (r *Runner) finish(ctx context.Context) {
	s := r.state
	log := logger.FromContext(ctx)

	res, err := r.scores.SaveBestScore(ctx, r.def.ID, s.Mode, s.Score)
	if err != nil {
		log.Error("failed to save best score: %v", err)
		res = leaderboard.SaveResult{}
	}

	message := endMessage(s.Mode, s.EndReason, s.Score, s.TotalCorrect, s.TotalAnswered)
	tone := models.ToneNeutral
	if res.Updated {
		message += newBestSuffix
		tone = models.ToneCorrect
	}
	r.state = engine.Reduce(r.state, engine.SetFeedback{Message: message, Tone: tone})

	log.WithFields(map[string]any{
		"game":   r.def.ID,
		"mode":   string(s.Mode),
		"reason": string(s.EndReason),
		"score":  s.Score,
	}).Info("run ended")

	if r.onEnded != nil {
		var seed uint32
		if s.RunSeed != nil {
			seed = *s.RunSeed
		}
		r.onEnded(ctx, models.RunRecord{
			GameID:          r.def.ID,
			Mode:            s.Mode,
			SprintMinutes:   s.SprintMinutes,
			Score:           s.Score,
			TotalAnswered:   s.TotalAnswered,
			TotalCorrect:    s.TotalCorrect,
			WrongAnswers:    s.WrongAnswers,
			DifficultyLevel: s.DifficultyLevel,
			EndReason:       s.EndReason,
			Seed:            seed,
			CreatedAt:       r.now().UTC(),
		})
	}
}

// startTicker replaces any running ticker. r.mu must be held.
func (r *Runner) startTicker() {
	r.stopTicker()
	gen := r.tickGen
	t := r.newTicker(r.interval)
	done := make(chan struct{})
	r.stopTick = func() {
		t.Stop()
		close(done)
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C():
				r.onTick(gen)
			}
		}
	}()
}

// stopTicker cancels the ticker and invalidates ticks already in flight.
// r.mu must be held.
func (r *Runner) stopTicker() {
	if r.stopTick != nil {
		r.stopTick()
		r.stopTick = nil
	}
	r.tickGen++
}

func (r *Runner) onTick(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.tickGen {
		return
	}
	r.apply(r.bgCtx, engine.Tick{})
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
