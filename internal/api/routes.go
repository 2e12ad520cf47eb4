package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/mathsprint/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "method not allowed",
			Status:  http.StatusMethodNotAllowed,
		})
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/games", s.handleListGames)
	r.Get("/leaderboard/{gameID}", s.handleLeaderboard)
	r.Get("/runs", s.handleListRuns)
	r.Post("/solve", s.handleSolve)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/start", s.handleStartRun)
			r.Post("/end", s.handleEndRun)
			r.Post("/reset-best", s.handleResetBest)
			r.Post("/answer", s.handleAnswer)
			r.Post("/mode", s.handleSetMode)
			r.Post("/sprint-minutes", s.handleSetSprintMinutes)
		})
	})
	return r
}
