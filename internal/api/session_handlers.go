package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/services"
)

type createSessionRequest struct {
	GameID string          `json:"gameId"`
	Mode   models.GameMode `json:"mode"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type modeRequest struct {
	Mode models.GameMode `json:"mode"`
}

type sprintMinutesRequest struct {
	Minutes models.SprintMinutes `json:"minutes"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.GameID = strings.TrimSpace(req.GameID)
	if req.GameID == "" {
		handleError(w, r, errors.NewValidationError("gameId", "is required"))
		return
	}
	log.Debug("create session request: game_id=%s, mode=%s", req.GameID, req.Mode)

	snap, err := s.Sessions.Create(r.Context(), req.GameID, req.Mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+snap.ID)
	writeJSON(w, r, http.StatusCreated, snap)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	respondSnapshot(w, r, snap, err)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Start(r.Context(), chi.URLParam(r, "id"))
	respondSnapshot(w, r, snap, err)
}

func (s *Server) handleEndRun(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.End(r.Context(), chi.URLParam(r, "id"))
	respondSnapshot(w, r, snap, err)
}

func (s *Server) handleResetBest(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.ResetBest(r.Context(), chi.URLParam(r, "id"))
	respondSnapshot(w, r, snap, err)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	snap, err := s.Sessions.SubmitAnswer(r.Context(), chi.URLParam(r, "id"), req.Answer)
	respondSnapshot(w, r, snap, err)
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	snap, err := s.Sessions.SetMode(r.Context(), chi.URLParam(r, "id"), req.Mode)
	respondSnapshot(w, r, snap, err)
}

func (s *Server) handleSetSprintMinutes(w http.ResponseWriter, r *http.Request) {
	var req sprintMinutesRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	snap, err := s.Sessions.SetSprintMinutes(r.Context(), chi.URLParam(r, "id"), req.Minutes)
	respondSnapshot(w, r, snap, err)
}

func respondSnapshot(w http.ResponseWriter, r *http.Request, snap *services.SessionSnapshot, err error) {
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}
