package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/models"
)

type gameResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Subtitle          string `json:"subtitle,omitempty"`
	Kind              string `json:"kind"`
	InitialDifficulty int    `json:"initial_difficulty"`
}

type runsResponse struct {
	Runs   []models.RunRecord `json:"runs"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type solveRequest struct {
	Numbers []int  `json:"numbers"`
	Target  *int64 `json:"target"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	defs := s.Sessions.ListGames(r.Context())
	out := make([]gameResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, gameResponse{
			ID:                d.ID,
			Title:             d.Title,
			Subtitle:          d.Subtitle,
			Kind:              string(d.Kind),
			InitialDifficulty: d.InitialDifficulty,
		})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"games": out})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	bests, err := s.Results.Bests(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"bests": bests})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"), "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(q.Get("offset"), "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.RunFilter{
		GameID:    q.Get("game"),
		Mode:      models.GameMode(q.Get("mode")),
		EndReason: models.EndReason(q.Get("reason")),
		Limit:     limit,
		Offset:    offset,
	}
	runs, total, err := s.Results.ListRuns(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, runsResponse{Runs: runs, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	target := int64(arith.Target)
	if req.Target != nil {
		target = *req.Target
	}

	res, err := s.Solver.Solve(r.Context(), req.Numbers, target)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewBadRequestError(name + " must be an integer")
	}
	return n, nil
}
