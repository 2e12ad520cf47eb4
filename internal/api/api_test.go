package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/api"
	"github.com/vytor/mathsprint/internal/catalog"
	"github.com/vytor/mathsprint/internal/jobs"
	"github.com/vytor/mathsprint/internal/leaderboard"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository/memory"
	"github.com/vytor/mathsprint/internal/services"
	"github.com/vytor/mathsprint/internal/session"
	"github.com/vytor/mathsprint/internal/testutil/mocks"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type idleTicker struct{}

func (idleTicker) C() <-chan time.Time { return nil }
func (idleTicker) Stop()               {}

type apiFixture struct {
	handler http.Handler
	runs    *mocks.MockRunRepository
	store   *leaderboard.Store
}

func newAPI(t *testing.T, ping error) *apiFixture {
	t.Helper()
	cat, err := catalog.Default(logger.Discard())
	require.NoError(t, err)

	store := leaderboard.New(memory.NewKeyValueRepository())
	runs := new(mocks.MockRunRepository)
	sessions := services.NewSessionService(cat, store, jobs.NewWorkerQueue(nil, runs), services.SessionConfig{
		NewTicker: func(time.Duration) session.Ticker { return idleTicker{} },
	}, logger.Discard())
	t.Cleanup(sessions.Close)

	srv := &api.Server{
		Sessions: sessions,
		Results:  services.NewResultsService(cat, store, runs),
		Solver:   services.NewSolverService(),
		DB:       stubPinger{err: ping},
		Logger:   logger.Discard(),
	}
	return &apiFixture{handler: srv.Routes(), runs: runs, store: store}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealthAndReady(t *testing.T) {
	f := newAPI(t, nil)

	rec, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, body = f.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])

	down := newAPI(t, fmt.Errorf("database is locked"))
	rec, _ = down.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListGames(t *testing.T) {
	f := newAPI(t, nil)

	rec, body := f.do(t, http.MethodGet, "/games", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list, ok := body["games"].([]any)
	require.True(t, ok)
	require.Len(t, list, 3)
	first := list[0].(map[string]any)
	assert.Equal(t, "target-24", first["id"])
	assert.Equal(t, "Target 24", first["title"])
}

func TestCreateSession(t *testing.T) {
	f := newAPI(t, nil)

	rec, body := f.do(t, http.MethodPost, "/sessions", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))

	rec, body = f.do(t, http.MethodPost, "/sessions", `{"gameId":"chess"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	rec, body = f.do(t, http.MethodPost, "/sessions", `{"gameId":"target-24","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(body))

	rec, body = f.do(t, http.MethodPost, "/sessions", `{"gameId":"target-24","mode":"survival"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "/sessions/"+id, rec.Header().Get("Location"))
	state := body["state"].(map[string]any)
	assert.Equal(t, "survival", state["mode"])
	assert.Equal(t, "idle", state["phase"])
}

func TestSessionLifecycle(t *testing.T) {
	f := newAPI(t, nil)
	f.runs.On("Insert", mock.Anything, mock.MatchedBy(func(run models.RunRecord) bool {
		return run.GameID == "target-24" && run.EndReason == models.EndReasonManual
	})).Return(int64(1), nil).Once()

	_, body := f.do(t, http.MethodPost, "/sessions", `{"gameId":"target-24"}`)
	id := body["id"].(string)
	base := "/sessions/" + id

	rec, body := f.do(t, http.MethodPost, base+"/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "running", body["state"].(map[string]any)["phase"])
	assert.NotEmpty(t, body["prompt"])

	rec, body = f.do(t, http.MethodPost, base+"/answer", `{"answer":"24 ^ 1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	outcome := body["outcome"].(map[string]any)
	assert.Equal(t, "invalid", outcome["kind"])
	assert.Equal(t, "Unsupported character: ^", outcome["message"])

	rec, body = f.do(t, http.MethodPost, base+"/mode", `{"mode":"survival"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sprint", body["state"].(map[string]any)["mode"], "mode is locked while running")

	rec, body = f.do(t, http.MethodPost, base+"/end", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := body["state"].(map[string]any)
	assert.Equal(t, "ended", state["phase"])
	assert.Equal(t, "manual", state["end_reason"])

	rec, body = f.do(t, http.MethodPost, base+"/sprint-minutes", `{"minutes":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sprint length set to 3 minutes.", body["state"].(map[string]any)["feedback"].(map[string]any)["message"])

	rec, body = f.do(t, http.MethodPost, base+"/sprint-minutes", `{"minutes":4}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))

	rec, _ = f.do(t, http.MethodPost, base+"/reset-best", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = f.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.runs.AssertExpectations(t)
}

func TestLeaderboard(t *testing.T) {
	f := newAPI(t, nil)
	_, err := f.store.SaveBestScore(context.Background(), "target-24", models.ModeSprint, 11)
	require.NoError(t, err)

	rec, body := f.do(t, http.MethodGet, "/leaderboard/target-24", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bests := body["bests"].([]any)
	require.Len(t, bests, 2)
	assert.Equal(t, float64(11), bests[0].(map[string]any)["score"])

	rec, _ = f.do(t, http.MethodGet, "/leaderboard/chess", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRuns(t *testing.T) {
	f := newAPI(t, nil)
	filter := models.RunFilter{GameID: "target-24", Mode: models.ModeSprint, Limit: 5, Offset: 10}
	f.runs.On("List", mock.Anything, filter).Return([]models.RunRecord{{ID: 4, GameID: "target-24", Score: 3}}, nil).Once()
	f.runs.On("Count", mock.Anything, filter).Return(11, nil).Once()

	rec, body := f.do(t, http.MethodGet, "/runs?game=target-24&mode=sprint&limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(11), body["total"])
	assert.Len(t, body["runs"], 1)
	f.runs.AssertExpectations(t)

	rec, body = f.do(t, http.MethodGet, "/runs?limit=lots", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(body))

	rec, body = f.do(t, http.MethodGet, "/runs?reason=bored", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))
}

func TestSolve(t *testing.T) {
	f := newAPI(t, nil)

	rec, body := f.do(t, http.MethodPost, "/solve", `{"numbers":[8,8,3,3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["solvable"])
	assert.Equal(t, float64(24), body["target"])
	assert.NotEmpty(t, body["solution"])

	rec, body = f.do(t, http.MethodPost, "/solve", `{"numbers":[1,1,1,1]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["solvable"])

	rec, body = f.do(t, http.MethodPost, "/solve", `{"numbers":[2,5],"target":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["solvable"])

	rec, body = f.do(t, http.MethodPost, "/solve", `{"numbers":[1,2,3,4,5]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))

	rec, _ = f.do(t, http.MethodPost, "/solve", `{"numbers":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	f := newAPI(t, nil)

	rec, body := f.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	rec, _ = f.do(t, http.MethodDelete, "/games", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPanicBecomesJSON500(t *testing.T) {
	srv := &api.Server{Logger: logger.Discard()}
	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	rec := httptest.NewRecorder()

	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
