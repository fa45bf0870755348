package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/gymstats/catalog"
	"github.com/2beens/liftlog/internal/gymstats/leaderboard"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
)

const testJWTSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		Environment:         "development",
		Storage:             config.StorageMemory,
		JWTSecret:           testJWTSecret,
		TrackedExercises:    []string{"Bench Press", "Squat"},
		BodyweightExercises: config.DefaultBodyweightExercises,
		BaseExercises:       []string{"Squat", "Deadlift"},
		LeaderboardWorkers:  2,
		NameCacheSizeMB:     1,
		NameCacheTTLSeconds: 60,
		AllowedOrigins:      []string{"http://localhost:3000"},
	}
	s, err := NewServer(context.Background(), NewServerParams{Config: cfg, VersionInfo: "test-version"})
	require.NoError(t, err)
	return s, s.routerSetup()
}

func token(t *testing.T, userID, name string) string {
	t.Helper()
	tok, err := auth.NewTokenChecker(testJWTSecret, "").Issue(auth.Identity{UserID: userID, DisplayName: name}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, h http.Handler, method, path, authHeader, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func benchWorkout(day, weight string) string {
	return fmt.Sprintf(`{"date":%q,"type":"push","exercises":[{"name":"Bench Press","sets":3,"reps":5,"topWeight":%q}]}`, day, weight)
}

func TestNewServer_RequiresJWTSecret(t *testing.T) {
	_, err := NewServer(context.Background(), NewServerParams{
		Config: &config.Config{Storage: config.StorageMemory},
	})
	assert.Error(t, err)
}

func TestServer_PublicAndProtectedRoutes(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test-version"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = do(t, h, http.MethodGet, "/leaderboard", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"exerciseName":"Bench Press","topHolder":null},{"exerciseName":"Squat","topHolder":null}]`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/workouts", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodGet, "/workouts", "Bearer not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodGet, "/workouts", token(t, "u1", ""), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestServer_WorkoutLifecycle(t *testing.T) {
	_, h := newTestServer(t)
	ana := token(t, "ana", "Ana")
	bo := token(t, "bo", "")

	rr := do(t, h, http.MethodPost, "/workouts", ana, benchWorkout("2024-01-01", "100"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = do(t, h, http.MethodPost, "/workouts", ana, benchWorkout("2024-01-08", "110"))
	require.Equal(t, http.StatusCreated, rr.Code)
	var second workouts.Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))

	rr = do(t, h, http.MethodPost, "/workouts", bo, benchWorkout("2024-01-09", "105"))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, h, http.MethodGet, "/records", ana, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summaries []records.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "110.00", summaries[0].CurrentMax.String())
	assert.Len(t, summaries[0].PRHistory, 2)

	rr = do(t, h, http.MethodGet, "/leaderboard", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var board []leaderboard.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.NotNil(t, board[0].TopHolder)
	assert.Equal(t, "Ana", board[0].TopHolder.DisplayName)
	assert.Equal(t, "110.00", board[0].TopHolder.Weight.String())

	// someone else cannot delete it
	rr = do(t, h, http.MethodDelete, fmt.Sprintf("/workouts/%d", second.ID), bo, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, fmt.Sprintf("/workouts/%d", second.ID), ana, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// the leaderboard is recomputed right away, bo now leads with 105 and no display name
	rr = do(t, h, http.MethodGet, "/leaderboard", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.NotNil(t, board[0].TopHolder)
	assert.Equal(t, "bo", board[0].TopHolder.UserID)
	assert.Equal(t, leaderboard.UnknownDisplayName, board[0].TopHolder.DisplayName)

	rr = do(t, h, http.MethodPost, "/workouts", ana, `{"date":"2024-01-01","type":"push","exercises":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServer_Catalog(t *testing.T) {
	_, h := newTestServer(t)
	ana := token(t, "ana", "")

	rr := do(t, h, http.MethodGet, "/exercises", ana, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []catalog.Exercise
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2)

	rr = do(t, h, http.MethodPost, "/exercises", ana, `{"name":"Squat"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPost, "/exercises", ana, `{"name":"Hip Thrust"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestServer_CorsPreflight(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/workouts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
