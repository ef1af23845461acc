package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexusgamble/nexusgamble-go/internal/api"
	"github.com/nexusgamble/nexusgamble-go/internal/api/response"
	"github.com/nexusgamble/nexusgamble-go/internal/factory"
	"github.com/nexusgamble/nexusgamble-go/internal/testutil"
)

const testAdminKey = "letmein"

// testServer creates a test server with mocked clock and random, so
// outcomes are deterministic and the betting countdown never fires on
// its own.
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	keyHash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		AuthService:        app.AuthService,
		LedgerService:      app.LedgerService,
		OutcomeService:     app.OutcomeService,
		LeaderboardService: app.LeaderboardService,
		SessionController:  app.SessionController,
		AdminKeyHash:       string(keyHash),
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) adminRequest(method, path string, body any, key string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) register(t *testing.T, name string) response.RegisterResponse {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{"display_name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.RegisterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterPlayer(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.register(t, "Alice")
	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.Equal(t, 1, resp.Player.ID)
	assert.Equal(t, 10000, resp.Player.Balance, "registration seeds the starting grant")
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterRejectsShortName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{"display_name": "a"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_NAME")
}

func TestRegisterExistingNameReturnsSamePlayer(t *testing.T) {
	ts := newTestServer(t)

	first := ts.register(t, "Alice")
	again := ts.register(t, "Alice")

	assert.Equal(t, first.Player.ID, again.Player.ID)
	assert.NotEqual(t, first.Token, again.Token, "each registration gets a fresh token")
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var player response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	assert.Equal(t, "Alice", player.DisplayName)
}

func TestGetMeRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGameFlowThroughAPI(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")
	token := resp.Token

	// Start: landing -> round 1, seeded with the grant
	rr := ts.request(http.MethodPost, "/api/v1/game/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var sess response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "round1", sess.Phase)
	assert.Equal(t, 10000, sess.Balance)

	// Round 1: mock draw 0 resolves to rocket 1
	ts.app.MockRandom.QueueIntn(0)
	rr = ts.request(http.MethodPost, "/api/v1/game/race", map[string]int{"stake": 1000, "rocket": 1}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "interstitial1", sess.Phase)
	assert.Equal(t, 11500, sess.Balance)

	// Advance into round 2
	rr = ts.request(http.MethodPost, "/api/v1/game/advance", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	// Round 2: draw 450 resolves to target 550
	ts.app.MockRandom.QueueIntn(450)
	rr = ts.request(http.MethodPost, "/api/v1/game/range", map[string]int{"stake": 2000, "prediction": 550}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "interstitial2", sess.Phase)
	assert.Equal(t, 19500, sess.Balance)

	// Advance into round 3 and submit the full series
	rr = ts.request(http.MethodPost, "/api/v1/game/advance", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	battles := make([]map[string]int, 20)
	for i := range battles {
		battles[i] = map[string]int{"stake": 100, "fighter": 1}
	}
	// All 20 draws resolve to fighter 1
	ts.app.MockRandom.QueueIntn(make([]int, 20)...)

	rr = ts.request(http.MethodPost, "/api/v1/game/battles", map[string]any{"battles": battles}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "complete", sess.Phase)
	// 20 wins at x4 on 2000 staked
	assert.Equal(t, 25500, sess.Balance)
	assert.Len(t, sess.History, 3)
}

func TestBetOutsideBettingPhaseConflicts(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	// Still on landing
	rr := ts.request(http.MethodPost, "/api/v1/game/race", map[string]int{"stake": 100, "rocket": 1}, resp.Token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_PHASE")
}

func TestRaceRejectsUnknownRocket(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/game/start", nil, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/race", map[string]int{"stake": 100, "rocket": 6}, resp.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_ROCKET")
}

func TestInsufficientCreditsConflicts(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/game/start", nil, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/race", map[string]int{"stake": 10001, "rocket": 1}, resp.Token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INSUFFICIENT_CREDITS")
}

func TestResetReturnsToLanding(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/game/start", nil, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/reset", nil, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var sess response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "landing", sess.Phase)
	assert.Equal(t, 10000, sess.Balance)
}

func TestQuitEndsSessionAndRevokesToken(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.request(http.MethodDelete, "/api/v1/game", nil, resp.Token)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	// The token died with the session
	rr = ts.request(http.MethodGet, "/api/v1/game", nil, resp.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Re-registering issues a fresh token and a fresh session
	again := ts.register(t, "Alice")
	rr = ts.request(http.MethodGet, "/api/v1/game", nil, again.Token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")
	bob := ts.register(t, "Bob")

	rr := ts.adminRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/players/%d/balance", bob.Player.ID), map[string]int{"balance": 15000}, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/game/leaderboard", nil, alice.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Bob", entries[0].DisplayName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.True(t, entries[1].IsCurrentPlayer)
}

// Admin surface tests

func TestAdminRequiresKey(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.adminRequest(http.MethodGet, "/api/v1/admin/players", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.adminRequest(http.MethodGet, "/api/v1/admin/players", nil, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.adminRequest(http.MethodGet, "/api/v1/admin/players", nil, testAdminKey)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminSetBalance(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.adminRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/players/%d/balance", resp.Player.ID), map[string]int{"balance": 777}, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)

	var player response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	assert.Equal(t, 777, player.Balance)
}

func TestAdminSetBalanceRejectsNegative(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.adminRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/players/%d/balance", resp.Player.ID), map[string]int{"balance": -1}, testAdminKey)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_BALANCE")
}

func TestAdminRaceOverrideShapesOutcome(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.register(t, "Alice")

	rr := ts.adminRequest(http.MethodPut, "/api/v1/admin/overrides/race", map[string]int{"winner": 2}, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/start", nil, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/race", map[string]int{"stake": 1000, "rocket": 2}, resp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var sess response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, 11500, sess.Balance)
	assert.Equal(t, 2, sess.History[0].Outcome)
}

func TestAdminRaceOverrideValidatesNarrowRange(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.adminRequest(http.MethodPut, "/api/v1/admin/overrides/race", map[string]int{"winner": 4}, testAdminKey)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_OVERRIDE")
}

func TestAdminGetOverrides(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.adminRequest(http.MethodPut, "/api/v1/admin/overrides/range", map[string]int{"target": 560}, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.adminRequest(http.MethodGet, "/api/v1/admin/overrides", nil, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)

	var overrides response.Overrides
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overrides))
	require.NotNil(t, overrides.RangeTarget)
	assert.Equal(t, 560, *overrides.RangeTarget)
	assert.Nil(t, overrides.RaceWinner)
}
