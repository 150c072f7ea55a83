package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/auth"
	"github.com/example/mistermo/internal/core"
	"github.com/example/mistermo/internal/db"
	"github.com/example/mistermo/internal/middleware"
	"github.com/example/mistermo/internal/models"
)

type failingMirror struct{ calls int }

func (m *failingMirror) Mirror(context.Context, time.Time, string, json.RawMessage) error {
	m.calls++
	return errors.New("sheets unavailable")
}

type testServer struct {
	router *gin.Engine
	store  *db.Store
	mirror *failingMirror
}

func newTestServer(t *testing.T, verifier auth.InitDataVerifier) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	store := db.NewSQLiteStore(gdb)
	t.Cleanup(func() { store.Close() })

	logger := zap.NewNop()
	mirror := &failingMirror{}
	clock := func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }

	metrics := middleware.NewMetrics()
	router := gin.New()
	router.Use(middleware.RequestLogger(logger), middleware.RecoveryMiddleware(logger), metrics.Middleware())
	SetupRoutes(router, logger, metrics.Handler(logger),
		core.NewUserService(store.Users, verifier, logger),
		core.NewProgressService(store.Progress, clock),
		core.NewOnboardingService(store.Onboarding, core.OnboardingConfig{Mirror: mirror, Now: clock}, logger),
	)
	return &testServer{router: router, store: store, mirror: mirror}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())

	w := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())
	s.do(t, http.MethodGet, "/api/health", "")

	w := s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/health"`)
}

func TestAuthTelegram(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())

	w := s.do(t, http.MethodPost, "/api/auth/telegram", `{"init_data":"query_id=1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	decode(t, w, &resp)
	assert.Equal(t, "user_test_user", resp.User.ID)
	assert.Equal(t, "tg_user_test_user", resp.Token)

	// Same identity again keeps a single user.
	w = s.do(t, http.MethodPost, "/api/auth/telegram", `{"init_data":"query_id=2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var again AuthResponse
	decode(t, w, &again)
	assert.Equal(t, resp.User.ID, again.User.ID)
	assert.True(t, resp.User.CreatedAt.Equal(again.User.CreatedAt))
}

func TestAuthTelegram_Errors(t *testing.T) {
	tests := []struct {
		name       string
		verifier   auth.InitDataVerifier
		body       string
		wantStatus int
	}{
		{name: "empty init data", verifier: auth.NewStubVerifier(), body: `{"init_data":""}`, wantStatus: http.StatusBadRequest},
		{name: "missing body", verifier: auth.NewStubVerifier(), body: "", wantStatus: http.StatusBadRequest},
		{name: "malformed body", verifier: auth.NewStubVerifier(), body: `{"init_data":`, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad signature", verifier: auth.NewHMACVerifier("123:abc", time.Hour), body: `{"init_data":"auth_date=1&hash=00"}`, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.verifier)
			w := s.do(t, http.MethodPost, "/api/auth/telegram", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var resp ErrorResponse
			decode(t, w, &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestProgressFlow(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())

	w := s.do(t, http.MethodGet, "/api/progress/today?user_id=u1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rec models.DailyProgress
	decode(t, w, &rec)
	assert.Equal(t, "u1_2024-03-10", rec.ID)
	assert.Equal(t, 1050.0, *rec.CaloriesTarget)
	assert.Equal(t, []string{}, rec.CompletedTasks)

	w = s.do(t, http.MethodPost, "/api/progress/update", `{"user_id":"u1","calories_target":1300,"completed_tasks":["a","b"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/progress/update", `{"user_id":"u1","steps":5000,"completed_tasks":["c"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/progress/today?user_id=u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &rec)
	assert.Equal(t, 5000, *rec.Steps)
	assert.Equal(t, 1300.0, *rec.CaloriesTarget)
	assert.Equal(t, []string{"c"}, rec.CompletedTasks)
	assert.Nil(t, rec.Weight)
}

func TestProgress_Errors(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/progress/today", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/progress/update", `{"steps":1}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(t, http.MethodPost, "/api/progress/update", `{"user_id":"u1","steps":"many"}`).Code)
}

func TestUserState(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())

	w := s.do(t, http.MethodGet, "/api/user/state?user_id=nobody", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"onboarding_done":false,"subscription_tier":null}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/user/state", `{"user_id":"nobody","onboarding_done":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	_, err := s.store.Users.GetByID(context.Background(), "nobody")
	assert.True(t, errors.Is(err, db.ErrNotFound))

	s.do(t, http.MethodPost, "/api/auth/telegram", `{"init_data":"x"}`)
	w = s.do(t, http.MethodPost, "/api/user/state", `{"user_id":"user_test_user","onboarding_done":true,"subscription_tier":"pro"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/user/state?user_id=user_test_user", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"onboarding_done":true,"subscription_tier":"pro"}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/user/state", `{"onboarding_done":true}`).Code)
}

func TestOnboardingSave(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())

	w := s.do(t, http.MethodPost, "/api/onboarding/save", `{"user_id":"u1","answers":{"goal":"lose"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 1, s.mirror.calls)

	subs, err := s.store.Onboarding.ListByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.JSONEq(t, `{"goal":"lose"}`, subs[0].Data)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/onboarding/save", `{}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(t, http.MethodPost, "/api/onboarding/save", `not json`).Code)
}

func TestRecoveredPanicReturns500(t *testing.T) {
	s := newTestServer(t, auth.NewStubVerifier())
	s.router.GET("/api/panic", func(c *gin.Context) { panic("boom") })

	w := s.do(t, http.MethodGet, "/api/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
