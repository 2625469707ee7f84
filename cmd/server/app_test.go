package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/api"
	apiMiddleware "github.com/phrazzld/lexis-api/internal/api/middleware"
	"github.com/phrazzld/lexis-api/internal/config"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 0, LogLevel: "error", ShutdownTimeout: time.Second},
		Database: config.DatabaseConfig{Driver: driverMemory},
		SRS: config.SRSConfig{
			DayStartHour:         4,
			MinEaseFactor:        1.3,
			VocabularyEaseFactor: 2.5,
			GrammarEaseFactor:    2.0,
			FuzzMinInterval:      4,
			FuzzRatio:            0.05,
			Timezone:             "UTC",
		},
		Learner: config.LearnerConfig{
			DefaultDailyGoal: 20,
			GoalBonusPoints:  5,
			StreakFreezeCost: 50,
			MaxStreakFreezes: 2,
		},
		Capture: config.CaptureConfig{DeferBelowImportance: 2},
		Session: config.SessionConfig{ReviewsPerNewItem: 3},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type client struct {
	t      *testing.T
	server *httptest.Server
	userID uuid.UUID
}

func (c client) do(method, path, body string) (*http.Response, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if c.userID != uuid.Nil {
		req.Header.Set(apiMiddleware.UserIDHeader, c.userID.String())
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := newApplication(context.Background(), testConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return server
}

func TestNewApplicationRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Database.Driver = "sqlite"
	_, err := newApplication(context.Background(), cfg, discardLogger())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestHealthAndIdentity(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, body := client{t: t, server: server}.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get(apiMiddleware.TraceHeader))

	resp, _ = client{t: t, server: server}.do(http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLearningDayEndToEnd(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	learner := client{t: t, server: server, userID: uuid.New()}

	resp, _ := learner.do(http.MethodPost, "/api/learner", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = learner.do(http.MethodPost, "/api/learner", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = learner.do(http.MethodPut, "/api/learner/settings", `{"daily_goal": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := learner.do(http.MethodPost, "/api/items", `{"term": "der Hund", "definition": "dog", "category": "animals"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item api.ItemResponse
	require.NoError(t, json.Unmarshal(body, &item))
	assert.Equal(t, 2.5, item.EaseFactor)

	resp, body = learner.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sess api.SessionResponse
	require.NoError(t, json.Unmarshal(body, &sess))
	require.Equal(t, 1, sess.Count)
	assert.Equal(t, item.ID, sess.Items[0].ID)

	resp, body = learner.do(http.MethodPost, "/api/items/"+item.ID+"/review", `{"quality": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var outcome api.ReviewResponse
	require.NoError(t, json.Unmarshal(body, &outcome))
	assert.True(t, outcome.GoalMet)
	assert.Equal(t, "reset", outcome.StreakCredit)
	assert.Equal(t, 7, outcome.PointsAwarded, "2 for the review plus the 5 point goal bonus")
	assert.Equal(t, 1, outcome.Item.Interval)
	assert.Equal(t, 1, outcome.Progress.StreakCount)

	resp, body = learner.do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash service.DashboardSnapshot
	require.NoError(t, json.Unmarshal(body, &dash))
	assert.Equal(t, 1, dash.LearnedToday)
	assert.True(t, dash.GoalMetToday)
	assert.Equal(t, 1, dash.TotalCount)
	assert.Equal(t, []string{"animals"}, dash.Categories)
	assert.Equal(t, 7, dash.Points)

	resp, body = learner.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &sess))
	assert.Equal(t, 0, sess.Count, "reviewed item is not due and the goal is met")

	resp, _ = learner.do(http.MethodPost, "/api/items/"+item.ID+"/grammar-review", `{"grade": 3}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "vocabulary items reject grammar grades")

	resp, _ = learner.do(http.MethodPost, "/api/learner/streak-freezes", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "7 points do not buy a freeze")
}

func TestInboxAndOwnershipEndToEnd(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	owner := client{t: t, server: server, userID: uuid.New()}
	other := client{t: t, server: server, userID: uuid.New()}

	for _, c := range []client{owner, other} {
		resp, _ := c.do(http.MethodPost, "/api/learner", "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := owner.do(http.MethodPost, "/api/items",
		`{"term": "obwohl", "source": "test", "importance_score": 1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item api.ItemResponse
	require.NoError(t, json.Unmarshal(body, &item))
	assert.True(t, item.IsDeferred)

	resp, body = owner.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"count":0`, "deferred items stay out of sessions")

	resp, body = owner.do(http.MethodGet, "/api/inbox", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox api.ItemListResponse
	require.NoError(t, json.Unmarshal(body, &inbox))
	require.Len(t, inbox.Items, 1)

	resp, _ = other.do(http.MethodPost, "/api/items/"+item.ID+"/promote", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = other.do(http.MethodPost, "/api/items/"+item.ID+"/review", `{"quality": 4}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = owner.do(http.MethodPost, "/api/items/"+item.ID+"/promote", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &item))
	assert.False(t, item.IsDeferred)

	resp, _ = owner.do(http.MethodDelete, "/api/items/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = owner.do(http.MethodDelete, "/api/items/"+item.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	t.Parallel()

	app, err := newApplication(context.Background(), testConfig(), discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("LEXIS_DATABASE_DRIVER", driverMemory)
	t.Setenv("LEXIS_SERVER_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"migrate", "up", "--env-file", t.TempDir() + "/missing.env"})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "migrations require the postgres driver")
}
