package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitness-scheduler/internal/app"
	"fitness-scheduler/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockApp(t *testing.T) (*app.App, *bun.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	bunDB := bun.NewDB(sqlDB, pgdialect.New())

	cfg := &config.Config{Server: config.ServerConfig{Port: "0", CORSOrigins: []string{"http://localhost:3000"}}}
	a := app.NewWithDeps(app.Deps{
		Config: cfg,
		DB:     bunDB,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return a, bunDB, mock
}

func get(a *app.App, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouterServesStaticRoutes(t *testing.T) {
	a, bunDB, _ := newMockApp(t)
	defer bunDB.Close()

	w := get(a, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fitness Scheduler")

	w = get(a, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouterReadiness(t *testing.T) {
	a, bunDB, mock := newMockApp(t)
	defer bunDB.Close()

	mock.ExpectPing()

	w := get(a, "/ready")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouterReportsUnreachableStore(t *testing.T) {
	a, bunDB, mock := newMockApp(t)

	mock.ExpectClose()
	require.NoError(t, bunDB.Close())

	for _, path := range []string{"/members", "/members/1", "/sessions", "/sessions/1"} {
		w := get(a, path)

		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"Error":"Database Connection Failed"}`, w.Body.String(), path)
	}

	w := get(a, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestShutdownClosesResources(t *testing.T) {
	a, _, mock := newMockApp(t)

	mock.ExpectClose()

	require.NoError(t, a.Shutdown(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunReturnsAfterShutdown(t *testing.T) {
	a, _, mock := newMockApp(t)
	mock.ExpectClose()

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	require.NoError(t, a.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}
