package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reino/financas-api/internal/config"
	"github.com/reino/financas-api/internal/events"
	"github.com/reino/financas-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{
			Driver: driverSQLite,
			URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		},
		Auth: config.AuthConfig{
			JWTSecret:            "thisisasecretkeythatis32charslong!!",
			TokenLifetimeMinutes: 60,
			BcryptCost:           4,
		},
		Events: config.EventsConfig{Backend: eventsMemory, Stream: "financas.events"},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, testutils.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func TestNewApplication(t *testing.T) {
	t.Run("sqlite with in-memory events", func(t *testing.T) {
		app := newTestApplication(t, testConfig(t))

		assert.NotNil(t, app.accountService)
		assert.NotNil(t, app.entryService)
		assert.IsType(t, &events.InMemoryPublisher{}, app.publisher)
	})

	t.Run("events disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Events.Backend = eventsNone

		app := newTestApplication(t, cfg)
		assert.IsType(t, events.NopPublisher{}, app.publisher)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.Driver = "mysql"

		app, err := newApplication(context.Background(), cfg, testutils.DiscardLogger())
		require.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.JWTSecret = "short"

		_, err := newApplication(context.Background(), cfg, testutils.DiscardLogger())
		require.Error(t, err)
	})
}

func TestRouter(t *testing.T) {
	app := newTestApplication(t, testConfig(t))
	router := app.setupRouter()

	send := func(method, path, token, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = bytes.NewBufferString(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = send(http.MethodPost, "/api/auth/register", "",
		`{"name":"nome","email":"email@email.com","password":"senha"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(http.MethodPost, "/api/auth/register", "",
		`{"name":"outro","email":"email@email.com","password":"outra"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(http.MethodPost, "/api/auth/login", "", `{"email":"email@email.com","password":"senha"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Account struct {
			ID int64 `json:"id"`
		} `json:"account"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, int64(1), login.Account.ID)

	w = send(http.MethodPost, "/api/entries", login.Token,
		`{"description":"Salary","month":1,"year":2024,"amount":"2500.10","type":"income"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entry struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = send(http.MethodPatch, fmt.Sprintf("/api/entries/%d/status", entry.ID), login.Token, `{"status":"settled"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(http.MethodGet, fmt.Sprintf("/api/accounts/%d/balance", login.Account.ID), login.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"account_id":1,"balance":"2500.1"}`, w.Body.String())

	w = send(http.MethodGet, "/api/entries", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	app := newTestApplication(t, testConfig(t))
	require.NoError(t, app.db.Close())

	w := httptest.NewRecorder()
	app.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	app.db = nil
}
