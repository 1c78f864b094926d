package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	wsCalled := false
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		wsCalled = true
		w.WriteHeader(http.StatusTeapot)
	})

	router := NewRouter(logger, ws)

	t.Run("Ping", func(t *testing.T) {
		// When: /ping is requested
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		// Then: pong is answered
		require.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, "pong", string(body))
	})

	t.Run("Websocket route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

		assert.True(t, wsCalled)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
