package middlewares_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forge-oauth/internal"
	"github.com/dmitrymomot/forge-oauth/middlewares"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	logOpt, logs := captureLogger()
	app := internal.New(
		logOpt,
		internal.WithMiddleware(middlewares.RequestLogger()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/users", func(c internal.Context) error {
				return c.String(http.StatusOK, "respond with a resource")
			})
			r.GET("/fail", func(internal.Context) error {
				return errors.New("boom")
			})
		})),
	)

	for _, path := range []string{"/users", "/fail", "/missing"} {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := map[string]map[string]any{}
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if p, ok := e["path"].(string); ok && e["method"] == http.MethodGet {
			entries[p] = e
		}
	}

	require.Equal(t, "INFO", entries["/users"]["level"])
	require.EqualValues(t, http.StatusOK, entries["/users"]["status"])
	require.EqualValues(t, len("respond with a resource"), entries["/users"]["size"])

	// The route's own error handling renders the 500 before the logger sees it.
	require.Equal(t, "WARN", entries["/fail"]["level"])
	require.EqualValues(t, http.StatusInternalServerError, entries["/fail"]["status"])

	require.EqualValues(t, http.StatusNotFound, entries["/missing"]["status"])
}
