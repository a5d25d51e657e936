package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forge-oauth/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.LivenessHandler()(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.LivenessHandler()(w, httptest.NewRequest(http.MethodGet, "/health/live?format=json", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp health.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, health.StatusHealthy, resp.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler(health.Checks{
			"sessions": func(context.Context) error { return nil },
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		r.Header.Set("Accept", "application/json")
		h(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp health.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["sessions"].Status)
	})

	t.Run("one failing", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler(health.Checks{
			"ok":       func(context.Context) error { return nil },
			"sessions": func(context.Context) error { return errors.New("store closed") },
		})

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Equal(t, "Service Unavailable", w.Body.String())
	})

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.ReadinessHandler(nil)(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(20*time.Millisecond))

		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())

		err := resp.Err()
		require.ErrorIs(t, err, health.ErrCheckFailed)
		require.ErrorContains(t, err, "slow")
	})

	t.Run("healthy has no error", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"ok": func(context.Context) error { return nil },
		})
		require.NoError(t, resp.Err())
	})
}
