package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forge-oauth/internal"
)

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.ErrBadRequest("missing code")
		err := fmt.Errorf("callback: %w", httpErr)
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("joined HTTPError", func(t *testing.T) {
		t.Parallel()
		err := errors.Join(errors.New("exchange failed"), internal.ErrUnauthorized("denied"))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(errors.New("something went wrong")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("userinfo: status 500")
		httpErr := internal.ErrInternal("sign-in failed",
			internal.WithTitle("Login failed"),
			internal.WithDetail("provider returned 500"),
			internal.WithRequestID("req-1"),
			internal.WithError(cause),
		)
		err := fmt.Errorf("handler: %w", httpErr)

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusInternalServerError, got.StatusCode())
		require.Equal(t, "Internal Server Error", got.StatusText())
		require.Equal(t, "sign-in failed", got.Error())
		require.Equal(t, "Login failed", got.Title)
		require.Equal(t, "provider returned 500", got.Detail)
		require.Equal(t, "req-1", got.RequestID)
		require.ErrorIs(t, err, cause)
	})

	t.Run("constructors set codes", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, http.StatusForbidden, internal.ErrForbidden("x").Code)
		require.Equal(t, http.StatusNotFound, internal.ErrNotFound("x").Code)
		require.Equal(t, http.StatusMethodNotAllowed, internal.ErrMethodNotAllowed("x").Code)
		require.Equal(t, http.StatusServiceUnavailable, internal.ErrServiceUnavailable("x").Code)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("plain error")))
	})

	t.Run("nil returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(nil))
	})
}
