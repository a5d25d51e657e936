package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forge-oauth/internal"
	"github.com/dmitrymomot/forge-oauth/pkg/cookie"
	"github.com/dmitrymomot/forge-oauth/pkg/session"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	t.Run("first non-empty source wins", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?request_id=from-query", nil)
		req.Header.Set("X-Request-ID", "from-header")

		requestVia(t, req, nil, func(c internal.Context) {
			v, ok := internal.NewExtractor(
				internal.FromHeader("X-Missing"),
				internal.FromHeader("X-Request-ID"),
				internal.FromQuery("request_id"),
			).Extract(c)
			require.True(t, ok)
			require.Equal(t, "from-header", v)
		})
	})

	t.Run("all sources miss", func(t *testing.T) {
		t.Parallel()
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) {
			v, ok := internal.NewExtractor(
				internal.FromHeader("X-Request-ID"),
				internal.FromQuery("code"),
				internal.FromCookie("plain"),
				internal.FromCookieSigned("oauth_state"),
				internal.FromSession("user"),
			).Extract(c)
			require.False(t, ok)
			require.Empty(t, v)
		})
	})

	t.Run("form", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"code": {"c1"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		requestVia(t, req, nil, func(c internal.Context) {
			v, ok := internal.NewExtractor(internal.FromQuery("code"), internal.FromForm("code")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "c1", v)
		})
	})

	t.Run("cookies", func(t *testing.T) {
		t.Parallel()
		opts := []internal.Option{internal.WithCookieOptions(cookie.WithSecret(testSecret))}

		set := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) {
			c.SetCookie("plain", "p", 60)
			require.NoError(t, c.SetCookieSigned("oauth_state", "s", 60))
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range set.Result().Cookies() {
			req.AddCookie(ck)
		}

		requestVia(t, req, opts, func(c internal.Context) {
			v, ok := internal.NewExtractor(internal.FromCookieSigned("oauth_state")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "s", v)

			v, ok = internal.NewExtractor(internal.FromCookie("plain")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "p", v)
		})
	})

	t.Run("session", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)
		sess := session.New("sess-1", "tok-1", time.Now().Add(time.Hour))
		sess.SetValue("user", "encoded")
		require.NoError(t, store.Create(context.Background(), sess))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "__sid", Value: "tok-1"})

		requestVia(t, req, []internal.Option{internal.WithSession(store)}, func(c internal.Context) {
			v, ok := internal.NewExtractor(internal.FromSession("user")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "encoded", v)
		})
	})
}
