package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	forge "github.com/dmitrymomot/forge-oauth"
	"github.com/dmitrymomot/forge-oauth/handlers"
	"github.com/dmitrymomot/forge-oauth/middlewares"
)

type routes func(r forge.Router)

func (f routes) Routes(r forge.Router) { f(r) }

func newErrorApp(development bool) *forge.App {
	pages := handlers.NewErrorPages(development)
	return forge.New(
		forge.WithMiddleware(middlewares.Recover()),
		forge.WithErrorHandler(pages.Handle),
		forge.WithNotFoundHandler(pages.NotFound),
		forge.WithMethodNotAllowedHandler(pages.MethodNotAllowed),
		forge.WithHandlers(routes(func(r forge.Router) {
			r.GET("/fail", func(forge.Context) error {
				return errors.New("database password is hunter2")
			})
			r.GET("/panic", func(forge.Context) error {
				panic("nil pointer somewhere")
			})
			r.GET("/forbidden", func(c forge.Context) error {
				return c.Error(http.StatusForbidden, "You cannot see this.")
			})
		})),
	)
}

func serve(app http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestErrorPages_Production(t *testing.T) {
	t.Parallel()
	app := newErrorApp(false)

	w := serve(app, http.MethodGet, "/fail")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Internal Server Error")
	require.NotContains(t, w.Body.String(), "hunter2")

	w = serve(app, http.MethodGet, "/panic")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "nil pointer")
	require.NotContains(t, w.Body.String(), "goroutine")

	w = serve(app, http.MethodGet, "/forbidden")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "You cannot see this.")

	w = serve(app, http.MethodGet, "/does-not-exist")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "<title>Not Found</title>")
	require.NotContains(t, w.Body.String(), "<pre>")

	w = serve(app, http.MethodPost, "/fail")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestErrorPages_Development(t *testing.T) {
	t.Parallel()
	app := newErrorApp(true)

	w := serve(app, http.MethodGet, "/fail")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "<pre>database password is hunter2</pre>")

	w = serve(app, http.MethodGet, "/panic")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "panic: nil pointer somewhere")
	require.Contains(t, w.Body.String(), "goroutine")

	w = serve(app, http.MethodGet, "/does-not-exist")
	require.NotContains(t, w.Body.String(), "<pre>")
}
