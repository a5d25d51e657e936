package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/forge-oauth/internal"
)

// RequireAuth returns middleware that lets only authenticated sessions
// through. Everyone else is redirected to loginPath with 302 Found.
// A session store failure is treated as not authenticated.
func RequireAuth(loginPath string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if c.IsAuthenticated() {
				return next(c)
			}
			c.LogDebug("unauthenticated request", "path", c.Request().URL.Path)
			return c.Redirect(http.StatusFound, loginPath)
		}
	}
}
