package handlers

import (
	"errors"
	"net/http"

	forge "github.com/dmitrymomot/forge-oauth"
	"github.com/dmitrymomot/forge-oauth/auth"
	"github.com/dmitrymomot/forge-oauth/middlewares"
	"github.com/dmitrymomot/forge-oauth/views"
)

// Pages serves the index, users and profile routes.
type Pages struct{}

// NewPages creates the pages handler.
func NewPages() *Pages {
	return &Pages{}
}

// Routes implements forge.Handler.
func (h *Pages) Routes(r forge.Router) {
	r.GET("/", h.index)
	r.GET("/users", h.users)

	r.Group(func(r forge.Router) {
		r.Use(middlewares.RequireAuth(LoginPath))
		r.GET(ProfilePath, h.profile)
	})
}

func (h *Pages) index(c forge.Context) error {
	if user, err := CurrentUser(c); err == nil {
		return c.Render(http.StatusOK, views.Index(&user))
	}
	return c.Render(http.StatusOK, views.Index(nil))
}

func (h *Pages) users(c forge.Context) error {
	return c.String(http.StatusOK, "respond with a resource")
}

func (h *Pages) profile(c forge.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		// Authenticated session without a readable user: start over.
		c.LogWarn("session has no usable user", "error", err)
		if derr := c.DestroySession(); derr != nil {
			c.LogWarn("failed to destroy session", "error", derr)
		}
		return c.Redirect(http.StatusFound, LoginPath)
	}
	return c.Render(http.StatusOK, views.Profile(user))
}

// CurrentUser returns the signed-in user stored in the session.
func CurrentUser(c forge.Context) (auth.User, error) {
	if !c.IsAuthenticated() {
		return auth.User{}, auth.ErrNoUser
	}
	raw, err := c.SessionValue(auth.SessionKey)
	if err != nil {
		return auth.User{}, errors.Join(auth.ErrNoUser, err)
	}
	return auth.DecodeUser(raw)
}
