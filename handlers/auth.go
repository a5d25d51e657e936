package handlers

import (
	"errors"
	"fmt"
	"net/http"

	forge "github.com/dmitrymomot/forge-oauth"
	"github.com/dmitrymomot/forge-oauth/auth"
	"github.com/dmitrymomot/forge-oauth/views"
)

// Route paths.
const (
	LoginPath    = "/login"
	CallbackPath = "/authorization-code/callback"
	LogoutPath   = "/logout"
	ProfilePath  = "/profile"
)

// LoginFailedURL is where every failed login attempt ends up.
const LoginFailedURL = LoginPath + "?error=login_failed"

const (
	stateCookie = "oauth_state"
	stateMaxAge = 10 * 60 // seconds
	flashError  = "auth_error"
)

// Auth serves the login, callback and logout routes.
type Auth struct {
	svc *auth.Service
}

// NewAuth creates the auth handler.
func NewAuth(svc *auth.Service) *Auth {
	return &Auth{svc: svc}
}

// Routes implements forge.Handler.
func (h *Auth) Routes(r forge.Router) {
	r.Any(LoginPath, h.login)
	r.GET(CallbackPath, h.callback)
	r.Any(LogoutPath, h.logout)
}

// login sends the browser to the provider. After a failed attempt it shows
// the failure instead, so a broken provider cannot cause a redirect loop.
func (h *Auth) login(c forge.Context) error {
	if c.Query("error") != "" {
		var msg string
		if err := c.Flash(flashError, &msg); err != nil && !errors.Is(err, forge.ErrCookieNotFound) {
			c.LogDebug("unreadable login flash", "error", err)
		}
		return c.Render(http.StatusOK, views.LoginFailed(msg))
	}

	state, authURL, err := h.svc.Begin()
	if err != nil {
		return err
	}
	if err := c.SetCookieSigned(stateCookie, state, stateMaxAge); err != nil {
		return fmt.Errorf("set state cookie: %w", err)
	}
	return c.Redirect(http.StatusFound, authURL)
}

// callback completes the flow. Any failure redirects to LoginFailedURL
// without leaving a session behind.
func (h *Auth) callback(c forge.Context) error {
	issued, _ := c.PopCookieSigned(stateCookie)

	if reason := c.Query("error"); reason != "" {
		return h.fail(c, fmt.Errorf("%w: %s", auth.ErrAccessDenied, reason))
	}
	if err := auth.CheckState(issued, c.Query("state")); err != nil {
		return h.fail(c, err)
	}

	user, err := h.svc.Complete(c, issued, c.Query("code"))
	if err != nil {
		return h.fail(c, err)
	}
	encoded, err := auth.EncodeUser(user)
	if err != nil {
		return h.fail(c, err)
	}

	if err := c.AuthenticateSession(user.Email); err != nil {
		return h.fail(c, fmt.Errorf("authenticate session: %w", err))
	}
	if err := c.SetSessionValue(auth.SessionKey, encoded); err != nil {
		if derr := c.DestroySession(); derr != nil {
			c.LogError("failed to discard half-created session", "error", derr)
		}
		return h.fail(c, fmt.Errorf("store user: %w", err))
	}

	c.LogInfo("user signed in", "provider", h.svc.Provider())
	return c.Redirect(http.StatusFound, ProfilePath)
}

func (h *Auth) logout(c forge.Context) error {
	if err := c.DestroySession(); err != nil {
		c.LogWarn("failed to destroy session", "error", err)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Auth) fail(c forge.Context, err error) error {
	c.LogWarn("login failed", "provider", h.svc.Provider(), "error", err)
	if ferr := c.SetFlash(flashError, failureMessage(err)); ferr != nil {
		c.LogWarn("failed to set login flash", "error", ferr)
	}
	return c.Redirect(http.StatusFound, LoginFailedURL)
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTimeout):
		return "The identity provider did not respond in time. Please try again."
	case errors.Is(err, auth.ErrAccessDenied):
		return "Sign-in was cancelled at the identity provider."
	case errors.Is(err, auth.ErrInvalidState):
		return "The sign-in link expired. Please start again."
	default:
		return "Sign-in did not complete. Please try again."
	}
}
