package handlers

import (
	"fmt"
	"net/http"

	forge "github.com/dmitrymomot/forge-oauth"
	"github.com/dmitrymomot/forge-oauth/middlewares"
	"github.com/dmitrymomot/forge-oauth/views"
)

const internalMessage = "Something went wrong on our side. Please try again later."

// ErrorPages renders the generic error page. Error detail is shown only
// in development.
type ErrorPages struct {
	development bool
}

// NewErrorPages creates the error renderer.
func NewErrorPages(development bool) *ErrorPages {
	return &ErrorPages{development: development}
}

// Handle implements forge.ErrorHandler.
func (e *ErrorPages) Handle(c forge.Context, err error) error {
	code := http.StatusInternalServerError
	message := internalMessage
	if he := forge.AsHTTPError(err); he != nil {
		code = he.Code
		if he.Message != "" && code < http.StatusInternalServerError {
			message = he.Message
		}
	}

	attrs := []any{
		"status", code,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", err,
	}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", attrs...)
	} else {
		c.LogDebug("request rejected", attrs...)
	}

	return e.render(c, code, message, e.detail(err))
}

// NotFound renders the 404 page.
func (e *ErrorPages) NotFound(c forge.Context) error {
	return e.render(c, http.StatusNotFound, "The page you are looking for does not exist.", "")
}

// MethodNotAllowed renders the 405 page.
func (e *ErrorPages) MethodNotAllowed(c forge.Context) error {
	return e.render(c, http.StatusMethodNotAllowed, "This page does not support that request method.", "")
}

func (e *ErrorPages) render(c forge.Context, code int, message, detail string) error {
	return c.Render(code, views.ErrorPage(http.StatusText(code), message, detail))
}

func (e *ErrorPages) detail(err error) string {
	if !e.development {
		return ""
	}
	if pe, ok := middlewares.AsPanicError(err); ok && len(pe.Stack) > 0 {
		return fmt.Sprintf("%v\n\n%s", err, pe.Stack)
	}
	return err.Error()
}
