// Package internal provides the core types and implementation of the web layer.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/forge-oauth" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates routing, middleware, health endpoints, and graceful shutdown
//   - Context: Request/response access, cookies, sessions, and identity shortcuts
//   - Router: Interface handlers use to declare routes and route groups
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Renders errors returned from handlers
//   - SessionManager: Session cookie and store lifecycle
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context, such as an outbound HTTP call:
//
//	func (h *Auth) callback(c internal.Context) error {
//	    user, err := h.auth.Complete(c, state, c.Query("code"))
//	    if err != nil {
//	        return h.fail(c, err)
//	    }
//	    ...
//	}
//
// # Sessions
//
// Sessions are loaded lazily from the cookie on first access. Changes are
// flushed to the store right before the response is written, through a hook
// on ResponseWriter. AuthenticateSession creates a session when none exists
// and always rotates its token, so a token planted before login is useless
// afterwards. Reading a session never issues a cookie.
//
//	func (h *Auth) signIn(c internal.Context, user auth.User) error {
//	    if err := c.AuthenticateSession(user.Email); err != nil {
//	        return err
//	    }
//	    return c.SetSessionValue("user", auth.EncodeUser(user))
//	}
//
// # Middleware
//
// Global middleware wraps every request, including 404 and 405 responses.
// Route and group middleware run after it, in registration order:
//
//	r.Group(func(r internal.Router) {
//	    r.Use(middlewares.RequireAuth("/login"))
//	    r.GET("/profile", h.profile)
//	})
//
// # Error Handling
//
// A handler error reaches the ErrorHandler unless the response was already
// written. Without a custom handler, HTTPError codes are kept and anything
// else becomes a bare 500.
//
// # Server Runtime
//
//	err := app.Run(":3000",
//	    internal.Logger(log),
//	    internal.ShutdownTimeout(10*time.Second),
//	    internal.ShutdownHook(func(context.Context) error { return store.Close() }),
//	)
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and
// runs shutdown hooks in order.
package internal
