// Package forge is the public face of a small web layer for server-rendered
// Go applications: routing, middleware, cookies, sessions, health endpoints
// and graceful shutdown. This module uses it to run an OAuth2
// authorization-code login example.
//
// # Quick Start
//
//	app := forge.New(
//	    forge.WithCustomLogger(log),
//	    forge.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    forge.WithSession(session.NewMemoryStore()),
//	    forge.WithHandlers(handlers.NewAuth(svc), handlers.NewPages()),
//	)
//
//	if err := app.Run(":3000", forge.Logger(log)); err != nil {
//	    log.Error("server error", "error", err)
//	    os.Exit(1)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type Pages struct{}
//
//	func (h *Pages) Routes(r forge.Router) {
//	    r.GET("/", h.index)
//	    r.Group(func(r forge.Router) {
//	        r.Use(middlewares.RequireAuth("/login"))
//	        r.GET("/profile", h.profile)
//	    })
//	}
//
// Handler methods receive a [Context] and return an error. Returned errors
// reach the [ErrorHandler] configured with [WithErrorHandler].
//
// # Context
//
// [Context] embeds context.Context, so it can be handed to outbound calls
// directly and they observe request cancellation and deadlines:
//
//	user, err := svc.Complete(c, state, c.Query("code"))
//
// # Sessions
//
// [WithSession] enables server-side sessions keyed by an opaque cookie
// token. Sessions are created only on demand, typically by
// Context.AuthenticateSession after a successful login, which also rotates
// the token. Values are saved automatically before the response is written.
//
// # Cookies
//
// Signed and encrypted cookies as well as flash messages need a secret of at
// least 32 bytes, set with [WithCookieOptions] and [WithCookieSecret].
//
// # Health
//
// [WithHealthChecks] serves /health/live and /health/ready. Readiness runs
// every check registered with [WithReadinessCheck].
package forge
