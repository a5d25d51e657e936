// Package middlewares provides HTTP middleware for forge-oauth applications.
//
// # Request ID
//
// RequestID assigns an ID to each request. An upstream X-Request-ID or
// X-Correlation-ID header is kept, otherwise a UUIDv7 is generated.
// Pair it with RequestIDExtractor so every log line carries request_id:
//
//	app := forge.New(
//	    forge.WithLogger("web", logger.WithExtractors(middlewares.RequestIDExtractor())),
//	    forge.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into *PanicError values for the ErrorHandler.
//
// # Timeout
//
// Timeout puts a deadline on the request context. Handlers must pass the
// Context to blocking calls for the deadline to have any effect. When the
// deadline passes and nothing was written, the handler result becomes a
// *TimeoutError:
//
//	forge.WithErrorHandler(func(c forge.Context, err error) error {
//	    if middlewares.IsTimeoutError(err) {
//	        return c.String(http.StatusGatewayTimeout, "Gateway Timeout")
//	    }
//	    return c.String(http.StatusInternalServerError, "Internal Server Error")
//	})
//
// # RequestLogger
//
// RequestLogger writes one log entry per request with method, path,
// status, size and duration.
//
// # RequireAuth
//
// RequireAuth redirects requests without an authenticated session to the
// login page. Apply it to a route group:
//
//	r.Group(func(r forge.Router) {
//	    r.Use(middlewares.RequireAuth("/login"))
//	    r.GET("/profile", h.profile)
//	})
//
// # Order
//
//	forge.WithMiddleware(
//	    middlewares.RequestID(),     // first, so later logs carry the ID
//	    middlewares.RequestLogger(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(30*time.Second),
//	)
package middlewares
