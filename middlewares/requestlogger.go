package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/forge-oauth/internal"
)

// RequestLogger returns middleware that logs one line per request once the
// handler returns. Requests that end with an error or a 5xx status are
// logged at warn level.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			r := c.Request()
			rw := c.ResponseWriter()
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}

			switch {
			case err != nil:
				c.LogWarn("request failed", append(attrs, slog.Any("error", err))...)
			case rw.Status() >= 500:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
