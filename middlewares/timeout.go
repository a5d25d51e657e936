package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/forge-oauth/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that puts a deadline on the request context.
//
// The handler runs on the calling goroutine and sees the deadline through
// the Context it receives, so outbound calls made with it are cancelled
// when time runs out. If the deadline passed and nothing was written, the
// handler's result is replaced by a TimeoutError for the ErrorHandler.
// A non-positive timeout falls back to DefaultTimeout.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			parent := c.Context()
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)
			c.SetContext(parent)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String(), "error", err)
				return &TimeoutError{Duration: timeout}
			}
			return err
		}
	}
}
