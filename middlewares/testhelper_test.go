package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrymomot/forge-oauth/internal"
)

// withContext serves req through a real App and hands fn the request Context.
func withContext(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context)) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithHandlers(routes(func(r internal.Router) {
		r.Any("/*", func(c internal.Context) error {
			fn(c)
			return nil
		})
	})))

	w := httptest.NewRecorder()
	internal.New(opts...).ServeHTTP(w, req)
	return w
}

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// syncBuffer is a bytes.Buffer safe for use as a log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureLogger returns an App option logging JSON into the returned buffer.
func captureLogger() (internal.Option, *syncBuffer) {
	buf := &syncBuffer{}
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return internal.WithCustomLogger(log), buf
}
