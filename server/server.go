// Package server assembles the application from its configuration.
package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	forge "github.com/dmitrymomot/forge-oauth"
	"github.com/dmitrymomot/forge-oauth/auth"
	"github.com/dmitrymomot/forge-oauth/config"
	"github.com/dmitrymomot/forge-oauth/handlers"
	"github.com/dmitrymomot/forge-oauth/middlewares"
	"github.com/dmitrymomot/forge-oauth/pkg/logger"
	"github.com/dmitrymomot/forge-oauth/pkg/oauth"
	"github.com/dmitrymomot/forge-oauth/pkg/session"
)

// Server is the configured application plus the resources it owns.
type Server struct {
	cfg   config.Config
	app   *forge.App
	store *session.MemoryStore
	log   *slog.Logger
}

// Option configures New.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
}

// WithLogger sets the application logger. Defaults to NewLogger(cfg).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHTTPClient sets the client used to talk to the identity provider.
// Defaults to a client with the configured OAuth timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// NewLogger builds the logger described by cfg: text in development,
// JSON otherwise, request IDs on every line, Sentry when a DSN is set.
func NewLogger(cfg config.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithLevel(cfg.Log.Level),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	}
	if cfg.IsDevelopment() {
		opts = append(opts, logger.WithText())
	}
	if cfg.Log.SentryDSN != "" {
		opts = append(opts, logger.WithSentry(logger.SentryConfig{
			DSN:         cfg.Log.SentryDSN,
			Environment: cfg.Log.SentryEnvironment,
			MinLevel:    slog.LevelWarn,
		}))
	}
	return logger.New(opts...)
}

// New builds the application. With OAUTH_ISSUER_URL set the provider
// endpoints are discovered first, which is the only network call made here.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Server, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.OAuth.HTTPTimeout}
	}
	log := o.logger

	provider, err := newProvider(ctx, cfg.OAuth, o.httpClient)
	if err != nil {
		return nil, err
	}
	svc := auth.NewService(provider,
		auth.WithTimeout(cfg.OAuth.HTTPTimeout),
		auth.WithLogger(log),
	)

	secret := cfg.Session.CookieSecret
	if secret == "" {
		if secret, err = randomSecret(); err != nil {
			return nil, err
		}
		log.Warn("COOKIE_SECRET is not set; using a random secret, cookies will not survive a restart")
	}

	store := session.NewMemoryStore(session.WithMaxSessions(cfg.Session.MaxSessions))
	pages := handlers.NewErrorPages(cfg.IsDevelopment())

	app := forge.New(
		forge.WithCustomLogger(log),
		forge.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.HTTP.RequestTimeout),
		),
		forge.WithCookieOptions(
			forge.WithCookieSecret(secret),
			forge.WithCookieSecure(cfg.Session.Secure),
			forge.WithCookieHTTPOnly(true),
			forge.WithCookieSameSite(http.SameSiteLaxMode),
		),
		forge.WithSession(store,
			forge.WithSessionCookieName(cfg.Session.CookieName),
			forge.WithSessionMaxAge(cfg.Session.MaxAge),
			forge.WithSessionSecure(cfg.Session.Secure),
			forge.WithSessionHTTPOnly(true),
			forge.WithSessionSameSite(http.SameSiteLaxMode),
		),
		forge.WithHealthChecks(
			forge.WithReadinessCheck("sessions", store.Healthcheck),
		),
		forge.WithErrorHandler(pages.Handle),
		forge.WithNotFoundHandler(pages.NotFound),
		forge.WithMethodNotAllowedHandler(pages.MethodNotAllowed),
		forge.WithHandlers(
			handlers.NewAuth(svc),
			handlers.NewPages(),
		),
	)

	log.Info("application configured",
		slog.String("env", cfg.Env),
		slog.String("provider", provider.Name()),
		slog.String("redirect_url", cfg.OAuth.RedirectURL),
	)

	return &Server{cfg: cfg, app: app, store: store, log: log}, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Run serves on the configured address until ctx is cancelled or the
// process receives SIGINT/SIGTERM, then closes the session store.
func (s *Server) Run(ctx context.Context, opts ...forge.RunOption) error {
	base := []forge.RunOption{
		forge.WithContext(ctx),
		forge.Logger(s.log),
		forge.ShutdownTimeout(s.cfg.HTTP.ShutdownTimeout),
		forge.ShutdownHook(func(context.Context) error { return s.store.Close() }),
	}
	return s.app.Run(s.cfg.HTTP.Address, append(base, opts...)...)
}

// Close releases resources without running the server.
func (s *Server) Close() error {
	return s.store.Close()
}

func newProvider(ctx context.Context, cfg config.OAuthConfig, client *http.Client) (*oauth.Client, error) {
	pcfg := cfg.Provider()
	if cfg.IssuerURL != "" {
		endpoints, err := oauth.Discover(ctx, cfg.IssuerURL, oauth.WithHTTPClient(client))
		if err != nil {
			return nil, fmt.Errorf("discover provider: %w", err)
		}
		pcfg.Endpoints = endpoints
	}

	provider, err := oauth.NewProvider(pcfg,
		oauth.WithHTTPClient(client),
		oauth.WithName(cfg.ProviderName),
	)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return provider, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cookie secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
