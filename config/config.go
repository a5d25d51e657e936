// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/forge-oauth/pkg/oauth"
)

// EnvDevelopment enables verbose error pages and text logs.
const EnvDevelopment = "development"

// MinCookieSecretLength is the shortest accepted COOKIE_SECRET.
const MinCookieSecretLength = 32

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete application configuration.
// It is built once at startup and passed explicitly to constructors.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"production"`
	HTTP    HTTPConfig
	OAuth   OAuthConfig
	Session SessionConfig
	Log     LogConfig
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Address         string        `env:"ADDRESS"          envDefault:":3000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// OAuthConfig configures the OAuth2 client and its provider endpoints.
type OAuthConfig struct {
	ClientID     string        `env:"CLIENT_ID,required,notEmpty"`
	ClientSecret string        `env:"CLIENT_SECRET,required,notEmpty"`
	AuthURL      string        `env:"OAUTH_AUTHORIZATION_URL" envDefault:"https://app.simplelogin.io/oauth2/authorize"`
	TokenURL     string        `env:"OAUTH_TOKEN_URL"         envDefault:"https://app.simplelogin.io/oauth2/token"`
	UserInfoURL  string        `env:"OAUTH_USERINFO_URL"      envDefault:"https://app.simplelogin.io/oauth2/userinfo"`
	RedirectURL  string        `env:"OAUTH_REDIRECT_URL"      envDefault:"http://localhost:3000/authorization-code/callback"`
	IssuerURL    string        `env:"OAUTH_ISSUER_URL"`
	ProviderName string        `env:"OAUTH_PROVIDER_NAME"     envDefault:"simplelogin"`
	Scopes       []string      `env:"OAUTH_SCOPES"            envDefault:"profile" envSeparator:","`
	HTTPTimeout  time.Duration `env:"OAUTH_HTTP_TIMEOUT"      envDefault:"5s"`
}

// SessionConfig configures session cookies and the in-memory store.
type SessionConfig struct {
	// CookieSecret signs and encrypts cookies. When empty a random secret
	// is generated at startup, which invalidates cookies on restart.
	CookieSecret string        `env:"COOKIE_SECRET"`
	CookieName   string        `env:"SESSION_COOKIE_NAME"  envDefault:"__sid"`
	MaxAge       time.Duration `env:"SESSION_MAX_AGE"      envDefault:"720h"`
	MaxSessions  int           `env:"SESSION_MAX_SESSIONS" envDefault:"10000"`
	Secure       bool          `env:"SESSION_SECURE"       envDefault:"true"`
}

// LogConfig configures logging and optional Sentry reporting.
type LogConfig struct {
	Level             slog.Level `env:"LOG_LEVEL"          envDefault:"info"`
	SentryDSN         string     `env:"SENTRY_DSN"`
	SentryEnvironment string     `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// Load reads a .env file when present, then parses and validates the
// process environment. A missing CLIENT_ID or CLIENT_SECRET is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses and validates configuration from the given variables
// instead of the process environment.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sanitize normalizes values after parsing.
func (c *Config) Sanitize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.OAuth.ClientID = strings.TrimSpace(c.OAuth.ClientID)
	c.OAuth.ClientSecret = strings.TrimSpace(c.OAuth.ClientSecret)
	c.OAuth.IssuerURL = strings.TrimSpace(c.OAuth.IssuerURL)

	scopes := c.OAuth.Scopes[:0]
	for _, s := range c.OAuth.Scopes {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	c.OAuth.Scopes = scopes
}

// Validate checks cross-field rules env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if c.OAuth.ClientID == "" {
		errs = append(errs, errors.New("CLIENT_ID is empty"))
	}
	if c.OAuth.ClientSecret == "" {
		errs = append(errs, errors.New("CLIENT_SECRET is empty"))
	}
	if c.OAuth.IssuerURL != "" {
		if err := checkURL("OAUTH_ISSUER_URL", c.OAuth.IssuerURL); err != nil {
			errs = append(errs, err)
		}
	} else {
		for name, v := range map[string]string{
			"OAUTH_AUTHORIZATION_URL": c.OAuth.AuthURL,
			"OAUTH_TOKEN_URL":         c.OAuth.TokenURL,
			"OAUTH_USERINFO_URL":      c.OAuth.UserInfoURL,
		} {
			if err := checkURL(name, v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := checkURL("OAUTH_REDIRECT_URL", c.OAuth.RedirectURL); err != nil {
		errs = append(errs, err)
	}
	if c.OAuth.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("OAUTH_HTTP_TIMEOUT must be positive"))
	}
	if s := c.Session.CookieSecret; s != "" && len(s) < MinCookieSecretLength {
		errs = append(errs, fmt.Errorf("COOKIE_SECRET must be at least %d bytes", MinCookieSecretLength))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME is empty"))
	}
	if c.Session.MaxAge <= 0 {
		errs = append(errs, errors.New("SESSION_MAX_AGE must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether error details may be shown to users.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Provider returns the OAuth client configuration for the configured endpoints.
func (o OAuthConfig) Provider() oauth.Config {
	return oauth.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		RedirectURL:  o.RedirectURL,
		Scopes:       o.Scopes,
		Endpoints: oauth.Endpoints{
			AuthURL:     o.AuthURL,
			TokenURL:    o.TokenURL,
			UserInfoURL: o.UserInfoURL,
		},
	}
}

func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}
