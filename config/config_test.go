package config_test

import (
	"log/slog"
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forge-oauth/config"
)

func baseEnv() map[string]string {
	return map[string]string{
		"CLIENT_ID":     "client-id",
		"CLIENT_SECRET": "client-secret",
	}
}

func with(kv ...string) map[string]string {
	m := baseEnv()
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func TestFromMap_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(baseEnv())
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Env)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, ":3000", cfg.HTTP.Address)
	require.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	require.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)

	require.Equal(t, "client-id", cfg.OAuth.ClientID)
	require.Equal(t, "client-secret", cfg.OAuth.ClientSecret)
	require.Equal(t, "https://app.simplelogin.io/oauth2/authorize", cfg.OAuth.AuthURL)
	require.Equal(t, "https://app.simplelogin.io/oauth2/token", cfg.OAuth.TokenURL)
	require.Equal(t, "https://app.simplelogin.io/oauth2/userinfo", cfg.OAuth.UserInfoURL)
	require.Equal(t, "http://localhost:3000/authorization-code/callback", cfg.OAuth.RedirectURL)
	require.Equal(t, []string{"profile"}, cfg.OAuth.Scopes)
	require.Equal(t, 5*time.Second, cfg.OAuth.HTTPTimeout)

	require.Empty(t, cfg.Session.CookieSecret)
	require.Equal(t, "__sid", cfg.Session.CookieName)
	require.Equal(t, 720*time.Hour, cfg.Session.MaxAge)
	require.True(t, cfg.Session.Secure)

	require.Equal(t, slog.LevelInfo, cfg.Log.Level)
	require.Empty(t, cfg.Log.SentryDSN)
}

func TestFromMap_Required(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{
			name:    "missing client id",
			environ: map[string]string{"CLIENT_SECRET": "s"},
			want:    "CLIENT_ID",
		},
		{
			name:    "missing client secret",
			environ: map[string]string{"CLIENT_ID": "id"},
			want:    "CLIENT_SECRET",
		},
		{
			name:    "empty client id",
			environ: map[string]string{"CLIENT_ID": "", "CLIENT_SECRET": "s"},
			want:    "CLIENT_ID",
		},
		{
			name:    "blank client id",
			environ: map[string]string{"CLIENT_ID": "   ", "CLIENT_SECRET": "s"},
			want:    "CLIENT_ID",
		},
		{
			name:    "blank client secret",
			environ: map[string]string{"CLIENT_ID": "id", "CLIENT_SECRET": "   "},
			want:    "CLIENT_SECRET",
		},
		{
			name:    "nothing set",
			environ: map[string]string{},
			want:    "CLIENT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.FromMap(tt.environ)
			require.Error(t, err)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestFromMap_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"short cookie secret", with("COOKIE_SECRET", "too-short"), "COOKIE_SECRET"},
		{"relative token url", with("OAUTH_TOKEN_URL", "/token"), "OAUTH_TOKEN_URL"},
		{"bad redirect url", with("OAUTH_REDIRECT_URL", "callback"), "OAUTH_REDIRECT_URL"},
		{"bad issuer", with("OAUTH_ISSUER_URL", "not a url"), "OAUTH_ISSUER_URL"},
		{"zero http timeout", with("OAUTH_HTTP_TIMEOUT", "0s"), "OAUTH_HTTP_TIMEOUT"},
		{"zero session age", with("SESSION_MAX_AGE", "0s"), "SESSION_MAX_AGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.FromMap(tt.environ)
			require.ErrorIs(t, err, config.ErrInvalid)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestFromMap_Overrides(t *testing.T) {
	t.Parallel()

	environ := with(
		"APP_ENV", " Development ",
		"ADDRESS", ":8080",
		"OAUTH_SCOPES", "profile, email ,",
		"OAUTH_HTTP_TIMEOUT", "2s",
		"COOKIE_SECRET", strings.Repeat("k", config.MinCookieSecretLength),
		"SESSION_SECURE", "false",
		"LOG_LEVEL", "debug",
		"OAUTH_ISSUER_URL", "https://accounts.example.com",
		"OAUTH_TOKEN_URL", "ignored-when-discovering",
	)

	cfg, err := config.FromMap(environ)
	require.NoError(t, err)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, []string{"profile", "email"}, cfg.OAuth.Scopes)
	require.Equal(t, 2*time.Second, cfg.OAuth.HTTPTimeout)
	require.False(t, cfg.Session.Secure)
	require.Equal(t, slog.LevelDebug, cfg.Log.Level)
	require.Equal(t, "https://accounts.example.com", cfg.OAuth.IssuerURL)
}

func TestOAuthConfig_Provider(t *testing.T) {
	t.Parallel()

	environ := maps.Clone(baseEnv())
	environ["OAUTH_AUTHORIZATION_URL"] = "https://id.example.com/a"

	cfg, err := config.FromMap(environ)
	require.NoError(t, err)

	p := cfg.OAuth.Provider()
	require.Equal(t, "client-id", p.ClientID)
	require.Equal(t, "client-secret", p.ClientSecret)
	require.Equal(t, "https://id.example.com/a", p.AuthURL)
	require.Equal(t, cfg.OAuth.TokenURL, p.TokenURL)
	require.Equal(t, cfg.OAuth.RedirectURL, p.RedirectURL)
	require.Equal(t, []string{"profile"}, p.Scopes)
}

func TestLoad(t *testing.T) {
	t.Setenv("CLIENT_ID", "env-id")
	t.Setenv("CLIENT_SECRET", "env-secret")
	t.Setenv("ADDRESS", ":9999")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "env-id", cfg.OAuth.ClientID)
	require.Equal(t, ":9999", cfg.HTTP.Address)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("CLIENT_ID", "")
	t.Setenv("CLIENT_SECRET", "env-secret")

	_, err := config.Load()
	require.ErrorContains(t, err, "CLIENT_ID")
}
