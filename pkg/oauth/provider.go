package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// UserInfo represents provider-agnostic user information
// retrieved from an OAuth provider's userinfo endpoint.
type UserInfo struct {
	ID      string // Provider's unique user identifier, if any
	Email   string
	Name    string
	Picture string
}

// Provider abstracts the OAuth operations used by the login flow.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// AuthCodeURL generates the authorization URL for the OAuth flow.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	// An empty redirectURI uses the configured one.
	Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)

	// FetchUserInfo retrieves user information using the access token
	// as a Bearer credential.
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error)
}
