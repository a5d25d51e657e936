// Package oauth provides the OAuth2 authorization code flow against a single
// configurable identity provider.
//
// The package includes a Provider interface and a generic Client that works
// with any server exposing an authorization endpoint, a token endpoint and a
// JSON userinfo endpoint. Endpoints default to SimpleLogin and may be
// overridden directly or resolved from an OpenID Connect issuer with Discover.
//
// # Usage
//
//	provider, err := oauth.NewProvider(oauth.Config{
//		ClientID:     os.Getenv("CLIENT_ID"),
//		ClientSecret: os.Getenv("CLIENT_SECRET"),
//		RedirectURL:  "http://localhost:3000/authorization-code/callback",
//		Endpoints:    oauth.DefaultEndpoints(),
//	}, oauth.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Generate authorization URL
//	url := provider.AuthCodeURL("random-state-string")
//
//	// Exchange code for token (in callback handler)
//	token, err := provider.Exchange(ctx, code, "")
//
//	// Fetch user info with the token as a Bearer credential
//	user, err := provider.FetchUserInfo(ctx, token)
//
// Endpoint discovery:
//
//	eps, err := oauth.Discover(ctx, "https://accounts.example.com")
//
// # Testing
//
// Point the endpoints at an httptest server:
//
//	ts := httptest.NewServer(mux)
//	defer ts.Close()
//
//	provider, err := oauth.NewProvider(oauth.Config{
//		ClientID: "id", ClientSecret: "secret",
//		Endpoints: oauth.Endpoints{
//			AuthURL:     ts.URL + "/authorize",
//			TokenURL:    ts.URL + "/token",
//			UserInfoURL: ts.URL + "/userinfo",
//		},
//	})
//
// # Error Handling
//
// The package provides sentinel errors for specific failure modes:
//
//   - ErrMissingClientID, ErrMissingClientSecret, ErrMissingEndpoint: bad configuration
//   - ErrExchangeFailed: the token endpoint rejected the code or was unreachable
//   - ErrFetchFailed: HTTP request to the userinfo endpoint failed (including timeouts)
//   - ErrNilResponse: Provider returned nil HTTP response
//   - ErrRequestFailed: Provider returned non-OK HTTP status
//   - ErrDecodeFailed: Failed to decode provider JSON response
//   - ErrMissingEmail: userinfo carried no email
//   - ErrDiscoveryFailed: OpenID configuration unavailable or incomplete
//
// Use errors.Is for checking:
//
//	if errors.Is(err, oauth.ErrRequestFailed) {
//		// provider refused the token
//	}
//
// # Security
//
//   - Always validate the state parameter to prevent CSRF attacks
//   - Use HTTPS redirect URIs in production
//   - Tokens are never persisted by this package
//   - Keep client secrets out of source control (use environment variables)
package oauth
