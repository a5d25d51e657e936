package oauth

import "net/http"

// Option configures an OAuth provider.
type Option func(*options)

type options struct {
	httpClient *http.Client
	name       string
}

// WithHTTPClient sets the HTTP client used for the token exchange,
// the userinfo request and discovery. Set a Timeout on it to bound
// every outbound call.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithName overrides the provider identifier returned by Name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
