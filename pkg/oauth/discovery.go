package oauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
)

const wellKnownSuffix = "/.well-known/openid-configuration"

// Discover resolves the provider endpoints from the issuer's OpenID
// configuration document. The issuer may be given with or without the
// well-known suffix. Only WithHTTPClient is honored among the options.
func Discover(ctx context.Context, issuer string, opts ...Option) (Endpoints, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient != nil {
		ctx = gooidc.ClientContext(ctx, o.httpClient)
	}

	issuer = strings.TrimSuffix(strings.TrimSuffix(issuer, "/"), wellKnownSuffix)

	p, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return Endpoints{}, errors.Join(ErrDiscoveryFailed, fmt.Errorf("issuer %s: %w", issuer, err))
	}

	var claims struct {
		UserInfoURL string `json:"userinfo_endpoint"`
	}
	if err := p.Claims(&claims); err != nil {
		return Endpoints{}, errors.Join(ErrDiscoveryFailed, fmt.Errorf("decode discovery claims: %w", err))
	}

	endpoint := p.Endpoint()
	eps := Endpoints{
		AuthURL:     endpoint.AuthURL,
		TokenURL:    endpoint.TokenURL,
		UserInfoURL: claims.UserInfoURL,
	}
	if eps.AuthURL == "" || eps.TokenURL == "" || eps.UserInfoURL == "" {
		return Endpoints{}, errors.Join(ErrDiscoveryFailed, ErrMissingEndpoint)
	}

	return eps, nil
}
