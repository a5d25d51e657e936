package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// DefaultProviderName is returned by Client.Name unless WithName is used.
const DefaultProviderName = "oauth2"

// maxErrorBody caps how much of a failed response body ends up in errors.
const maxErrorBody = 512

// Client implements Provider for any OAuth2 server that exposes an
// authorization endpoint, a token endpoint and a JSON userinfo endpoint.
type Client struct {
	config      *oauth2.Config
	httpClient  *http.Client
	name        string
	userInfoURL string
}

// NewProvider creates a provider from the client registration and endpoints.
// Returns an error if the credentials or any endpoint are empty.
func NewProvider(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if cfg.AuthURL == "" || cfg.TokenURL == "" || cfg.UserInfoURL == "" {
		return nil, ErrMissingEndpoint
	}

	o := options{name: DefaultProviderName}
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes()
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		httpClient:  o.httpClient,
		name:        o.name,
		userInfoURL: cfg.UserInfoURL,
	}, nil
}

// Name returns the provider identifier.
func (p *Client) Name() string {
	return p.name
}

// AuthCodeURL generates the authorization URL.
func (p *Client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (p *Client) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	cfg := p.config
	if redirectURI != "" && redirectURI != cfg.RedirectURL {
		c := *p.config
		c.RedirectURL = redirectURI
		cfg = &c
	}

	token, err := cfg.Exchange(p.contextWithHTTPClient(ctx), code)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	return token, nil
}

// FetchUserInfo retrieves the user's profile from the userinfo endpoint.
// The request carries the access token in an Authorization: Bearer header.
func (p *Client) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	ctx = p.contextWithHTTPClient(ctx)
	client := p.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build userinfo request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch userinfo: %w", err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, errors.New("unexpected nil response from userinfo endpoint"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("userinfo request failed: status=%d body=%s", resp.StatusCode, body))
	}

	var raw userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode userinfo: %w", err))
	}
	if raw.Email == "" {
		return nil, ErrMissingEmail
	}

	return raw.userInfo(), nil
}

func (p *Client) contextWithHTTPClient(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}

// userInfoResponse accepts both OpenID Connect claims (sub, picture)
// and the SimpleLogin shape (numeric id, avatar_url).
type userInfoResponse struct {
	ID        json.RawMessage `json:"id"`
	Sub       string          `json:"sub"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Picture   string          `json:"picture"`
	AvatarURL string          `json:"avatar_url"`
}

func (r userInfoResponse) userInfo() *UserInfo {
	id := r.Sub
	if id == "" {
		id = rawString(r.ID)
	}
	picture := r.Picture
	if picture == "" {
		picture = r.AvatarURL
	}
	return &UserInfo{
		ID:      id,
		Email:   r.Email,
		Name:    r.Name,
		Picture: picture,
	}
}

// rawString renders a JSON string or number as plain text.
func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

var _ Provider = (*Client)(nil)
