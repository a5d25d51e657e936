package oauth

// Default endpoints of the SimpleLogin identity provider.
const (
	DefaultAuthURL     = "https://app.simplelogin.io/oauth2/authorize"
	DefaultTokenURL    = "https://app.simplelogin.io/oauth2/token"
	DefaultUserInfoURL = "https://app.simplelogin.io/oauth2/userinfo"
)

// Config holds the OAuth2 client registration and the provider endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	Endpoints
}

// Endpoints are the three provider URLs the authorization-code flow talks to.
type Endpoints struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// DefaultEndpoints returns the SimpleLogin endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		AuthURL:     DefaultAuthURL,
		TokenURL:    DefaultTokenURL,
		UserInfoURL: DefaultUserInfoURL,
	}
}

// DefaultScopes returns the scopes requested when none are configured:
// read access to the user's profile.
func DefaultScopes() []string {
	return []string{"profile"}
}
