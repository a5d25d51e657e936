package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"net/http"
)

// MinSecretLength is the shortest secret accepted by WithSecret.
const MinSecretLength = 32

// maxCookieSize is the practical browser limit for a single cookie.
const maxCookieSize = 4096

// Manager reads and writes cookies with shared attributes.
// Signing and encryption use independent keys derived from one secret.
type Manager struct {
	signKey   []byte
	aead      cipher.AEAD
	secretErr error // ErrNoSecret or ErrBadSecret when signing is unavailable
	domain    string
	path      string
	secure    bool
	httpOnly  bool
	sameSite  http.SameSite
}

// Option configures the Manager.
type Option func(*options)

type options struct {
	secret   string
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// New creates a cookie Manager with the given options.
// Without a valid secret only plain cookies are available; signed,
// encrypted and flash operations return ErrNoSecret or ErrBadSecret.
func New(opts ...Option) *Manager {
	o := options{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		domain:   o.domain,
		path:     o.path,
		secure:   o.secure,
		httpOnly: o.httpOnly,
		sameSite: o.sameSite,
	}

	switch {
	case o.secret == "":
		m.secretErr = ErrNoSecret
	case len(o.secret) < MinSecretLength:
		m.secretErr = ErrBadSecret
	default:
		m.signKey = deriveKey(o.secret, "cookie-sign")
		aead, err := newAEAD(deriveKey(o.secret, "cookie-encrypt"))
		if err != nil {
			m.secretErr = errors.Join(ErrBadSecret, err)
			break
		}
		m.aead = aead
	}

	return m
}

// WithSecret sets the secret for signing and encryption.
// Must be at least MinSecretLength bytes.
func WithSecret(secret string) Option {
	return func(o *options) {
		o.secret = secret
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(o *options) {
		o.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(o *options) {
		o.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *options) {
		o.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(o *options) {
		o.sameSite = ss
	}
}

// Err reports why signed and encrypted cookies are unavailable, or nil.
func (m *Manager) Err() error {
	return m.secretErr
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie. maxAge follows http.Cookie semantics:
// zero is a browser-session cookie, negative deletes.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

func (m *Manager) setChecked(w http.ResponseWriter, name, value string, maxAge int) error {
	if len(name)+len(value) > maxCookieSize {
		return ErrTooLarge
	}
	http.SetCookie(w, m.cookie(name, value, maxAge))
	return nil
}

// deriveKey separates the signing and encryption keys so one never
// doubles as the other.
func deriveKey(secret, label string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(label))
	return mac.Sum(nil)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
