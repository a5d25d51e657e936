package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/forge-oauth/pkg/logger"
	"github.com/dmitrymomot/forge-oauth/pkg/oauth"
)

// DefaultTimeout bounds the code exchange and userinfo calls together.
const DefaultTimeout = 5 * time.Second

const stateBytes = 32

// Service runs the authorization-code flow against a single provider.
// It is safe for concurrent use.
type Service struct {
	provider oauth.Provider
	timeout  time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the deadline for exchanging a code and fetching the user.
// Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service for provider.
func NewService(provider oauth.Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		timeout:  DefaultTimeout,
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the provider name.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// Begin starts a login. It returns a fresh state value, which the caller
// must keep for the callback, and the provider authorization URL.
func (s *Service) Begin() (state, authURL string, err error) {
	state, err = newState()
	if err != nil {
		return "", "", err
	}
	return state, s.provider.AuthCodeURL(state), nil
}

// CheckState compares the callback state with the issued one in constant time.
func CheckState(issued, received string) error {
	if issued == "" || received == "" || subtle.ConstantTimeCompare([]byte(issued), []byte(received)) != 1 {
		return ErrInvalidState
	}
	return nil
}

// Complete exchanges code for an access token and fetches the user with it.
// Both calls share one deadline; running out of time yields ErrTimeout.
//
// state is the value issued to the browser that started this login. Only
// concurrent calls carrying the same state and code share an exchange, so a
// repeated callback from one browser waits for the first, while a code
// replayed under another login reaches the provider on its own and is
// rejected there.
func (s *Service) Complete(ctx context.Context, state, code string) (User, error) {
	if code == "" {
		return User{}, ErrMissingCode
	}
	if state == "" {
		return User{}, ErrInvalidState
	}

	v, err, shared := s.group.Do(state+"\x00"+code, func() (any, error) {
		// Detached from the first caller so its cancellation does not fail
		// the others; the timeout still bounds the work.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		token, err := s.provider.Exchange(ctx, code, "")
		if err != nil {
			return User{}, s.classify(ctx, err)
		}
		user, err := s.FetchUser(ctx, token)
		if err != nil {
			return User{}, s.classify(ctx, err)
		}
		return user, nil
	})
	if shared {
		s.logger.DebugContext(ctx, "authorization code exchange shared", slog.String("provider", s.Provider()))
	}
	if err != nil {
		return User{}, err
	}
	return v.(User), nil
}

// FetchUser calls the provider's userinfo endpoint with token as a Bearer
// credential and maps the response to a User.
func (s *Service) FetchUser(ctx context.Context, token *oauth2.Token) (User, error) {
	info, err := s.provider.FetchUserInfo(ctx, token)
	if err != nil {
		return User{}, fmt.Errorf("fetch user: %w", err)
	}
	return User{Email: info.Email, Name: info.Name}, nil
}

func (s *Service) classify(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Join(ErrTimeout, err)
	}
	return err
}

func newState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
