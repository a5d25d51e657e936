package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/forge-oauth/auth"
	"github.com/dmitrymomot/forge-oauth/pkg/oauth"
)

type fakeProvider struct {
	exchange  func(ctx context.Context, code string) (*oauth2.Token, error)
	userInfo  func(ctx context.Context, token *oauth2.Token) (*oauth.UserInfo, error)
	exchanges atomic.Int32
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) AuthCodeURL(state string, _ ...oauth2.AuthCodeOption) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(ctx context.Context, code, _ string) (*oauth2.Token, error) {
	p.exchanges.Add(1)
	if p.exchange != nil {
		return p.exchange(ctx, code)
	}
	return &oauth2.Token{AccessToken: "at-" + code, TokenType: "Bearer"}, nil
}

func (p *fakeProvider) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*oauth.UserInfo, error) {
	if p.userInfo != nil {
		return p.userInfo(ctx, token)
	}
	return &oauth.UserInfo{ID: "1", Email: "a@b.com", Name: "A", Picture: "https://img"}, nil
}

func TestService_Begin(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(&fakeProvider{})
	require.Equal(t, "fake", svc.Provider())

	state1, url1, err := svc.Begin()
	require.NoError(t, err)
	state2, _, err := svc.Begin()
	require.NoError(t, err)

	require.Len(t, state1, 43, "32 random bytes, base64url without padding")
	require.NotEqual(t, state1, state2)
	require.Contains(t, url1, "state="+state1)
}

func TestCheckState(t *testing.T) {
	t.Parallel()

	require.NoError(t, auth.CheckState("abc", "abc"))
	require.ErrorIs(t, auth.CheckState("abc", "abd"), auth.ErrInvalidState)
	require.ErrorIs(t, auth.CheckState("", ""), auth.ErrInvalidState)
	require.ErrorIs(t, auth.CheckState("abc", ""), auth.ErrInvalidState)
}

func TestService_Complete(t *testing.T) {
	t.Parallel()

	t.Run("maps email and name", func(t *testing.T) {
		t.Parallel()
		var gotToken string
		p := &fakeProvider{userInfo: func(_ context.Context, tok *oauth2.Token) (*oauth.UserInfo, error) {
			gotToken = tok.AccessToken
			return &oauth.UserInfo{Email: "a@b.com", Name: "A"}, nil
		}}

		user, err := auth.NewService(p).Complete(context.Background(), "state-1", "code-1")
		require.NoError(t, err)
		require.Equal(t, auth.User{Email: "a@b.com", Name: "A"}, user)
		require.Equal(t, "at-code-1", gotToken)
	})

	t.Run("missing code", func(t *testing.T) {
		t.Parallel()
		p := &fakeProvider{}
		_, err := auth.NewService(p).Complete(context.Background(), "state-1", "")
		require.ErrorIs(t, err, auth.ErrMissingCode)
		require.Zero(t, p.exchanges.Load())
	})

	t.Run("exchange failure", func(t *testing.T) {
		t.Parallel()
		p := &fakeProvider{exchange: func(context.Context, string) (*oauth2.Token, error) {
			return nil, errors.Join(oauth.ErrExchangeFailed, errors.New("invalid_grant"))
		}}
		_, err := auth.NewService(p).Complete(context.Background(), "state-1", "bad")
		require.ErrorIs(t, err, oauth.ErrExchangeFailed)
		require.NotErrorIs(t, err, auth.ErrTimeout)
	})

	t.Run("userinfo failure", func(t *testing.T) {
		t.Parallel()
		p := &fakeProvider{userInfo: func(context.Context, *oauth2.Token) (*oauth.UserInfo, error) {
			return nil, oauth.ErrRequestFailed
		}}
		_, err := auth.NewService(p).Complete(context.Background(), "state-1", "code")
		require.ErrorIs(t, err, oauth.ErrRequestFailed)
	})

	t.Run("slow provider times out", func(t *testing.T) {
		t.Parallel()
		p := &fakeProvider{exchange: func(ctx context.Context, _ string) (*oauth2.Token, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}}

		start := time.Now()
		_, err := auth.NewService(p, auth.WithTimeout(20*time.Millisecond)).Complete(context.Background(), "state-1", "slow")
		require.ErrorIs(t, err, auth.ErrTimeout)
		require.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("client timeout counts as timeout", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(release) })

		provider, err := oauth.NewProvider(oauth.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			Endpoints:    oauth.Endpoints{AuthURL: srv.URL, TokenURL: srv.URL, UserInfoURL: srv.URL},
		}, oauth.WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
		require.NoError(t, err)

		_, err = auth.NewService(provider, auth.WithTimeout(time.Minute)).Complete(context.Background(), "state-1", "code")
		require.ErrorIs(t, err, auth.ErrTimeout)
	})

	t.Run("caller cancellation does not leak into shared exchange", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		user, err := auth.NewService(&fakeProvider{}).Complete(ctx, "state-1", "code")
		require.NoError(t, err)
		require.Equal(t, "a@b.com", user.Email)
	})

	t.Run("missing state", func(t *testing.T) {
		t.Parallel()
		p := &fakeProvider{}
		_, err := auth.NewService(p).Complete(context.Background(), "", "code")
		require.ErrorIs(t, err, auth.ErrInvalidState)
		require.Zero(t, p.exchanges.Load())
	})

	t.Run("repeated callback of one login shares the exchange", func(t *testing.T) {
		t.Parallel()
		entered := make(chan struct{})
		release := make(chan struct{})
		p := &fakeProvider{exchange: func(_ context.Context, code string) (*oauth2.Token, error) {
			close(entered)
			<-release
			return &oauth2.Token{AccessToken: "at-" + code}, nil
		}}
		svc := auth.NewService(p)

		users := make([]auth.User, 2)
		errs := make([]error, 2)
		var wg sync.WaitGroup
		wg.Go(func() { users[0], errs[0] = svc.Complete(context.Background(), "state-1", "code") })
		<-entered
		wg.Go(func() { users[1], errs[1] = svc.Complete(context.Background(), "state-1", "code") })
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		for i := range users {
			require.NoError(t, errs[i])
			require.Equal(t, "a@b.com", users[i].Email)
		}
		require.EqualValues(t, 1, p.exchanges.Load())
	})

	t.Run("one code under two logins is exchanged twice", func(t *testing.T) {
		t.Parallel()
		var used sync.Map
		p := &fakeProvider{exchange: func(_ context.Context, code string) (*oauth2.Token, error) {
			time.Sleep(20 * time.Millisecond)
			if _, loaded := used.LoadOrStore(code, true); loaded {
				return nil, errors.Join(oauth.ErrExchangeFailed, errors.New("invalid_grant"))
			}
			return &oauth2.Token{AccessToken: "at-" + code}, nil
		}}
		svc := auth.NewService(p)

		states := []string{"state-a", "state-b"}
		errs := make([]error, len(states))
		var wg sync.WaitGroup
		for i, state := range states {
			wg.Go(func() { _, errs[i] = svc.Complete(context.Background(), state, "stolen-code") })
		}
		wg.Wait()

		require.EqualValues(t, 2, p.exchanges.Load())
		failed := 0
		for _, err := range errs {
			if err != nil {
				require.ErrorIs(t, err, oauth.ErrExchangeFailed)
				failed++
			}
		}
		require.Equal(t, 1, failed, "only one login may redeem the code")
	})
}
