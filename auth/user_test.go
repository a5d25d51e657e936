package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forge-oauth/auth"
)

func TestEncodeDecodeUser(t *testing.T) {
	t.Parallel()

	t.Run("stable schema", func(t *testing.T) {
		t.Parallel()
		s, err := auth.EncodeUser(auth.User{Email: "a@b.com", Name: "A"})
		require.NoError(t, err)
		require.JSONEq(t, `{"email":"a@b.com","name":"A"}`, s)

		u, err := auth.DecodeUser(s)
		require.NoError(t, err)
		require.Equal(t, auth.User{Email: "a@b.com", Name: "A"}, u)
	})

	t.Run("values are kept verbatim", func(t *testing.T) {
		t.Parallel()
		in := auth.User{Email: "O'Brien+tag@example.com", Name: `<b>"Zoë"</b>`}
		s, err := auth.EncodeUser(in)
		require.NoError(t, err)

		out, err := auth.DecodeUser(s)
		require.NoError(t, err)
		require.Equal(t, in, out)
	})

	t.Run("email is required", func(t *testing.T) {
		t.Parallel()
		_, err := auth.EncodeUser(auth.User{Name: "A"})
		require.ErrorIs(t, err, auth.ErrInvalidUser)

		_, err = auth.DecodeUser(`{"name":"A"}`)
		require.ErrorIs(t, err, auth.ErrInvalidUser)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{`not json`, `{"email":"a@b.com","role":"admin"}`, `[]`} {
			_, err := auth.DecodeUser(s)
			require.ErrorIs(t, err, auth.ErrInvalidUser, s)
		}
	})

	t.Run("empty value means no user", func(t *testing.T) {
		t.Parallel()
		_, err := auth.DecodeUser("")
		require.ErrorIs(t, err, auth.ErrNoUser)
	})
}

func TestUser_DisplayName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "A", auth.User{Email: "a@b.com", Name: "A"}.DisplayName())
	require.Equal(t, "a@b.com", auth.User{Email: "a@b.com"}.DisplayName())
}
