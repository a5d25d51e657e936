package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SessionKey is the session value key the signed-in user is stored under.
const SessionKey = "user"

// User is the local record built from the provider's userinfo response.
// It lives only in the session and is rebuilt on every login.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName returns the name, or the email when the provider sent no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// EncodeUser serializes u into its session form: {"email":...,"name":...}.
func EncodeUser(u User) (string, error) {
	if strings.TrimSpace(u.Email) == "" {
		return "", ErrInvalidUser
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(b), nil
}

// DecodeUser parses a value produced by EncodeUser. Unknown fields are
// rejected so a changed schema never yields a half-filled user.
func DecodeUser(s string) (User, error) {
	if s == "" {
		return User{}, ErrNoUser
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()

	var u User
	if err := dec.Decode(&u); err != nil {
		return User{}, errors.Join(ErrInvalidUser, err)
	}
	if strings.TrimSpace(u.Email) == "" {
		return User{}, ErrInvalidUser
	}
	return u, nil
}
