package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// SetSigned sets a cookie whose value is readable but tamper-evident.
// Format: base64(value).base64(hmac-sha256(name|value)).
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.signKey == nil {
		return m.secretErr
	}

	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.sign(name, value))

	return m.setChecked(w, name, encoded, maxAge)
}

// GetSigned returns a signed cookie value.
// Returns ErrBadSig if the value was altered or moved to another cookie name.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.signKey == nil {
		return "", m.secretErr
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}

	if !hmac.Equal(sig, m.sign(name, string(value))) {
		return "", ErrBadSig
	}

	return string(value), nil
}

// PopSigned reads a signed cookie and deletes it in the same response,
// whatever the outcome. Suited to one-time values such as an OAuth state.
func (m *Manager) PopSigned(w http.ResponseWriter, r *http.Request, name string) (string, error) {
	value, err := m.GetSigned(r, name)
	if !errors.Is(err, ErrNotFound) {
		m.Delete(w, name)
	}
	return value, err
}

func (m *Manager) sign(name, value string) []byte {
	mac := hmac.New(sha256.New, m.signKey)
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write([]byte(value))
	return mac.Sum(nil)
}
