package cookie

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
)

// SetEncrypted sets a cookie whose value is hidden from the client (AES-256-GCM).
// The cookie name is bound as associated data.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.aead == nil {
		return m.secretErr
	}

	nonce := make([]byte, m.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := m.aead.Seal(nonce, nonce, []byte(value), []byte(name))

	return m.setChecked(w, name, base64.RawURLEncoding.EncodeToString(sealed), maxAge)
}

// GetEncrypted returns a decrypted cookie value.
// Returns ErrDecrypt if the value was altered or cannot be opened.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.aead == nil {
		return "", m.secretErr
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrDecrypt
	}

	ns := m.aead.NonceSize()
	if len(data) < ns {
		return "", ErrDecrypt
	}

	plaintext, err := m.aead.Open(nil, data[:ns], data[ns:], []byte(name))
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}
