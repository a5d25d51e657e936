package cookie

import (
	"encoding/json"
	"errors"
	"net/http"
)

const flashPrefix = "flash_"

// SetFlash stores a JSON-encoded, encrypted value that survives exactly
// one redirect.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	if m.aead == nil {
		return m.secretErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return m.SetEncrypted(w, flashPrefix+key, string(data), 0)
}

// Flash reads a flash value into dest and deletes it.
// Returns ErrNotFound if there is none. An undecryptable flash is
// deleted as well so it cannot stick around.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	if m.aead == nil {
		return m.secretErr
	}

	name := flashPrefix + key
	raw, err := m.GetEncrypted(r, name)
	if errors.Is(err, ErrNotFound) {
		return err
	}
	m.Delete(w, name)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(raw), dest)
}
