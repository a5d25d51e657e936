package session

import (
	"testing"
	"time"
)

func TestSession_New(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)
	sess := New("test-id", "test-token", expiresAt)

	if sess.ID != "test-id" {
		t.Errorf("ID = %q, want %q", sess.ID, "test-id")
	}
	if sess.Token != "test-token" {
		t.Errorf("Token = %q, want %q", sess.Token, "test-token")
	}
	if !sess.IsNew() {
		t.Error("IsNew() = false, want true")
	}
	if !sess.IsDirty() {
		t.Error("IsDirty() = false, want true")
	}
	if sess.Values == nil {
		t.Error("Values is nil")
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))

	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for new session, want false")
	}

	sess.SetUserID("a@b.com")
	if !sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after SetUserID, want true")
	}

	empty := ""
	sess.UserID = &empty
	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for empty UserID, want false")
	}

	var nilSess *Session
	if nilSess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for nil session, want false")
	}
}

func TestSession_Values(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.ClearDirty()

	sess.SetValue("key", "value")
	if !sess.IsDirty() {
		t.Error("SetValue should mark session as dirty")
	}

	val, ok := sess.Value("key")
	if !ok || val != "value" {
		t.Errorf("Value = %q, %v; want %q, true", val, ok, "value")
	}

	if _, ok := sess.Value("nonexistent"); ok {
		t.Error("Value returned ok=true for nonexistent key")
	}

	sess.ClearDirty()
	sess.SetValue("key", "value")
	if sess.IsDirty() {
		t.Error("SetValue with an unchanged value should not mark session as dirty")
	}
}

func TestSession_DeleteValue(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetValue("key", "value")
	sess.ClearDirty()

	sess.DeleteValue("missing")
	if sess.IsDirty() {
		t.Error("DeleteValue on a missing key should not mark session as dirty")
	}

	sess.DeleteValue("key")
	if !sess.IsDirty() {
		t.Error("DeleteValue should mark session as dirty")
	}
	if _, ok := sess.Value("key"); ok {
		t.Error("Value returned ok=true after DeleteValue")
	}
}

func TestSession_Flags(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))

	sess.ClearDirty()
	if sess.IsDirty() {
		t.Error("ClearDirty() should clear dirty flag")
	}
	sess.MarkDirty()
	if !sess.IsDirty() {
		t.Error("MarkDirty() should set dirty flag")
	}

	sess.ClearNew()
	if sess.IsNew() {
		t.Error("ClearNew() should clear new flag")
	}
}

func TestSession_IsExpired(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	if sess.IsExpired() {
		t.Error("future expiry should not be expired")
	}

	sess.ExpiresAt = time.Now().Add(-time.Hour)
	if !sess.IsExpired() {
		t.Error("past expiry should be expired")
	}
}

func TestSession_Clone(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetUserID("a@b.com")
	sess.SetValue("user", `{"email":"a@b.com","name":"A"}`)

	c := sess.Clone()
	c.SetValue("user", "changed")
	*c.UserID = "other@b.com"

	if v, _ := sess.Value("user"); v != `{"email":"a@b.com","name":"A"}` {
		t.Errorf("original value mutated through clone: %q", v)
	}
	if *sess.UserID != "a@b.com" {
		t.Errorf("original UserID mutated through clone: %q", *sess.UserID)
	}
	if !c.IsNew() || !c.IsDirty() {
		t.Error("Clone should keep bookkeeping flags")
	}

	var nilSess *Session
	if nilSess.Clone() != nil {
		t.Error("Clone of nil session should be nil")
	}
}
