package session

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithCleanupInterval sets how often expired sessions are purged by the
// background janitor. Zero or negative disables the janitor; expired
// sessions are then only dropped when they are looked up.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		m.cleanupInterval = d
	}
}

// WithMaxSessions caps the number of stored sessions. When the cap is
// reached the least recently used session is evicted.
// Default: 0 (unlimited).
func WithMaxSessions(n int) MemoryOption {
	return func(m *MemoryStore) {
		m.maxSessions = n
	}
}

// MemoryStore is a process-local Store.
//
// Sessions are kept as private copies: Create, Get and Update clone the
// session crossing the boundary, so two requests holding the same session
// never race on its fields. A doubly-linked list tracks recency for LRU
// eviction and a token index resolves cookie tokens to session IDs.
type MemoryStore struct {
	items           map[string]*list.Element // session ID -> element
	tokens          map[string]string        // cookie token -> session ID
	recency         *list.List
	done            chan struct{}
	cleanupInterval time.Duration
	maxSessions     int
	mu              sync.Mutex
	closed          bool
}

// NewMemoryStore creates an in-memory session store.
//
//	store := session.NewMemoryStore(session.WithMaxSessions(10000))
//	defer store.Close()
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		items:           make(map[string]*list.Element),
		tokens:          make(map[string]string),
		recency:         list.New(),
		done:            make(chan struct{}),
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Create persists a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s == nil || s.ID == "" || s.Token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.items[s.ID]; ok {
		return ErrExists
	}

	if m.maxSessions > 0 && len(m.items) >= m.maxSessions {
		if oldest := m.recency.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	c := s.Clone()
	c.ClearDirty()
	c.ClearNew()
	m.items[c.ID] = m.recency.PushFront(c)
	m.tokens[c.Token] = c.ID

	return nil
}

// Get retrieves a session by its cookie token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	id, ok := m.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	elem, ok := m.items[id]
	if !ok {
		delete(m.tokens, token)
		return nil, ErrNotFound
	}

	s := elem.Value.(*Session)
	if s.IsExpired() {
		m.remove(elem)
		return nil, ErrExpired
	}

	m.recency.MoveToFront(elem)

	return s.Clone(), nil
}

// Update replaces the stored copy of a session. A changed token
// invalidates the previous one.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	elem, ok := m.items[s.ID]
	if !ok {
		return ErrNotFound
	}

	prev := elem.Value.(*Session)
	if prev.Token != s.Token {
		delete(m.tokens, prev.Token)
	}

	c := s.Clone()
	c.ClearDirty()
	c.ClearNew()
	elem.Value = c
	m.tokens[c.Token] = c.ID
	m.recency.MoveToFront(elem)

	return nil
}

// Delete removes a session by its ID. Deleting an unknown ID is not an error.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[id]; ok {
		m.remove(elem)
	}

	return nil
}

// Len returns the number of stored sessions, expired ones included
// until the janitor or a lookup drops them.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Healthcheck reports whether the store accepts operations.
func (m *MemoryStore) Healthcheck(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close stops the janitor and rejects further operations.
// Close is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	m.items = make(map[string]*list.Element)
	m.tokens = make(map[string]string)
	m.recency.Init()

	return nil
}

func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for elem := m.recency.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*Session).IsExpired() {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove drops a session and its token. Caller must hold the mutex.
func (m *MemoryStore) remove(elem *list.Element) {
	s := elem.Value.(*Session)
	m.recency.Remove(elem)
	delete(m.items, s.ID)
	if m.tokens[s.Token] == s.ID {
		delete(m.tokens, s.Token)
	}
}

var _ Store = (*MemoryStore)(nil)
