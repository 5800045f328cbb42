package client

import "sync"

// TokenStore holds the session's bearer token. Watch mirrors the browser
// storage event: watchers fire whenever the token changes, with the new
// value ("" on logout), so other parts of the process can react to a login
// or logout they didn't perform themselves.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
	Watch(fn func(token string)) (cancel func())
}

// MemoryTokenStore is the in-process TokenStore used for the life of a session.
type MemoryTokenStore struct {
	mu       sync.Mutex
	token    string
	watchers map[int]func(string)
	nextID   int
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{watchers: make(map[int]func(string))}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.set(token)
}

func (s *MemoryTokenStore) Clear() {
	s.set("")
}

func (s *MemoryTokenStore) set(token string) {
	s.mu.Lock()
	if s.token == token {
		s.mu.Unlock()
		return
	}
	s.token = token
	fns := make([]func(string), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// notify outside the lock; a watcher may read the store back
	for _, fn := range fns {
		fn(token)
	}
}

func (s *MemoryTokenStore) Watch(fn func(token string)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}
