// Package credentials keeps admin passwords for the lifetime of the process.
// File and database backends persist only a placeholder, so they consult this
// set when authenticating.
package credentials

import "sync"

type Set struct {
	mu        sync.RWMutex
	passwords map[string]string
}

func NewSet() *Set {
	return &Set{passwords: make(map[string]string)}
}

// Remember stores the plain password for email, replacing any earlier one.
func (s *Set) Remember(email, password string) {
	if email == "" || password == "" {
		return
	}
	s.mu.Lock()
	s.passwords[email] = password
	s.mu.Unlock()
}

func (s *Set) Forget(email string) {
	s.mu.Lock()
	delete(s.passwords, email)
	s.mu.Unlock()
}

func (s *Set) Match(email, password string) bool {
	s.mu.RLock()
	stored, ok := s.passwords[email]
	s.mu.RUnlock()
	return ok && stored == password
}
