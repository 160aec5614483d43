package accountclient

import "sync"

// Selection tracks which account is open for editing.
type Selection struct {
	mu sync.Mutex
	id string
}

// Open selects the account with the given id.
func (s *Selection) Open(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = id
}

// Close clears the selection.
func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = ""
}

// ID returns the selected account id, or "" when nothing is open.
func (s *Selection) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.id
}
