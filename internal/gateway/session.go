package gateway

import "sync"

// Session holds the upstream session token. It starts empty, is replaced by
// every successful login, and is never cleared for the life of the process.
//
// The mutex only makes individual reads and writes safe. Logins are not
// serialized against each other or against in-flight calls: the last login
// response to arrive wins, and a call that read the token just before a
// replacement runs with the old one.
type Session struct {
	mu    sync.RWMutex
	token string
}

// get returns the current token, or "" before the first successful login
func (s *Session) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// set overwrites the token
func (s *Session) set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Status is the diagnostic view of a session. It never carries the full token.
type Status struct {
	Authenticated bool    `json:"authenticated"`
	SessionID     *string `json:"session_id"`
	Status        string  `json:"status"`
}

const tokenPreviewLen = 8

// Status reports the session state without contacting the upstream
func (s *Session) Status() Status {
	token := s.get()
	if token == "" {
		return Status{
			Authenticated: false,
			Status:        "Not authenticated - please login first",
		}
	}

	preview := token
	if len(preview) > tokenPreviewLen {
		preview = preview[:tokenPreviewLen]
	}
	preview += "..."
	return Status{
		Authenticated: true,
		SessionID:     &preview,
		Status:        "Ready for API calls",
	}
}
