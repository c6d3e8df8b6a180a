package session

import (
	"sync"
	"time"
)

// Session holds identity and connection metadata for one logical client
// session. AuthToken is opaque and never logged in full; Snapshot is the
// log-safe view.
type Session struct {
	SessionID string
	UserID    string
	Username  string
	AuthToken string
	AuthType  string
	ClientIP  string
	UserAgent string
	CreatedAt time.Time

	// Metadata is the free-form claim bag captured at extraction time.
	Metadata map[string]any

	mu           sync.Mutex
	lastActivity time.Time
}

// IsAuthenticated reports whether the session carries a usable identity:
// both a user id and an auth token must be present.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != "" && s.AuthToken != ""
}

// Touch advances the last-activity timestamp. The timestamp is monotonically
// non-decreasing even under concurrent touches.
func (s *Session) Touch() {
	now := time.Now()
	s.mu.Lock()
	if now.After(s.lastActivity) {
		s.lastActivity = now
	}
	s.mu.Unlock()
}

// LastActivity returns the last-activity timestamp.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Snapshot returns a log-safe view of the session. The raw auth token never
// appears in it.
func (s *Session) Snapshot() map[string]any {
	return map[string]any{
		"session_id":    s.SessionID,
		"user_id":       s.UserID,
		"username":      s.Username,
		"auth_type":     s.AuthType,
		"client_ip":     s.ClientIP,
		"authenticated": s.IsAuthenticated(),
		"created_at":    s.CreatedAt.UTC().Format(time.RFC3339),
		"last_activity": s.LastActivity().UTC().Format(time.RFC3339),
	}
}
