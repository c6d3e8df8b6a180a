package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/sessionband/auth"
	"github.com/jonwraymond/sessionband/observe"
)

// Registry is the in-memory session store, keyed by session id. It is shared
// mutable state for the process lifetime and safe for concurrent use.
type Registry struct {
	chain  *auth.Chain
	logger observe.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a registry. A nil chain falls back to the default
// extractor priority order.
func NewRegistry(chain *auth.Chain, logger observe.Logger) *Registry {
	if chain == nil {
		chain = auth.DefaultChain()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Registry{
		chain:    chain,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// CreateFromHeaders resolves or generates a session id from the headers,
// runs the extractor chain, stores the session, and publishes it into the
// returned context as the current session for the request scope.
func (r *Registry) CreateFromHeaders(ctx context.Context, headers auth.Headers, clientIP string) (context.Context, *Session) {
	sessionID := headers.Get("x-session-id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	claim := r.chain.Extract(headers)

	now := time.Now()
	s := &Session{
		SessionID:    sessionID,
		ClientIP:     clientIP,
		UserAgent:    headers.Get("user-agent"),
		CreatedAt:    now,
		lastActivity: now,
		Metadata:     map[string]any{},
	}
	if claim != nil {
		s.UserID = claim.UserID
		s.Username = claim.Username
		s.AuthToken = claim.Token
		s.AuthType = string(claim.AuthType)
		for k, v := range claim.Claims {
			s.Metadata[k] = v
		}
	}

	r.mu.Lock()
	r.sessions[sessionID] = s
	r.mu.Unlock()

	r.logger.Info(ctx, "session created",
		observe.Field{Key: "session", Value: s.Snapshot()})

	return WithSession(ctx, s), s
}

// Get returns the session for the id, or nil.
func (r *Registry) Get(sessionID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID]
}

// CleanupExpired removes sessions whose last activity is older than maxAge
// and returns the number removed.
func (r *Registry) CleanupExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.LastActivity().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if len(expired) > 0 {
		r.logger.Info(context.Background(), "cleaned up expired sessions",
			observe.Field{Key: "count", Value: len(expired)})
	}
	return len(expired)
}

// Clear drops every session. Used on graceful shutdown.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
}

// Len returns the number of stored sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
