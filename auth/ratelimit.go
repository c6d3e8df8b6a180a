package auth

import (
	"sync"
	"time"
)

// AttemptLimiterConfig configures the failed-attempt limiter.
type AttemptLimiterConfig struct {
	// MaxAttempts is the failed-attempt ceiling inside one window.
	// Default: 5
	MaxAttempts int

	// Window is the fixed window length. The window never resets early;
	// a key stays blocked until its window rolls over.
	// Default: 1 minute
	Window time.Duration
}

// AttemptLimiter counts failed authentication attempts per identity key
// inside a fixed window. Once the ceiling is reached, every further attempt
// for that key is rejected regardless of credential correctness until the
// window rolls over.
type AttemptLimiter struct {
	config AttemptLimiterConfig

	mu      sync.Mutex
	windows map[string]*attemptWindow
}

type attemptWindow struct {
	start    time.Time
	failures int
}

// NewAttemptLimiter creates an attempt limiter.
func NewAttemptLimiter(config AttemptLimiterConfig) *AttemptLimiter {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	return &AttemptLimiter{
		config:  config,
		windows: make(map[string]*attemptWindow),
	}
}

// Allow reports whether an attempt for the key may proceed.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.rollLocked(key)
	if w == nil {
		return true
	}
	return w.failures < l.config.MaxAttempts
}

// Fail records a failed or malformed attempt for the key.
func (l *AttemptLimiter) Fail(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.rollLocked(key)
	if w == nil {
		w = &attemptWindow{start: time.Now()}
		l.windows[key] = w
	}
	w.failures++
}

// Reset forgets all attempts for the key.
func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	delete(l.windows, key)
	l.mu.Unlock()
}

// rollLocked returns the live window for the key, discarding it first when
// it has rolled over. Returns nil when no live window exists.
func (l *AttemptLimiter) rollLocked(key string) *attemptWindow {
	w, ok := l.windows[key]
	if !ok {
		return nil
	}
	if time.Since(w.start) >= l.config.Window {
		delete(l.windows, key)
		return nil
	}
	return w
}
