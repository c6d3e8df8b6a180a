package session

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSession_IsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{"user and token", Session{UserID: "alice", AuthToken: "tok"}, true},
		{"user only", Session{UserID: "alice"}, false},
		{"token only", Session{AuthToken: "tok"}, false},
		{"neither", Session{}, false},
	}

	for i := range tests {
		tt := &tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sess.IsAuthenticated(); got != tt.want {
				t.Errorf("IsAuthenticated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_Touch(t *testing.T) {
	s := &Session{}
	before := s.LastActivity()

	s.Touch()
	after := s.LastActivity()
	if !after.After(before) {
		t.Errorf("LastActivity did not advance: %v -> %v", before, after)
	}
}

func TestSession_Touch_Concurrent(t *testing.T) {
	s := &Session{}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Touch()
				s.LastActivity()
			}
		}()
	}
	wg.Wait()

	if s.LastActivity().IsZero() {
		t.Error("LastActivity still zero after concurrent touches")
	}
}

func TestSession_Snapshot_NeverCarriesToken(t *testing.T) {
	s := &Session{
		SessionID: "sess-1",
		UserID:    "alice",
		Username:  "alice",
		AuthToken: "raw-secret-token-value",
		AuthType:  "jwt_bearer",
		ClientIP:  "10.0.0.1",
		CreatedAt: time.Now(),
	}

	snap := s.Snapshot()

	if snap["user_id"] != "alice" || snap["session_id"] != "sess-1" {
		t.Errorf("snapshot identity fields wrong: %v", snap)
	}
	if snap["authenticated"] != true {
		t.Error("snapshot authenticated = false, want true")
	}
	for k, v := range snap {
		if str, ok := v.(string); ok && strings.Contains(str, "raw-secret-token-value") {
			t.Errorf("snapshot field %q leaked the raw token", k)
		}
	}
	if _, ok := snap["auth_token"]; ok {
		t.Error("snapshot carries an auth_token field")
	}
}
