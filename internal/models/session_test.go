package models

import (
	"testing"
	"time"
)

func TestSessionActiveAndDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := Session{ID: "s1", StartTime: start}

	if !s.Active() {
		t.Error("session with no end time should be active")
	}
	if got := s.Duration(start.Add(45 * time.Second)); got != 45 {
		t.Errorf("open session Duration = %d, want 45", got)
	}

	end := start.Add(30 * time.Second)
	s.EndTime = &end
	if s.Active() {
		t.Error("session with an end time should not be active")
	}
	// A completed session's duration is frozen regardless of now.
	if got := s.Duration(start.Add(time.Hour)); got != 30 {
		t.Errorf("completed session Duration = %d, want 30", got)
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"username wins", User{Username: "alice", Email: "a@example.com"}, "alice"},
		{"email local part", User{Email: "bob@example.com"}, "bob"},
		{"nothing usable", User{}, "Anonymous"},
		{"bare at-sign email", User{Email: "@example.com"}, "Anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
