package delegate

import (
	"context"
	"time"
)

// Session holds the transcript of a single delegation run: one Turn per
// executed agent, in spawn order. The coordinating run appends turns; agents
// and executors treat the session as a read-only handle.
type Session struct {
	ID        string
	Turns     []Turn
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Turn records one agent execution within a session.
type Turn struct {
	Agent  string
	Prompt string
	Output string
	Depth  int
	At     time.Time
}

// NewSession creates a new empty session.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        GenerateID(PrefixSession),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a turn and refreshes the update timestamp.
func (s *Session) Append(turn Turn) {
	s.Turns = append(s.Turns, turn)
	s.UpdatedAt = time.Now()
}

// Clone returns a copy of the session under a fresh ID.
func (s *Session) Clone() *Session {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	now := time.Now()
	return &Session{
		ID:        GenerateID(PrefixSession),
		Turns:     turns,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SessionStore defines the interface for session persistence backends.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
