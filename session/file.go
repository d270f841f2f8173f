package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	delegate "github.com/armatrix/delegate-go"
)

// FileStore persists sessions as individual JSON files in a directory.
// Each session is stored as {id}.json.
type FileStore struct {
	dir string
}

var _ delegate.SessionStore = (*FileStore)(nil)

// NewFileStore creates a FileStore that saves sessions to the given
// directory. The directory is created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// sessionJSON is the on-disk representation of a session.
type sessionJSON struct {
	ID        string     `json:"id"`
	Turns     []turnJSON `json:"turns"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type turnJSON struct {
	Agent  string    `json:"agent"`
	Prompt string    `json:"prompt"`
	Output string    `json:"output"`
	Depth  int       `json:"depth"`
	At     time.Time `json:"at"`
}

// Save writes a session to disk as JSON.
func (f *FileStore) Save(_ context.Context, s *delegate.Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}

	data := sessionJSON{
		ID:        s.ID,
		Turns:     make([]turnJSON, len(s.Turns)),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	for i, t := range s.Turns {
		data.Turns[i] = turnJSON{
			Agent:  t.Agent,
			Prompt: t.Prompt,
			Output: t.Output,
			Depth:  t.Depth,
			At:     t.At,
		}
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(f.path(s.ID), b, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Load reads a session from disk by ID.
func (f *FileStore) Load(_ context.Context, id string) (*delegate.Session, error) {
	b, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session not found: %s", id)
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var data sessionJSON
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	s := &delegate.Session{
		ID:        data.ID,
		Turns:     make([]delegate.Turn, len(data.Turns)),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	for i, t := range data.Turns {
		s.Turns[i] = delegate.Turn{
			Agent:  t.Agent,
			Prompt: t.Prompt,
			Output: t.Output,
			Depth:  t.Depth,
			At:     t.At,
		}
	}
	return s, nil
}

// Delete removes a session file from disk.
func (f *FileStore) Delete(_ context.Context, id string) error {
	if err := os.Remove(f.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("session not found: %s", id)
		}
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// List returns all sessions stored on disk.
func (f *FileStore) List(ctx context.Context) ([]*delegate.Session, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read session dir: %w", err)
	}

	var sessions []*delegate.Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		s, err := f.Load(ctx, id)
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}
