// Package blob implements storage.Store as a whole-collection JSON blob
// store: one file per collection under two fixed keys, mirroring the
// AsyncStorage layout the mobile app has always used. Every mutation is a
// read-all / modify / write-all cycle guarded by an in-process mutex; the
// files themselves carry no version stamp, so concurrent processes clobber
// each other (acceptable for the single-user target).
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"caulong/internal/core"
	"caulong/internal/storage"
)

// Fixed collection keys, kept identical to the mobile app's storage keys so
// exported data stays recognizable.
const (
	sessionsKey = "badminton_sessions"
	playersKey  = "badminton_players"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a blob store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) ListSessions(ctx context.Context) ([]core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSessions()
}

func (s *Store) GetSession(ctx context.Context, id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readSessions()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
}

func (s *Store) AddSession(ctx context.Context, sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readSessions()
	if err != nil {
		return err
	}

	assignSessionIDs(sess)
	sessions = append(sessions, *sess)
	return s.writeSessions(sessions)
}

func (s *Store) UpdateSession(ctx context.Context, sess core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readSessions()
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == sess.ID {
			assignSessionIDs(&sess)
			sessions[i] = sess
			return s.writeSessions(sessions)
		}
	}
	return fmt.Errorf("session %s: %w", sess.ID, storage.ErrNotFound)
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readSessions()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	found := false
	for _, sess := range sessions {
		if sess.ID == id {
			found = true
			continue
		}
		kept = append(kept, sess)
	}
	if !found {
		return fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	return s.writeSessions(kept)
}

func (s *Store) ListPlayers(ctx context.Context) ([]core.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPlayers()
}

func (s *Store) AddPlayer(ctx context.Context, name string) (*core.Player, error) {
	p := core.Player{ID: uuid.New().String(), Name: name}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.readPlayers()
	if err != nil {
		return nil, err
	}
	players = append(players, p)
	if err := s.writePlayers(players); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.readPlayers()
	if err != nil {
		return err
	}
	kept := players[:0]
	found := false
	for _, p := range players {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}
	return s.writePlayers(kept)
}

func assignSessionIDs(sess *core.Session) {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	for i := range sess.Expenses {
		if sess.Expenses[i].ID == "" {
			sess.Expenses[i].ID = uuid.New().String()
		}
	}
}

func (s *Store) readSessions() ([]core.Session, error) {
	var sessions []core.Session
	if err := s.readKey(sessionsKey, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Store) writeSessions(sessions []core.Session) error {
	return s.writeKey(sessionsKey, sessions)
}

func (s *Store) readPlayers() ([]core.Player, error) {
	var players []core.Player
	if err := s.readKey(playersKey, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Store) writePlayers(players []core.Player) error {
	return s.writeKey(playersKey, players)
}

func (s *Store) readKey(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil // missing blob means empty collection
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// writeKey serializes the whole collection and replaces the blob via a
// temp-file rename so a crash mid-write never leaves a torn file.
func (s *Store) writeKey(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
