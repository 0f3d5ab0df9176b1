// Package storage defines the session store contract.
package storage

import (
	"context"
	"errors"

	"caulong/internal/core"
)

// ErrNotFound is returned when a session or player id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the narrow persistence interface the rest of the app talks to.
// Sessions are replaced wholesale on update; there are no partial writes.
// Implementations provide no cross-process atomicity: the app is built for a
// single user on a single device and the last writer wins.
type Store interface {
	ListSessions(ctx context.Context) ([]core.Session, error)
	GetSession(ctx context.Context, id string) (*core.Session, error)
	// AddSession persists a new session, assigning ids to the session and
	// any expenses that lack one.
	AddSession(ctx context.Context, s *core.Session) error
	UpdateSession(ctx context.Context, s core.Session) error
	DeleteSession(ctx context.Context, id string) error

	ListPlayers(ctx context.Context) ([]core.Player, error)
	// AddPlayer creates a player from a display name and returns it with
	// its assigned id.
	AddPlayer(ctx context.Context, name string) (*core.Player, error)
	// DeletePlayer removes a player from the roster. Past sessions keep
	// their embedded copies; deletion never cascades into history.
	DeletePlayer(ctx context.Context, id string) error

	Close() error
}
