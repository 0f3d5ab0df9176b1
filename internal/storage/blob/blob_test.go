package blob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"caulong/internal/core"
	"caulong/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func testSession() *core.Session {
	return &core.Session{
		Date:     time.Date(2025, 6, 14, 19, 0, 0, 0, time.Local),
		Location: "Sân Cầu Giấy",
		Players:  []core.Player{{ID: "a", Name: "An"}},
		Expenses: []core.Expense{{Type: core.CourtFee, Amount: 300000}},
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sess := testSession()
	if err := s.AddSession(ctx, sess); err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("AddSession should assign a session id")
	}
	if sess.Expenses[0].ID == "" {
		t.Fatal("AddSession should assign expense ids")
	}

	got, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Location != "Sân Cầu Giấy" || len(got.Expenses) != 1 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.Date.Equal(sess.Date) {
		t.Errorf("date = %v, want %v", got.Date, sess.Date)
	}

	// Wholesale replace.
	got.Location = "Sân Mỹ Đình"
	got.Expenses = append(got.Expenses, core.Expense{Type: core.Drink, Amount: 50000})
	if err := s.UpdateSession(ctx, *got); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	updated, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession after update: %v", err)
	}
	if updated.Location != "Sân Mỹ Đình" || len(updated.Expenses) != 2 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Expenses[1].ID == "" {
		t.Error("UpdateSession should assign ids to new expenses")
	}

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, sess.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestListSessionsEmpty(t *testing.T) {
	s := newTestStore(t)
	sessions, err := s.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("fresh store should be empty, got %v", sessions)
	}
}

func TestUpdateMissingSession(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateSession(context.Background(), core.Session{ID: "nope", Date: time.Now(), Location: "x"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingSession(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteSession(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestPlayerLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p1, err := s.AddPlayer(ctx, "An")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	p2, err := s.AddPlayer(ctx, "Bình")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if p1.ID == "" || p1.ID == p2.ID {
		t.Errorf("player ids should be unique and non-empty: %q, %q", p1.ID, p2.ID)
	}

	players, err := s.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}

	if err := s.DeletePlayer(ctx, p1.ID); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	players, _ = s.ListPlayers(ctx)
	if len(players) != 1 || players[0].ID != p2.ID {
		t.Errorf("after delete: %v", players)
	}

	if err := s.DeletePlayer(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing player: got %v, want ErrNotFound", err)
	}
}

func TestAddPlayerRejectsBlankName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddPlayer(context.Background(), "   "); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
}

// Deleting a roster player must not touch the embedded copies inside
// existing sessions.
func TestDeletePlayerKeepsSessionSnapshots(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.AddPlayer(ctx, "An")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	sess := testSession()
	sess.Players = []core.Player{*p}
	if err := s.AddSession(ctx, sess); err != nil {
		t.Fatalf("AddSession: %v", err)
	}

	if err := s.DeletePlayer(ctx, p.ID); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}

	got, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if len(got.Players) != 1 || got.Players[0].Name != "An" {
		t.Errorf("session snapshot lost after roster delete: %+v", got.Players)
	}
}

func TestBlobFilesUseFixedKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.AddPlayer(ctx, "An"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := s.AddSession(ctx, testSession()); err != nil {
		t.Fatalf("AddSession: %v", err)
	}

	for _, name := range []string{"badminton_sessions.json", "badminton_players.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected blob file %s: %v", name, err)
		}
	}
}

func TestCorruptBlobSurfacesError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "badminton_sessions.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}
	if _, err := s.ListSessions(ctx); err == nil {
		t.Error("corrupt blob should surface a decode error")
	}
}
