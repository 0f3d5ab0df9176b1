// Package sqlite implements storage.Store on SQLite. Unlike the blob store
// it normalizes sessions into child tables and wraps every mutation in a
// transaction, which is what makes edits safe against a crash mid-write.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"caulong/internal/core"
	"caulong/internal/storage"
)

var _ storage.Store = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) ListSessions(ctx context.Context) ([]core.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM sessions ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	sessions := make([]core.Session, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

func (r *Repository) GetSession(ctx context.Context, id string) (*core.Session, error) {
	s := &core.Session{}
	var date string
	var endTime sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, date, end_time, duration, court_fee_per_hour, location, notes FROM sessions WHERE id = ?",
		id,
	).Scan(&s.ID, &date, &endTime, &s.Duration, &s.CourtFeePerHour, &s.Location, &s.Notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.Date, err = time.Parse(time.RFC3339, date); err != nil {
		return nil, fmt.Errorf("parse session date: %w", err)
	}
	if endTime.Valid {
		t, err := time.Parse(time.RFC3339, endTime.String)
		if err != nil {
			return nil, fmt.Errorf("parse session end time: %w", err)
		}
		s.EndTime = &t
	}

	if s.Players, err = r.sessionPlayers(ctx, id); err != nil {
		return nil, err
	}
	if s.Expenses, err = r.sessionExpenses(ctx, id); err != nil {
		return nil, err
	}
	if s.PaymentStatus, err = r.paymentStatus(ctx, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) AddSession(ctx context.Context, s *core.Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return r.writeSession(ctx, s, false)
}

func (r *Repository) UpdateSession(ctx context.Context, s core.Session) error {
	return r.writeSession(ctx, &s, true)
}

// writeSession inserts or replaces a whole session. Updates delete the old
// row first so child tables are rebuilt from scratch: sessions are replaced
// wholesale, never patched.
func (r *Repository) writeSession(ctx context.Context, s *core.Session, replace bool) error {
	for i := range s.Expenses {
		if s.Expenses[i].ID == "" {
			s.Expenses[i].ID = uuid.New().String()
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", s.ID)
		if err != nil {
			return fmt.Errorf("delete old session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("session %s: %w", s.ID, storage.ErrNotFound)
		}
	}

	var endTime any
	if s.EndTime != nil {
		endTime = s.EndTime.Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, date, end_time, duration, court_fee_per_hour, location, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.Date.Format(time.RFC3339), endTime, s.Duration, s.CourtFeePerHour, s.Location, s.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, p := range s.Players {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO session_players (session_id, player_id, name, position) VALUES (?, ?, ?, ?)",
			s.ID, p.ID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("insert session player: %w", err)
		}
	}

	for i, e := range s.Expenses {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expenses (id, session_id, type, amount, description, position) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, s.ID, string(e.Type), e.Amount, e.Description, i,
		)
		if err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		for j, pid := range e.DivideAmong {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_divisions (expense_id, player_id, position) VALUES (?, ?, ?)",
				e.ID, pid, j,
			)
			if err != nil {
				return fmt.Errorf("insert expense division: %w", err)
			}
		}
	}

	for pid, paid := range s.PaymentStatus {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO payment_status (session_id, player_id, paid) VALUES (?, ?, ?)",
			s.ID, pid, boolToInt(paid),
		)
		if err != nil {
			return fmt.Errorf("insert payment status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (r *Repository) ListPlayers(ctx context.Context) ([]core.Player, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM players ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []core.Player
	for rows.Next() {
		var p core.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

func (r *Repository) AddPlayer(ctx context.Context, name string) (*core.Player, error) {
	p := core.Player{ID: uuid.New().String(), Name: name}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	_, err := r.db.ExecContext(ctx, "INSERT INTO players (id, name) VALUES (?, ?)", p.ID, p.Name)
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return &p, nil
}

func (r *Repository) DeletePlayer(ctx context.Context, id string) error {
	// Roster only: session_players snapshots stay untouched.
	res, err := r.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (r *Repository) sessionPlayers(ctx context.Context, sessionID string) ([]core.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT player_id, name FROM session_players WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get session players: %w", err)
	}
	defer rows.Close()

	var players []core.Player
	for rows.Next() {
		var p core.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan session player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *Repository) sessionExpenses(ctx context.Context, sessionID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, type, amount, description FROM expenses WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var typ string
		if err := rows.Scan(&e.ID, &typ, &e.Amount, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Type = core.ExpenseType(typ)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	for i := range expenses {
		divRows, err := r.db.QueryContext(ctx,
			"SELECT player_id FROM expense_divisions WHERE expense_id = ? ORDER BY position",
			expenses[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("get expense divisions: %w", err)
		}
		for divRows.Next() {
			var pid string
			if err := divRows.Scan(&pid); err != nil {
				divRows.Close()
				return nil, fmt.Errorf("scan expense division: %w", err)
			}
			expenses[i].DivideAmong = append(expenses[i].DivideAmong, pid)
		}
		divRows.Close()
		if err := divRows.Err(); err != nil {
			return nil, fmt.Errorf("iterate expense divisions: %w", err)
		}
	}
	return expenses, nil
}

func (r *Repository) paymentStatus(ctx context.Context, sessionID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT player_id, paid FROM payment_status WHERE session_id = ?",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get payment status: %w", err)
	}
	defer rows.Close()

	var status map[string]bool
	for rows.Next() {
		var pid string
		var paid int
		if err := rows.Scan(&pid, &paid); err != nil {
			return nil, fmt.Errorf("scan payment status: %w", err)
		}
		if status == nil {
			status = make(map[string]bool)
		}
		status[pid] = paid != 0
	}
	return status, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
