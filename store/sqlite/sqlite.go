/*
Package sqlite provides a SQLite-backed implementation of booking.Store.

PURPOSE:
  Durable storage behind the same Store contract as store/memory, so the
  rest of the system does not care whether state survives a restart. The
  reference deployment is volatile; pointing the server at a file database
  upgrades it transparently.

KEY TABLES:
  users:        Seed users (admin + family members)
  reservations: Reservation records with status lifecycle

INDEXES:
  idx_reservations_start:  Year-scoped queries (hot path)
  idx_reservations_status: Pending/history filtering

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.
  The booking Service additionally serializes mutations, so the conflict
  gate never races the insert.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/casona.db")  // or ":memory:"
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - booking/store.go: Interface definition
  - store/memory: Volatile implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/casona/booking-engine/booking"
)

// Store implements booking.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		email TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL DEFAULT '',
		is_admin INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		guests INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reservations_start
		ON reservations(start_date);
	CREATE INDEX IF NOT EXISTS idx_reservations_status
		ON reservations(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u booking.User) (booking.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO users (username, email, password, is_admin) VALUES (?, ?, ?, ?)`,
			u.Username, u.Email, u.Password, boolToInt(u.IsAdmin))
		if err != nil {
			return booking.User{}, fmt.Errorf("failed to insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return booking.User{}, err
		}
		u.ID = booking.UserID(id)
		return u, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, username, email, password, is_admin) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.Password, boolToInt(u.IsAdmin))
	if err != nil {
		return booking.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id booking.UserID) (booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, is_admin FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, is_admin FROM users WHERE username = ? COLLATE NOCASE`, username)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context) ([]booking.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, email, password, is_admin FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []booking.User
	for rows.Next() {
		var u booking.User
		var isAdmin int
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &isAdmin); err != nil {
			return nil, err
		}
		u.IsAdmin = isAdmin != 0
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row *sql.Row) (booking.User, error) {
	var u booking.User
	var isAdmin int
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.User{}, booking.ErrUserNotFound
	}
	if err != nil {
		return booking.User{}, err
	}
	u.IsAdmin = isAdmin != 0
	return u, nil
}

// =============================================================================
// RESERVATIONS
// =============================================================================

func (s *Store) SaveReservation(ctx context.Context, r booking.Reservation) (booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO reservations (user_id, start_date, end_date, guests, notes, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.UserID, r.Start.String(), r.End.String(), r.Guests, r.Notes, string(r.Status),
			r.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return booking.Reservation{}, fmt.Errorf("failed to insert reservation: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return booking.Reservation{}, err
		}
		r.ID = booking.ReservationID(id)
		return r, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reservations (id, user_id, start_date, end_date, guests, notes, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Start.String(), r.End.String(), r.Guests, r.Notes, string(r.Status),
		r.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("failed to save reservation: %w", err)
	}
	return r, nil
}

func (s *Store) GetReservation(ctx context.Context, id booking.ReservationID) (booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getReservation(ctx, id)
}

func (s *Store) getReservation(ctx context.Context, id booking.ReservationID) (booking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, start_date, end_date, guests, notes, status, created_at
		 FROM reservations WHERE id = ?`, id)
	if err != nil {
		return booking.Reservation{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return booking.Reservation{}, err
		}
		return booking.Reservation{}, booking.ErrReservationNotFound
	}
	return scanReservation(rows)
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id booking.ReservationID, status booking.Status) (booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("failed to update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return booking.Reservation{}, err
	}
	if n == 0 {
		return booking.Reservation{}, booking.ErrReservationNotFound
	}
	return s.getReservation(ctx, id)
}

func (s *Store) ReservationsByYear(ctx context.Context, year int) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Start dates are stored as YYYY-MM-DD, so a lexicographic range scan
	// selects the year.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, start_date, end_date, guests, notes, status, created_at
		 FROM reservations
		 WHERE start_date >= ? AND start_date <= ?
		 ORDER BY start_date`,
		fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ReservationsOverlapping(ctx context.Context, start, end booking.Date) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Two inclusive ranges overlap iff each starts no later than the other
	// ends; lexicographic comparison on YYYY-MM-DD matches date order.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, start_date, end_date, guests, notes, status, created_at
		 FROM reservations
		 WHERE start_date <= ? AND end_date >= ?
		 ORDER BY start_date`,
		end.String(), start.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanReservation(rows *sql.Rows) (booking.Reservation, error) {
	var r booking.Reservation
	var start, end, status, createdAt string
	if err := rows.Scan(&r.ID, &r.UserID, &start, &end, &r.Guests, &r.Notes, &status, &createdAt); err != nil {
		return booking.Reservation{}, err
	}

	var err error
	if r.Start, err = booking.ParseISODate(start); err != nil {
		return booking.Reservation{}, err
	}
	if r.End, err = booking.ParseISODate(end); err != nil {
		return booking.Reservation{}, err
	}
	r.Status = booking.Status(status)
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return booking.Reservation{}, err
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
