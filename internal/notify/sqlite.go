package notify

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Preference keys stored alongside the notification list. They mirror
// what the browser client keeps in local storage: the session token,
// the cached identity and the dark-mode preference.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyDarkMode = "dark_mode"

	keyLastVisit = "last_visit_ms"
)

// SQLiteStore persists the client state in a local single-file SQLite
// database. One file per client identity; WAL mode keeps concurrent
// reads cheap.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLiteStore opens (or creates) the state database at path and
// runs any pending schema migrations.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// migrations is the ordered schema history. migrations[i] brings the
// database from user_version i to i+1.
var migrations = []string{
	`CREATE TABLE notifications (
	position  INTEGER NOT NULL,
	notice_id INTEGER NOT NULL PRIMARY KEY,
	title     TEXT NOT NULL,
	date      TEXT NOT NULL DEFAULT '',
	category  TEXT NOT NULL DEFAULT '',
	urgent    INTEGER NOT NULL DEFAULT 0,
	is_read   INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`,
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.Get(&version, "PRAGMA user_version"); err != nil {
		return err
	}
	for ; version < len(migrations); version++ {
		if _, err := s.db.Exec(migrations[version]); err != nil {
			return fmt.Errorf("migration %d: %w", version+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
			return err
		}
	}
	return nil
}

// LoadNotifications returns the persisted list newest first.
func (s *SQLiteStore) LoadNotifications(ctx context.Context) ([]Entry, error) {
	var list []Entry
	err := s.db.SelectContext(ctx, &list,
		"SELECT notice_id, title, date, category, urgent, is_read FROM notifications ORDER BY position ASC")
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SaveNotifications replaces the persisted list. The list order is
// significant (newest first), so positions are rewritten wholesale
// inside one transaction.
func (s *SQLiteStore) SaveNotifications(ctx context.Context, list []Entry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return err
	}
	for i, en := range list {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO notifications (position, notice_id, title, date, category, urgent, is_read) VALUES (?,?,?,?,?,?,?)",
			i, en.NoticeID, en.Title, en.Date, en.Category, en.Urgent, en.IsRead); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ClearNotifications erases the persisted list.
func (s *SQLiteStore) ClearNotifications(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notifications")
	return err
}

// LastVisit returns the stored watermark, or the zero time when the
// client has never completed a fetch cycle.
func (s *SQLiteStore) LastVisit(ctx context.Context) (time.Time, error) {
	v, err := s.Get(ctx, keyLastVisit)
	if err != nil {
		return time.Time{}, err
	}
	if v == "" {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt watermark %q: %w", v, err)
	}
	return time.UnixMilli(ms), nil
}

// SetLastVisit advances the watermark.
func (s *SQLiteStore) SetLastVisit(ctx context.Context, t time.Time) error {
	return s.Set(ctx, keyLastVisit, strconv.FormatInt(t.UnixMilli(), 10))
}

// Get reads a preference key; missing keys yield the empty string.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.GetContext(ctx, &v, "SELECT value FROM state WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

// Set writes a preference key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// Delete removes a preference key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM state WHERE key = ?", key)
	return err
}
