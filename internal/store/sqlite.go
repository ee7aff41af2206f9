package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite is a key/value table of JSON encoded states.
type SQLite struct {
	name string
	db   *sql.DB
}

func isLetters(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return s != ""
}

// OpenSQLite opens (creating if needed) the database file at path and the
// table name inside it. name may only contain Latin letters.
func OpenSQLite(ctx context.Context, path, name string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create directory %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to sqlite db: %w", err)
	}
	s, err := NewSQLite(ctx, db, name)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLite(ctx context.Context, db *sql.DB, name string) (*SQLite, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	key		TEXT PRIMARY KEY,
	value	BLOB NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create table %s: %w", name, err)
	}
	return &SQLite{name: name, db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, slug string, state State) error {
	v, err := encode(state)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value)
VALUES (?, ?)
ON CONFLICT(key) DO NOTHING;`,
		KeyPrefix+slug, v)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlugTaken
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, slug string, state State) error {
	v, err := encode(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value)
VALUES (?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		KeyPrefix+slug, v)
	return err
}

func (s *SQLite) Load(ctx context.Context, slug string) (State, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM `+s.name+` WHERE key = ?;`, KeyPrefix+slug,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}
	return decode(v)
}

// Delete removes slug without checking if it existed.
func (s *SQLite) Delete(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM `+s.name+` WHERE key = ?;`, KeyPrefix+slug)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
