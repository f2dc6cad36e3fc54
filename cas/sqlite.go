package cas

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	hash INTEGER PRIMARY KEY,
	data BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS refs (
	name   INTEGER PRIMARY KEY,
	target INTEGER NOT NULL
);`

// SQLiteCAS persists entries in a SQLite database so parsed programs
// survive between runs.
type SQLiteCAS struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteCAS, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store %s: %w", path, err)
	}
	// All access goes through one connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLiteCAS{db: db}, nil
}

func (s *SQLiteCAS) Close() error {
	return s.db.Close()
}

func (s *SQLiteCAS) getValue(h Hash) (bool, []byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE hash = ?`, int64(h)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("reading blob %s: %w", h, err)
	}
	return true, data, nil
}

func (s *SQLiteCAS) putValue(h Hash, data []byte) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO blobs (hash, data) VALUES (?, ?)`, int64(h), data)
	if err != nil {
		return fmt.Errorf("writing blob %s: %w", h, err)
	}
	return nil
}

func (s *SQLiteCAS) Put(item Hashable) (Hash, error) {
	return put(s, item)
}

func (s *SQLiteCAS) Has(hash Hash) bool {
	ok, _, err := s.getValue(hash)
	return ok && err == nil
}

func (s *SQLiteCAS) SetRef(name Hash, target Hash) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO refs (name, target) VALUES (?, ?)`, int64(name), int64(target))
	if err != nil {
		return fmt.Errorf("writing ref %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteCAS) GetRef(name Hash) (Hash, bool, error) {
	var target int64
	err := s.db.QueryRow(`SELECT target FROM refs WHERE name = ?`, int64(name)).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading ref %s: %w", name, err)
	}
	return Hash(target), true, nil
}
