package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps annual reports in a local SQLite file, the server-side
// counterpart of the browser's local storage in the original front-end.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS annual_reports (
		year INTEGER PRIMARY KEY,
		ts INTEGER NOT NULL,
		payload BLOB NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(year int) (*Entry, error) {
	var ts int64
	var payload []byte
	err := s.db.QueryRow(`SELECT ts, payload FROM annual_reports WHERE year = ?`, year).Scan(&ts, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	return &Entry{Timestamp: time.UnixMilli(ts), Payload: payload}, nil
}

func (s *SQLiteStore) Put(year int, e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO annual_reports (year, ts, payload) VALUES (?, ?, ?)
		 ON CONFLICT(year) DO UPDATE SET ts = excluded.ts, payload = excluded.payload`,
		year, e.Timestamp.UnixMilli(), e.Payload,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrFull || sqliteErr.Code == sqlite3.ErrIoErr) {
			return ErrStoreFull
		}
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(year int) error {
	_, err := s.db.Exec(`DELETE FROM annual_reports WHERE year = ?`, year)
	return err
}

func (s *SQLiteStore) DeleteAll() error {
	_, err := s.db.Exec(`DELETE FROM annual_reports`)
	return err
}

func (s *SQLiteStore) Years() ([]int, error) {
	rows, err := s.db.Query(`SELECT year FROM annual_reports ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
