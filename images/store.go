package images

import (
	"fmt"
	"io"
	"sync"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const storeSchema = `CREATE TABLE IF NOT EXISTS images (
	url     TEXT PRIMARY KEY,
	data    BLOB NOT NULL,
	fetched INTEGER NOT NULL
)`

// Store keeps fetched image bytes between runs in a SQLite database.
type Store struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenStore opens (creating if necessary) database at path, ":memory:"
// gives a store which lives as long as the process.
func OpenStore(path string) (*Store, error) {
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate}
	if path == ":memory:" {
		flags = append(flags, sqlite.OpenMemory)
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("unable to open image store: %w", err)
	}
	if err := sqlitex.Execute(conn, storeSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare image store: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Get returns stored bytes for url.
func (s *Store) Get(url string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		data  []byte
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT data FROM images WHERE url = ?`,
		&sqlitex.ExecOptions{
			Args: []any{url},
			ResultFunc: func(stmt *sqlite.Stmt) (err error) {
				data, err = io.ReadAll(stmt.ColumnReader(0))
				found = err == nil
				return err
			},
		})
	if err != nil {
		return nil, false, fmt.Errorf("unable to read image store: %w", err)
	}
	return data, found, nil
}

// Put stores bytes for url replacing previous ones.
func (s *Store) Put(url string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := sqlitex.Execute(s.conn, `INSERT OR REPLACE INTO images (url, data, fetched) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{url, data, time.Now().Unix()}})
	if err != nil {
		return fmt.Errorf("unable to write image store: %w", err)
	}
	return nil
}

// Len returns number of stored images.
func (s *Store) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := sqlitex.Execute(s.conn, `SELECT count(*) FROM images`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		}})
	return n, err
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}
