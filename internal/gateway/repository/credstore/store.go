// Package credstore persists saved platform credentials. Two backends:
// a JSON file (default) and postgres when a DSN is configured. A save
// replaces the whole set; there is no partial merge.
package credstore

import (
	"database/sql"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byKey    map[string]string

	schemaOnce sync.Once
	schemaErr  error
}

func New(path string) *Store {
	return &Store{
		path:  path,
		byKey: make(map[string]string),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewFromEnv prefers postgres when CREDENTIAL_STORE_PG_DSN is set and
// reachable, falling back to the file backend.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("CREDENTIAL_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

// Load returns the saved credential set. A missing or unreadable
// backend yields an empty map, never an error the caller must handle
// beyond degraded connectivity status.
func (s *Store) Load() (map[string]string, error) {
	if s == nil {
		return map[string]string{}, nil
	}
	if s.db != nil {
		return s.loadDB()
	}
	return s.loadFile(), nil
}

// Replace swaps the stored set for exactly creds. Keys absent from
// creds are dropped even if previously saved.
func (s *Store) Replace(creds map[string]string) error {
	if s == nil {
		return nil
	}
	normalized := normalize(creds)
	if s.db != nil {
		return s.replaceDB(normalized)
	}
	return s.replaceFile(normalized)
}

func normalize(creds map[string]string) map[string]string {
	out := make(map[string]string, len(creds))
	for k, v := range creds {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
