// Package campaignstore persists launched campaigns. Backed by a JSON
// file by default and postgres when a DSN is configured; postgres reads
// go through a small LRU cache.
package campaignstore

import (
	"database/sql"
	"os"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	StatusActive = "active"
	StatusPaused = "paused"
)

// AssetRef points at a stored asset blob; the payload itself lives in
// the asset store.
type AssetRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Campaign is one launched campaign.
type Campaign struct {
	ID          string     `json:"id"`
	ProductName string     `json:"product_name"`
	ProductVibe string     `json:"product_vibe"`
	Platforms   []string   `json:"platforms"`
	Assets      []AssetRef `json:"assets"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Campaign

	schemaOnce sync.Once
	schemaErr  error

	cache *lru.Cache[string, Campaign]
}

func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Campaign),
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
	cache, err := lru.New[string, Campaign](256)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// NewFromEnv prefers postgres when CAMPAIGN_STORE_PG_DSN is set and
// reachable, falling back to the file backend.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("CAMPAIGN_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) Put(c Campaign) error {
	if s == nil {
		return nil
	}
	c = normalizeCampaign(c)
	if c.ID == "" {
		return nil
	}
	if s.db != nil {
		err := s.putDB(c)
		if err == nil && s.cache != nil {
			s.cache.Remove(c.ID)
		}
		return err
	}
	return s.putFile(c)
}

func (s *Store) Get(id string) (Campaign, bool) {
	if s == nil {
		return Campaign{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Campaign{}, false
	}
	if s.db != nil {
		if s.cache != nil {
			if cached, ok := s.cache.Get(id); ok {
				return cached, true
			}
		}
		c, ok := s.getDB(id)
		if ok && s.cache != nil {
			s.cache.Add(id, c)
		}
		return c, ok
	}
	return s.getFile(id)
}

// SetStatus updates the campaign status and returns the new record.
func (s *Store) SetStatus(id, status string) (Campaign, bool) {
	if s == nil {
		return Campaign{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Campaign{}, false
	}
	if s.db != nil {
		c, ok := s.setStatusDB(id, status)
		if ok && s.cache != nil {
			s.cache.Remove(id)
		}
		return c, ok
	}
	return s.setStatusFile(id, status)
}

func normalizeCampaign(c Campaign) Campaign {
	c.ID = strings.TrimSpace(c.ID)
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Platforms == nil {
		c.Platforms = []string{}
	}
	if c.Assets == nil {
		c.Assets = []AssetRef{}
	}
	return c
}
