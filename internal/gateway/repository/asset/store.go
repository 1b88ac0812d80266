// Package asset stores uploaded campaign asset payloads. In-memory by
// default; an S3/minio backend when configured.
package asset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("asset not found")

// Store defines operations for persisting campaign asset blobs.
type Store interface {
	Put(ctx context.Context, campaignID, name string, content []byte) error
	Get(ctx context.Context, campaignID, name string) ([]byte, error)
	GetURL(ctx context.Context, campaignID, name string) (string, error)
	List(ctx context.Context, campaignID string) ([]string, error)
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(_ context.Context, campaignID, name string, content []byte) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	key, err := memoryKey(campaignID, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, campaignID, name string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	key, err := memoryKey(campaignID, name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) GetURL(_ context.Context, campaignID, name string) (string, error) {
	key, err := memoryKey(campaignID, name)
	if err != nil {
		return "", err
	}
	return "memory://" + key, nil
}

func (s *MemoryStore) List(_ context.Context, campaignID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, fmt.Errorf("campaign_id is required")
	}
	prefix := campaignID + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, 16)
	for key := range s.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, strings.TrimPrefix(key, prefix))
	}
	sort.Strings(out)
	return out, nil
}

func memoryKey(campaignID, name string) (string, error) {
	campaignID = strings.TrimSpace(campaignID)
	name = strings.TrimSpace(name)
	if campaignID == "" {
		return "", fmt.Errorf("campaign_id is required")
	}
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return campaignID + "/" + strings.TrimLeft(name, "/"), nil
}
