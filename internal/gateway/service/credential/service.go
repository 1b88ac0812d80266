// Package credential reconciles saved platform credentials with the
// catalog's required fields and drives save/test round trips.
package credential

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"mandy/internal/gateway/catalog"
)

// ErrSaveFailed wraps a store failure on save. The in-memory set is
// untouched when this is returned.
var ErrSaveFailed = errors.New("failed to save credentials")

// Store is the persistence boundary for the credential set.
type Store interface {
	Load() (map[string]string, error)
	Replace(creds map[string]string) error
}

// ConnectionTester checks credentials against a platform API.
type ConnectionTester interface {
	Test(ctx context.Context, platformID string, creds map[string]string) error
}

type Service struct {
	store  Store
	tester ConnectionTester

	mu    sync.RWMutex
	saved map[string]string
}

func New(store Store, tester ConnectionTester) *Service {
	return &Service{
		store:  store,
		tester: tester,
		saved:  make(map[string]string),
	}
}

// LoadSaved hydrates the session cache from the store once at startup.
// Failure degrades to an empty set; every platform then just shows as
// not connected.
func (s *Service) LoadSaved() {
	if s == nil || s.store == nil {
		return
	}
	creds, err := s.store.Load()
	if err != nil {
		log.Printf("credential: load failed, starting empty: %v", err)
		creds = map[string]string{}
	}
	s.mu.Lock()
	s.saved = creds
	s.mu.Unlock()
}

// Saved returns a copy of the current credential set.
func (s *Service) Saved() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.saved))
	for k, v := range s.saved {
		out[k] = v
	}
	return out
}

// IsConnected reports whether every required field for the platform has
// a non-empty saved value. Coming-soon platforms are never connected.
func (s *Service) IsConnected(platformID string) bool {
	spec, ok := catalog.CredentialSpecByPlatform(platformID)
	if !ok || spec.Status == catalog.StatusComingSoon {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range spec.Fields {
		if strings.TrimSpace(s.saved[f.Key]) == "" {
			return false
		}
	}
	return true
}

// Save replaces the stored set with exactly the non-empty trimmed
// values of form. Omitted or blank fields are dropped even if a
// previous save had them; this matches the settings panel contract.
func (s *Service) Save(form map[string]string) error {
	if s == nil || s.store == nil {
		return ErrSaveFailed
	}
	next := make(map[string]string, len(form))
	for k, v := range form {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		next[k] = v
	}
	if err := s.store.Replace(next); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	s.mu.Lock()
	s.saved = next
	s.mu.Unlock()
	return nil
}

// TestConnection submits form values (saved or not) to the platform's
// connectivity check. Nothing is persisted either way.
func (s *Service) TestConnection(ctx context.Context, platformID string, form map[string]string) error {
	if s == nil || s.tester == nil {
		return fmt.Errorf("no connection tester configured")
	}
	return s.tester.Test(ctx, platformID, form)
}
