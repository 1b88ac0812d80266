package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows map[string]string
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byKey = normalize(rows)
	})
}

func (s *Store) loadFile() map[string]string {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.byKey))
	for k, v := range s.byKey {
		out[k] = v
	}
	return out
}

func (s *Store) replaceFile(creds map[string]string) error {
	s.ensureLoadedFile()
	b, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return err
	}
	s.mu.Lock()
	s.byKey = creds
	s.mu.Unlock()
	return nil
}
