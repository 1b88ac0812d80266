package campaignstore

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
		var rows []Campaign
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			c := normalizeCampaign(row)
			if c.ID == "" {
				continue
			}
			s.byID[c.ID] = c
		}
	})
}

func (s *Store) saveFile() error {
	s.mu.RLock()
	rows := make([]Campaign, 0, len(s.byID))
	for _, c := range s.byID {
		rows = append(rows, c)
	}
	s.mu.RUnlock()

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *Store) putFile(c Campaign) error {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.byID[c.ID] = c
	s.mu.Unlock()
	return s.saveFile()
}

func (s *Store) getFile(id string) (Campaign, bool) {
	s.ensureLoadedFile()
	s.mu.RLock()
	c, ok := s.byID[id]
	s.mu.RUnlock()
	return c, ok
}

func (s *Store) setStatusFile(id, status string) (Campaign, bool) {
	s.ensureLoadedFile()
	s.mu.Lock()
	c, ok := s.byID[id]
	if ok {
		c.Status = status
		s.byID[id] = c
	}
	s.mu.Unlock()
	if !ok {
		return Campaign{}, false
	}
	_ = s.saveFile()
	return c, true
}
