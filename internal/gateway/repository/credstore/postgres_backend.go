package credstore

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS platform_credentials (
  cred_key TEXT PRIMARY KEY,
  cred_value TEXT NOT NULL DEFAULT ''
);
`)
	})
	return s.schemaErr
}

func (s *Store) loadDB() (map[string]string, error) {
	if err := s.ensureSchema(); err != nil {
		return map[string]string{}, err
	}
	rows, err := s.db.Query(`SELECT cred_key, cred_value FROM platform_credentials`)
	if err != nil {
		return map[string]string{}, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return map[string]string{}, err
		}
		if k != "" && v != "" {
			out[k] = v
		}
	}
	if err := rows.Err(); err != nil {
		return map[string]string{}, err
	}
	return out, nil
}

func (s *Store) replaceDB(creds map[string]string) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM platform_credentials`); err != nil {
		return err
	}
	for k, v := range creds {
		if _, err := tx.Exec(`INSERT INTO platform_credentials (cred_key, cred_value) VALUES ($1,$2)`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}
