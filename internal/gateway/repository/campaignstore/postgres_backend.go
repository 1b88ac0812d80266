package campaignstore

import "encoding/json"

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS campaigns (
  campaign_id TEXT PRIMARY KEY,
  product_name TEXT NOT NULL DEFAULT '',
  product_vibe TEXT NOT NULL DEFAULT '',
  platforms TEXT NOT NULL DEFAULT '[]',
  assets TEXT NOT NULL DEFAULT '[]',
  status TEXT NOT NULL DEFAULT 'active',
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`)
	})
	return s.schemaErr
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (Campaign, bool) {
	var c Campaign
	var platforms, assets string
	err := row.Scan(
		&c.ID,
		&c.ProductName,
		&c.ProductVibe,
		&platforms,
		&assets,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		return Campaign{}, false
	}
	_ = json.Unmarshal([]byte(platforms), &c.Platforms)
	_ = json.Unmarshal([]byte(assets), &c.Assets)
	return normalizeCampaign(c), true
}

func (s *Store) putDB(c Campaign) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	platforms, err := json.Marshal(c.Platforms)
	if err != nil {
		return err
	}
	assets, err := json.Marshal(c.Assets)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO campaigns (
  campaign_id, product_name, product_vibe, platforms, assets, status, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (campaign_id)
DO UPDATE SET product_name=EXCLUDED.product_name,
  product_vibe=EXCLUDED.product_vibe,
  platforms=EXCLUDED.platforms,
  assets=EXCLUDED.assets,
  status=EXCLUDED.status`,
		c.ID, c.ProductName, c.ProductVibe, string(platforms), string(assets), c.Status, c.CreatedAt)
	return err
}

func (s *Store) getDB(id string) (Campaign, bool) {
	if err := s.ensureSchema(); err != nil {
		return Campaign{}, false
	}
	row := s.db.QueryRow(`SELECT campaign_id, product_name, product_vibe, platforms, assets, status, created_at
FROM campaigns WHERE campaign_id = $1`, id)
	return scanCampaign(row)
}

func (s *Store) setStatusDB(id, status string) (Campaign, bool) {
	if err := s.ensureSchema(); err != nil {
		return Campaign{}, false
	}
	row := s.db.QueryRow(`UPDATE campaigns SET status = $2 WHERE campaign_id = $1
RETURNING campaign_id, product_name, product_vibe, platforms, assets, status, created_at`, id, status)
	return scanCampaign(row)
}
