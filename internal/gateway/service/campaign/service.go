// Package campaign launches campaigns and runs their posting lifecycle.
package campaign

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mandy/internal/gateway/repository/asset"
	"mandy/internal/gateway/repository/campaignstore"
	"mandy/internal/gateway/service/scheduler"
)

// ErrNotFound is returned for unknown campaign ids.
var ErrNotFound = errors.New("campaign not found")

// ErrNoPlatforms is returned when a launch request selects nothing.
var ErrNoPlatforms = errors.New("no platforms selected")

// Drafter produces post copy for a campaign. Optional; without one the
// executor falls back to a template line.
type Drafter interface {
	DraftPost(ctx context.Context, productName, vibe, platformID string) (string, error)
}

// LaunchAsset is one uploaded asset as received from the wizard.
type LaunchAsset struct {
	ID   string
	Name string
	Data string // data URI
}

// LaunchRequest carries everything the wizard accumulated.
type LaunchRequest struct {
	ProductName string
	ProductVibe string
	Assets      []LaunchAsset
	Platforms   []string
}

type Service struct {
	store   *campaignstore.Store
	assets  asset.Store
	drafter Drafter
	sched   *scheduler.Scheduler
	now     func() time.Time
}

func New(store *campaignstore.Store, assets asset.Store, drafter Drafter) *Service {
	s := &Service{
		store:   store,
		assets:  assets,
		drafter: drafter,
		now:     time.Now,
	}
	s.sched = scheduler.New(s.executePost)
	return s
}

// Launch persists the campaign, stores asset payloads, and schedules
// the recurring posts. Returns the new campaign id.
func (s *Service) Launch(ctx context.Context, req LaunchRequest) (string, error) {
	if s == nil || s.store == nil {
		return "", fmt.Errorf("campaign service not configured")
	}
	if len(req.Platforms) == 0 {
		return "", ErrNoPlatforms
	}
	id := "camp_" + s.now().Format("20060102_150405")

	refs := make([]campaignstore.AssetRef, 0, len(req.Assets))
	for _, a := range req.Assets {
		ref := campaignstore.AssetRef{ID: a.ID, Name: a.Name, Path: a.ID + "_" + sanitizeName(a.Name)}
		if s.assets != nil {
			payload, err := decodeDataURI(a.Data)
			if err != nil {
				log.Printf("campaign: skip asset %s: %v", a.ID, err)
				continue
			}
			if err := s.assets.Put(ctx, id, ref.Path, payload); err != nil {
				// Blob storage is best-effort; the campaign still launches.
				log.Printf("campaign: store asset %s: %v", a.ID, err)
			}
		}
		refs = append(refs, ref)
	}

	c := campaignstore.Campaign{
		ID:          id,
		ProductName: strings.TrimSpace(req.ProductName),
		ProductVibe: strings.TrimSpace(req.ProductVibe),
		Platforms:   append([]string(nil), req.Platforms...),
		Assets:      refs,
		Status:      campaignstore.StatusActive,
		CreatedAt:   s.now(),
	}
	if err := s.store.Put(c); err != nil {
		return "", err
	}
	jobs := s.sched.ScheduleCampaign(id, c.Platforms)
	log.Printf("campaign: launched %s on %s (%d jobs)", id, strings.Join(c.Platforms, ","), len(jobs))
	return id, nil
}

// Get returns a launched campaign.
func (s *Service) Get(id string) (campaignstore.Campaign, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return campaignstore.Campaign{}, ErrNotFound
	}
	return c, nil
}

// Pause stops the campaign's posting jobs and marks it paused.
func (s *Service) Pause(id string) (campaignstore.Campaign, error) {
	c, ok := s.store.SetStatus(id, campaignstore.StatusPaused)
	if !ok {
		return campaignstore.Campaign{}, ErrNotFound
	}
	s.sched.StopCampaign(id)
	return c, nil
}

func (s *Service) executePost(ctx context.Context, campaignID, platformID string) {
	c, ok := s.store.Get(campaignID)
	if !ok || c.Status != campaignstore.StatusActive {
		return
	}
	text := fmt.Sprintf("Check out %s — %s", c.ProductName, c.ProductVibe)
	if s.drafter != nil {
		drafted, err := s.drafter.DraftPost(ctx, c.ProductName, c.ProductVibe, platformID)
		if err != nil {
			log.Printf("campaign: draft for %s/%s failed, using template: %v", campaignID, platformID, err)
		} else {
			text = drafted
		}
	}
	log.Printf("campaign: posting to %s for %s: %s", platformID, campaignID, text)
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "asset"
	}
	return name
}

func decodeDataURI(data string) ([]byte, error) {
	idx := strings.Index(data, ",")
	if idx < 0 || !strings.HasPrefix(data, "data:") {
		return nil, fmt.Errorf("not a data uri")
	}
	meta, payload := data[:idx], data[idx+1:]
	if !strings.Contains(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data uri encoding")
	}
	return base64.StdEncoding.DecodeString(payload)
}
