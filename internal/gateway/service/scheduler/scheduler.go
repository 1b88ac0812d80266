// Package scheduler runs the recurring posting jobs of launched
// campaigns: one daily job per selected platform and default time slot.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"mandy/internal/gateway/catalog"
)

// Executor performs one post for a campaign on a platform.
type Executor func(ctx context.Context, campaignID, platformID string)

type job struct {
	id         string
	campaignID string
	platformID string
	timeOfDay  string
	stop       chan struct{}
}

// Scheduler owns the posting jobs. Jobs repeat every 24h starting at
// the next occurrence of their time-of-day.
type Scheduler struct {
	mu         sync.Mutex
	jobs       map[string]*job
	byCampaign map[string][]string
	exec       Executor
	now        func() time.Time
}

func New(exec Executor) *Scheduler {
	return &Scheduler{
		jobs:       make(map[string]*job),
		byCampaign: make(map[string][]string),
		exec:       exec,
		now:        time.Now,
	}
}

// ScheduleCampaign registers one daily job per platform default time
// slot and returns the job ids.
func (s *Scheduler) ScheduleCampaign(campaignID string, platformIDs []string) []string {
	if s == nil {
		return nil
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil
	}
	ids := make([]string, 0, len(platformIDs)*3)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pid := range platformIDs {
		sched := catalog.DefaultSchedule(pid)
		for _, t := range sched.Times {
			j := &job{
				id:         jobID(campaignID, pid, t),
				campaignID: campaignID,
				platformID: pid,
				timeOfDay:  t,
				stop:       make(chan struct{}),
			}
			if _, exists := s.jobs[j.id]; exists {
				continue
			}
			s.jobs[j.id] = j
			s.byCampaign[campaignID] = append(s.byCampaign[campaignID], j.id)
			ids = append(ids, j.id)
			go s.run(j)
		}
	}
	return ids
}

// StopCampaign cancels every job of the campaign.
func (s *Scheduler) StopCampaign(campaignID string) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stopped := 0
	for _, id := range s.byCampaign[campaignID] {
		if j, ok := s.jobs[id]; ok {
			close(j.stop)
			delete(s.jobs, id)
			stopped++
		}
	}
	delete(s.byCampaign, campaignID)
	return stopped
}

// Jobs returns the ids of all live jobs, for inspection.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		out = append(out, id)
	}
	return out
}

func (s *Scheduler) run(j *job) {
	for {
		next := nextOccurrence(s.now(), j.timeOfDay)
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-j.stop:
			timer.Stop()
			return
		case <-timer.C:
		}
		if s.exec != nil {
			s.exec(context.Background(), j.campaignID, j.platformID)
		} else {
			log.Printf("scheduler: posting to %s for %s", j.platformID, j.campaignID)
		}
	}
}

// nextOccurrence is today at HH:MM, or tomorrow when that moment has
// already passed.
func nextOccurrence(now time.Time, timeOfDay string) time.Time {
	var hour, minute int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &hour, &minute); err != nil {
		hour, minute = 12, 0
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.Add(24 * time.Hour)
	}
	return at
}

func jobID(campaignID, platformID, timeOfDay string) string {
	return campaignID + "_" + platformID + "_" + strings.ReplaceAll(timeOfDay, ":", "")
}
