package scheduler

import (
	"sort"
	"testing"
	"time"

	"mandy/internal/tester"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	later := nextOccurrence(now, "17:00")
	tester.Eq(t, later, time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC), "today when still ahead")

	earlier := nextOccurrence(now, "09:00")
	tester.Eq(t, earlier, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), "tomorrow when already passed")

	exact := nextOccurrence(now, "10:30")
	tester.Eq(t, exact, time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC), "the current minute counts as passed")

	garbled := nextOccurrence(now, "whenever")
	tester.Eq(t, garbled, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), "unparseable times fall back to midday")
}

func TestScheduleCampaignJobs(t *testing.T) {
	s := New(nil)
	defer s.StopCampaign("camp_a")

	ids := s.ScheduleCampaign("camp_a", []string{"bluesky", "reddit"})
	// bluesky has three default slots, reddit two.
	tester.Eq(t, len(ids), 5)

	sort.Strings(ids)
	tester.Eq(t, ids[0], "camp_a_bluesky_0900")
	tester.Eq(t, ids[4], "camp_a_reddit_1900")

	live := s.Jobs()
	tester.Eq(t, len(live), 5)
}

func TestScheduleCampaignIsIdempotent(t *testing.T) {
	s := New(nil)
	defer s.StopCampaign("camp_a")

	first := s.ScheduleCampaign("camp_a", []string{"reddit"})
	tester.Eq(t, len(first), 2)
	second := s.ScheduleCampaign("camp_a", []string{"reddit"})
	tester.Eq(t, len(second), 0, "existing jobs are not duplicated")
	tester.Eq(t, len(s.Jobs()), 2)
}

func TestStopCampaign(t *testing.T) {
	s := New(nil)
	s.ScheduleCampaign("camp_a", []string{"bluesky"})
	s.ScheduleCampaign("camp_b", []string{"reddit"})

	tester.Eq(t, s.StopCampaign("camp_a"), 3)
	tester.Eq(t, len(s.Jobs()), 2, "other campaigns keep running")
	tester.Eq(t, s.StopCampaign("camp_a"), 0, "stopping twice is a no-op")
	s.StopCampaign("camp_b")
	tester.Eq(t, len(s.Jobs()), 0)
}

func TestBlankCampaignID(t *testing.T) {
	s := New(nil)
	tester.Eq(t, len(s.ScheduleCampaign("  ", []string{"bluesky"})), 0)
	tester.Eq(t, len(s.Jobs()), 0)
}
