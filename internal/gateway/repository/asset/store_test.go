package asset

import (
	"context"
	"testing"

	"mandy/internal/tester"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tester.NoErr(t, s.Put(ctx, "camp_a", "1_logo.png", []byte("png-bytes")))
	tester.NoErr(t, s.Put(ctx, "camp_a", "2_hero.jpg", []byte("jpg-bytes")))
	tester.NoErr(t, s.Put(ctx, "camp_b", "1_logo.png", []byte("other")))

	got, err := s.Get(ctx, "camp_a", "1_logo.png")
	tester.NoErr(t, err)
	tester.Eq(t, string(got), "png-bytes")

	names, err := s.List(ctx, "camp_a")
	tester.NoErr(t, err)
	tester.Eq(t, names, []string{"1_logo.png", "2_hero.jpg"})

	url, err := s.GetURL(ctx, "camp_a", "1_logo.png")
	tester.NoErr(t, err)
	tester.Eq(t, url, "memory://camp_a/1_logo.png")
}

func TestMemoryStoreMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, err := s.Get(ctx, "camp_a", "nope.png")
	tester.ErrIs(t, err, ErrNotFound)
}

func TestMemoryStoreRejectsBlankArgs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	tester.True(t, s.Put(ctx, "", "name", nil) != nil)
	tester.True(t, s.Put(ctx, "camp_a", "  ", nil) != nil)
	_, err := s.List(ctx, "")
	tester.True(t, err != nil)
}

func TestMemoryStoreCopiesContent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("original")
	tester.NoErr(t, s.Put(ctx, "camp_a", "a", buf))
	buf[0] = 'X'
	got, err := s.Get(ctx, "camp_a", "a")
	tester.NoErr(t, err)
	tester.Eq(t, string(got), "original")
}
