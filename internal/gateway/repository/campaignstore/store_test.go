package campaignstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileBackendPutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.json")
	s := New(path)

	c := Campaign{
		ID:          "camp_20260901_120000",
		ProductName: "Cool Shirts",
		ProductVibe: "Trendy & youthful",
		Platforms:   []string{"bluesky", "reddit"},
	}
	require.NoError(t, s.Put(c))

	got, ok := s.Get("camp_20260901_120000")
	require.True(t, ok)
	require.Equal(t, "Cool Shirts", got.ProductName)
	require.Equal(t, StatusActive, got.Status, "status defaults to active")
	require.False(t, got.CreatedAt.IsZero())
	require.NotNil(t, got.Assets)

	// A fresh store re-reads from disk.
	reloaded, ok := New(path).Get("camp_20260901_120000")
	require.True(t, ok)
	require.Equal(t, []string{"bluesky", "reddit"}, reloaded.Platforms)
}

func TestGetUnknown(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "campaigns.json"))
	_, ok := s.Get("camp_nope")
	require.False(t, ok)
	_, ok = s.Get("  ")
	require.False(t, ok)
}

func TestSetStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.json")
	s := New(path)
	require.NoError(t, s.Put(Campaign{ID: "camp_x", CreatedAt: time.Now()}))

	updated, ok := s.SetStatus("camp_x", StatusPaused)
	require.True(t, ok)
	require.Equal(t, StatusPaused, updated.Status)

	got, ok := New(path).Get("camp_x")
	require.True(t, ok)
	require.Equal(t, StatusPaused, got.Status, "status change is persisted")

	_, ok = s.SetStatus("camp_missing", StatusPaused)
	require.False(t, ok)
}

func TestPutBlankIDIsIgnored(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "campaigns.json"))
	require.NoError(t, s.Put(Campaign{ID: "   "}))
	require.Empty(t, s.byID)
}
