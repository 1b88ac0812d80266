package campaign

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mandy/internal/gateway/repository/asset"
	"mandy/internal/gateway/repository/campaignstore"
)

func newTestService(t *testing.T) (*Service, *asset.MemoryStore) {
	t.Helper()
	store := campaignstore.New(filepath.Join(t.TempDir(), "campaigns.json"))
	assets := asset.NewMemoryStore()
	svc := New(store, assets, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, assets
}

func dataURI(content string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func TestLaunch(t *testing.T) {
	svc, assets := newTestService(t)
	defer svc.sched.StopCampaign("camp_20260901_120000")

	id, err := svc.Launch(context.Background(), LaunchRequest{
		ProductName: "Cool Shirts",
		ProductVibe: "Trendy & youthful",
		Platforms:   []string{"bluesky", "reddit"},
		Assets: []LaunchAsset{
			{ID: "1", Name: "logo.png", Data: dataURI("png-bytes")},
			{ID: "2", Name: "not-a-uri", Data: "plain text"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "camp_20260901_120000", id)

	c, err := svc.Get(id)
	require.NoError(t, err)
	require.Equal(t, campaignstore.StatusActive, c.Status)
	require.Equal(t, []string{"bluesky", "reddit"}, c.Platforms)
	require.Len(t, c.Assets, 1, "undecodable assets are skipped")
	require.Equal(t, "1_logo.png", c.Assets[0].Path)

	blob, err := assets.Get(context.Background(), id, "1_logo.png")
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(blob))

	// bluesky: 3 slots, reddit: 2.
	require.Len(t, svc.sched.Jobs(), 5)
}

func TestLaunchRequiresPlatforms(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Launch(context.Background(), LaunchRequest{ProductName: "Cool Shirts"})
	require.ErrorIs(t, err, ErrNoPlatforms)
}

func TestGetUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get("camp_nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPause(t *testing.T) {
	svc, _ := newTestService(t)
	id, err := svc.Launch(context.Background(), LaunchRequest{
		ProductName: "Cool Shirts",
		Platforms:   []string{"mastodon"},
	})
	require.NoError(t, err)
	require.Len(t, svc.sched.Jobs(), 3)

	c, err := svc.Pause(id)
	require.NoError(t, err)
	require.Equal(t, campaignstore.StatusPaused, c.Status)
	require.Empty(t, svc.sched.Jobs(), "pause stops every posting job")

	_, err = svc.Pause("camp_nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeDataURI(t *testing.T) {
	raw, err := decodeDataURI(dataURI("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(raw))

	_, err = decodeDataURI("data:image/png,plain")
	require.Error(t, err, "non-base64 data uris are rejected")
	_, err = decodeDataURI("hello")
	require.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "a_b_c", sanitizeName("a/b\\c"))
	require.Equal(t, "asset", sanitizeName("  "))
}
