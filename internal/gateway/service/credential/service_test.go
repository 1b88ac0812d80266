package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	loaded  map[string]string
	loadErr error

	replaced   map[string]string
	replaceErr error
}

func (f *fakeStore) Load() (map[string]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loaded, nil
}

func (f *fakeStore) Replace(creds map[string]string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = creds
	return nil
}

type fakeTester struct {
	lastPlatform string
	lastCreds    map[string]string
	err          error
}

func (f *fakeTester) Test(_ context.Context, platformID string, creds map[string]string) error {
	f.lastPlatform = platformID
	f.lastCreds = creds
	return f.err
}

func TestIsConnected(t *testing.T) {
	store := &fakeStore{loaded: map[string]string{
		"BLUESKY_HANDLE":       "mandy.bsky.social",
		"BLUESKY_APP_PASSWORD": "xxxx-xxxx",
		"MASTODON_INSTANCE":    "mastodon.social",
		// MASTODON_ACCESS_TOKEN missing.
	}}
	svc := New(store, nil)
	svc.LoadSaved()

	require.True(t, svc.IsConnected("bluesky"), "all required fields present")
	require.False(t, svc.IsConnected("mastodon"), "one required field missing")
	require.False(t, svc.IsConnected("reddit"), "no fields saved")
	require.False(t, svc.IsConnected("instagram"), "coming-soon is never connected")
	require.False(t, svc.IsConnected("myspace"), "unknown platform")
}

func TestLoadSavedFailureDegradesToEmpty(t *testing.T) {
	svc := New(&fakeStore{loadErr: errors.New("disk on fire")}, nil)
	svc.LoadSaved()

	require.Empty(t, svc.Saved())
	require.False(t, svc.IsConnected("bluesky"))
}

func TestSaveReplacesAndDropsBlanks(t *testing.T) {
	store := &fakeStore{loaded: map[string]string{"REDDIT_USERNAME": "old"}}
	svc := New(store, nil)
	svc.LoadSaved()

	require.NoError(t, svc.Save(map[string]string{
		"BLUESKY_HANDLE":       " mandy.bsky.social ",
		"BLUESKY_APP_PASSWORD": "",
	}))

	want := map[string]string{"BLUESKY_HANDLE": "mandy.bsky.social"}
	require.Equal(t, want, store.replaced, "store receives the trimmed non-blank set")
	require.Equal(t, want, svc.Saved(), "previous keys are gone, not merged")
}

func TestSaveStoreFailureKeepsCurrentSet(t *testing.T) {
	store := &fakeStore{loaded: map[string]string{"BLUESKY_HANDLE": "mandy.bsky.social"}}
	svc := New(store, nil)
	svc.LoadSaved()

	store.replaceErr = errors.New("read-only fs")
	err := svc.Save(map[string]string{"BLUESKY_HANDLE": "other.bsky.social"})
	require.ErrorIs(t, err, ErrSaveFailed)
	require.Equal(t, "mandy.bsky.social", svc.Saved()["BLUESKY_HANDLE"], "failed save must not adopt the new set")
}

func TestTestConnectionDelegatesWithoutPersisting(t *testing.T) {
	store := &fakeStore{}
	tst := &fakeTester{err: errors.New("nope")}
	svc := New(store, tst)

	form := map[string]string{"BLUESKY_HANDLE": "x"}
	err := svc.TestConnection(context.Background(), "bluesky", form)
	require.Error(t, err)
	require.Equal(t, "bluesky", tst.lastPlatform)
	require.Equal(t, form, tst.lastCreds)
	require.Nil(t, store.replaced, "a test must not write the store")
	require.Empty(t, svc.Saved())
}
