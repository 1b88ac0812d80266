package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"mandy/internal/tester"
)

func jsonDecode(req *http.Request, out any) error {
	return json.NewDecoder(req.Body).Decode(out)
}

func isAuthRejected(err error) bool {
	return errors.Is(err, ErrAuthRejected)
}

// rewriteTransport sends every request to the test server regardless of
// the tester's hardcoded host.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func registryFor(t *testing.T, h http.HandlerFunc) (*Registry, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	tester.NoErr(t, err)
	r := NewRegistry()
	r.client = &http.Client{Transport: rewriteTransport{target: u}}
	return r, srv
}

func TestRegistryComingSoon(t *testing.T) {
	r := NewRegistry()
	err := r.Test(context.Background(), "instagram", nil)
	tester.ErrIs(t, err, ErrComingSoon)
}

func TestRegistryUnknownPlatform(t *testing.T) {
	r := NewRegistry()
	err := r.Test(context.Background(), "myspace", nil)
	tester.ErrIs(t, err, ErrUnknownPlatform)
}

func TestBlueskyAccepted(t *testing.T) {
	var gotBody map[string]string
	r, _ := registryFor(t, func(w http.ResponseWriter, req *http.Request) {
		tester.Eq(t, req.Method, http.MethodPost)
		tester.Eq(t, req.URL.Path, "/xrpc/com.atproto.server.createSession")
		if err := jsonDecode(req, &gotBody); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	err := r.Test(context.Background(), "bluesky", map[string]string{
		"BLUESKY_HANDLE":       " mandy.bsky.social ",
		"BLUESKY_APP_PASSWORD": "xxxx-xxxx",
	})
	tester.NoErr(t, err)
	tester.Eq(t, gotBody["identifier"], "mandy.bsky.social", "values are trimmed before the call")
}

func TestBlueskyRejected(t *testing.T) {
	r, _ := registryFor(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid identifier or password"}`))
	})

	err := r.Test(context.Background(), "bluesky", nil)
	tester.ErrIs(t, err, ErrAuthRejected)
}

func TestMastodonBearerHeader(t *testing.T) {
	var gotAuth string
	r, _ := registryFor(t, func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		tester.Eq(t, req.URL.Path, "/api/v1/accounts/verify_credentials")
		w.WriteHeader(http.StatusOK)
	})

	err := r.Test(context.Background(), "mastodon", map[string]string{
		"MASTODON_ACCESS_TOKEN": "token-1",
	})
	tester.NoErr(t, err)
	tester.Eq(t, gotAuth, "Bearer token-1")
}

func TestMastodonRejected(t *testing.T) {
	r, _ := registryFor(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	err := r.Test(context.Background(), "mastodon", nil)
	tester.ErrIs(t, err, ErrAuthRejected)
}

func TestRedditAccepted(t *testing.T) {
	r, _ := registryFor(t, func(w http.ResponseWriter, req *http.Request) {
		user, pass, ok := req.BasicAuth()
		tester.True(t, ok)
		tester.Eq(t, user, "client-id")
		tester.Eq(t, pass, "client-secret")
		tester.Eq(t, req.Header.Get("User-Agent"), "MarketingMandy/1.0")
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	})

	err := r.Test(context.Background(), "reddit", map[string]string{
		"REDDIT_CLIENT_ID":     "client-id",
		"REDDIT_CLIENT_SECRET": "client-secret",
		"REDDIT_USERNAME":      "mandy",
		"REDDIT_PASSWORD":      "pw",
	})
	tester.NoErr(t, err)
}

func TestRedditOKWithoutTokenIsRejected(t *testing.T) {
	r, _ := registryFor(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})
	err := r.Test(context.Background(), "reddit", nil)
	tester.ErrIs(t, err, ErrAuthRejected)
}

func TestTransportFailureIsNotARejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	u, err := url.Parse(srv.URL)
	tester.NoErr(t, err)
	srv.Close() // connection refused from here on

	r := NewRegistry()
	r.client = &http.Client{Transport: rewriteTransport{target: u}}
	err = r.Test(context.Background(), "bluesky", nil)
	tester.True(t, err != nil)
	tester.False(t, isAuthRejected(err), "a dead platform must not read as rejected credentials")
}
