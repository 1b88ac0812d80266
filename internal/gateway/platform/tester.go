// Package platform verifies posting credentials against the real
// platform APIs.
package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mandy/internal/gateway/catalog"
)

// ErrAuthRejected means the platform answered and refused the
// credentials. Transport failures are returned as-is so callers can
// tell the two apart.
var ErrAuthRejected = errors.New("platform rejected the credentials")

// ErrComingSoon means the platform has no posting integration yet.
var ErrComingSoon = errors.New("platform integration coming soon")

// ErrUnknownPlatform means the id is not in the catalog.
var ErrUnknownPlatform = errors.New("unknown platform")

type connTester interface {
	test(ctx context.Context, client *http.Client, creds map[string]string) error
}

// Registry routes connection tests to per-platform checks.
type Registry struct {
	client *http.Client
}

// NewRegistry builds a registry with its own HTTP client. The 10s
// timeout keeps a dead platform API from hanging a settings-panel
// test indefinitely.
func NewRegistry() *Registry {
	return &Registry{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

var testers = map[string]connTester{
	"bluesky":  blueskyTester{},
	"mastodon": mastodonTester{},
	"reddit":   redditTester{},
}

// Test checks the given credentials against the platform's API without
// storing anything. nil means the platform accepted them.
func (r *Registry) Test(ctx context.Context, platformID string, creds map[string]string) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	platformID = strings.TrimSpace(platformID)
	spec, ok := catalog.CredentialSpecByPlatform(platformID)
	if !ok {
		return ErrUnknownPlatform
	}
	if spec.Status == catalog.StatusComingSoon {
		return ErrComingSoon
	}
	t, ok := testers[platformID]
	if !ok {
		return ErrUnknownPlatform
	}
	return t.test(ctx, r.client, trimValues(creds))
}

func trimValues(creds map[string]string) map[string]string {
	out := make(map[string]string, len(creds))
	for k, v := range creds {
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
