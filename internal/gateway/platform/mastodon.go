package platform

import (
	"context"
	"net/http"
)

type mastodonTester struct{}

func (mastodonTester) test(ctx context.Context, client *http.Client, creds map[string]string) error {
	instance := creds["MASTODON_INSTANCE"]
	if instance == "" {
		instance = "mastodon.social"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://"+instance+"/api/v1/accounts/verify_credentials", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+creds["MASTODON_ACCESS_TOKEN"])

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return ErrAuthRejected
}
