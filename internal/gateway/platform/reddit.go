package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const redditTokenURL = "https://www.reddit.com/api/v1/access_token"

type redditTester struct{}

func (redditTester) test(ctx context.Context, client *http.Client, creds map[string]string) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", creds["REDDIT_USERNAME"])
	form.Set("password", creds["REDDIT_PASSWORD"])

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, redditTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(creds["REDDIT_CLIENT_ID"], creds["REDDIT_CLIENT_SECRET"])
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "MarketingMandy/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrAuthRejected
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if out.AccessToken == "" {
		// Reddit returns 200 with an error body on bad script-app creds.
		return ErrAuthRejected
	}
	return nil
}
