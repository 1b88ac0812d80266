package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const blueskySessionURL = "https://bsky.social/xrpc/com.atproto.server.createSession"

type blueskyTester struct{}

func (blueskyTester) test(ctx context.Context, client *http.Client, creds map[string]string) error {
	body, err := json.Marshal(map[string]string{
		"identifier": creds["BLUESKY_HANDLE"],
		"password":   creds["BLUESKY_APP_PASSWORD"],
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, blueskySessionURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	var out struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out.Message != "" {
		return fmt.Errorf("%w: %s", ErrAuthRejected, out.Message)
	}
	return ErrAuthRejected
}
