// Package llm drafts platform-specific post copy with Gemini.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("llm: empty response from model")

// platformStyle captures how copy should read per platform.
type platformStyle struct {
	maxChars int
	style    string
	tone     string
}

var platformStyles = map[string]platformStyle{
	"bluesky":   {maxChars: 300, style: "concise, punchy", tone: "casual, witty, conversational"},
	"mastodon":  {maxChars: 500, style: "conversational, community-minded", tone: "genuine, friendly"},
	"reddit":    {maxChars: 40000, style: "authentic, community-focused, non-promotional", tone: "genuine, helpful, NOT salesy"},
	"instagram": {maxChars: 2200, style: "visual-first, aesthetic, hashtag-rich", tone: "aspirational, authentic"},
	"linkedin":  {maxChars: 3000, style: "professional, thought-leadership, storytelling", tone: "professional, insightful, value-driven"},
	"facebook":  {maxChars: 2200, style: "visual-first, engaging, shareable", tone: "friendly, relatable"},
	"tiktok":    {maxChars: 2200, style: "trend-aware, hook-driven, entertaining", tone: "casual, fun"},
	"youtube":   {maxChars: 5000, style: "SEO-optimized, descriptive", tone: "informative, engaging"},
	"threads":   {maxChars: 500, style: "conversational, authentic", tone: "casual, genuine"},
	"pinterest": {maxChars: 500, style: "inspirational, searchable", tone: "aspirational"},
}

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// DraftPost generates one post for the product on the given platform,
// within the platform's character budget and register.
func (g *GeminiClient) DraftPost(ctx context.Context, productName, vibe, platformID string) (string, error) {
	st, ok := platformStyles[platformID]
	if !ok {
		st = platformStyle{maxChars: 500, style: "concise", tone: "friendly"}
	}
	prompt := fmt.Sprintf(
		"Write one social media post promoting %q. Brand vibe: %s. Platform: %s. Style: %s. Tone: %s. Hard limit: %d characters. Return the post text only.",
		productName, vibe, platformID, st.style, st.tone, st.maxChars)
	log.Printf("LLM request (%s): %d bytes", platformID, len(prompt))

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			nil,
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyResponse
		} else {
			text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
			if text == "" {
				lastErr = ErrEmptyResponse
			} else {
				if len(text) > st.maxChars {
					text = text[:st.maxChars]
				}
				return text, nil
			}
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return "", lastErr
}
