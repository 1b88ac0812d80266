// Package catalog holds the static platform and credential registries.
// Everything here is initialized at process start and never mutated.
package catalog

// Platform is a posting destination.
type Platform struct {
	ID        string
	Name      string
	Icon      string
	Supported bool
}

// Schedule is the default posting schedule for one platform.
// Times are "HH:MM" in 24h form, ordered.
type Schedule struct {
	Times []string
}

var platforms = map[string]Platform{
	"bluesky":   {ID: "bluesky", Name: "Bluesky", Icon: "🦋", Supported: true},
	"mastodon":  {ID: "mastodon", Name: "Mastodon", Icon: "🐘", Supported: true},
	"reddit":    {ID: "reddit", Name: "Reddit", Icon: "🔶", Supported: true},
	"instagram": {ID: "instagram", Name: "Instagram", Icon: "📸", Supported: false},
	"linkedin":  {ID: "linkedin", Name: "LinkedIn", Icon: "💼", Supported: false},
	"facebook":  {ID: "facebook", Name: "Facebook", Icon: "📘", Supported: false},
	"tiktok":    {ID: "tiktok", Name: "TikTok", Icon: "🎵", Supported: false},
	"youtube":   {ID: "youtube", Name: "YouTube", Icon: "📺", Supported: false},
	"threads":   {ID: "threads", Name: "Threads", Icon: "🧵", Supported: false},
	"pinterest": {ID: "pinterest", Name: "Pinterest", Icon: "📌", Supported: false},
}

// platformOrder is the catalog's display order: the supported
// platforms first, then the coming-soon ones.
var platformOrder = []string{
	"bluesky", "mastodon", "reddit",
	"instagram", "linkedin", "facebook", "tiktok", "youtube", "threads", "pinterest",
}

var defaultSchedules = map[string]Schedule{
	"bluesky":   {Times: []string{"09:00", "12:00", "17:00"}},
	"mastodon":  {Times: []string{"09:00", "14:00", "19:00"}},
	"reddit":    {Times: []string{"10:00", "19:00"}},
	"instagram": {Times: []string{"11:00", "21:00"}},
	"linkedin":  {Times: []string{"07:30", "12:00"}},
	"facebook":  {Times: []string{"09:00", "13:00", "19:00"}},
	"tiktok":    {Times: []string{"12:00", "19:00", "22:00"}},
	"youtube":   {Times: []string{"15:00"}},
	"threads":   {Times: []string{"09:00", "18:00"}},
	"pinterest": {Times: []string{"14:00", "21:00"}},
}

// PlatformByID returns the platform for id.
func PlatformByID(id string) (Platform, bool) {
	p, ok := platforms[id]
	return p, ok
}

// Platforms returns every platform in catalog order.
func Platforms() []Platform {
	out := make([]Platform, 0, len(platformOrder))
	for _, id := range platformOrder {
		if p, ok := platforms[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// DefaultSchedule returns the default posting times for a platform.
// Unknown platforms fall back to a single midday slot, matching the
// launch behavior of the original service.
func DefaultSchedule(id string) Schedule {
	s, ok := defaultSchedules[id]
	if !ok {
		return Schedule{Times: []string{"12:00"}}
	}
	return Schedule{Times: append([]string(nil), s.Times...)}
}
