package catalog

// CredentialField describes one input in a platform's credential form.
type CredentialField struct {
	Key         string
	Label       string
	Placeholder string
	Secret      bool
}

// ConnectionStatus of a platform's posting integration.
type ConnectionStatus string

const (
	StatusSupported  ConnectionStatus = "supported"
	StatusComingSoon ConnectionStatus = "coming_soon"
)

// CredentialSpec is the full credential definition for one platform.
type CredentialSpec struct {
	PlatformID string
	Status     ConnectionStatus
	Fields     []CredentialField
	HelpURL    string
	HelpText   string
}

var credentialSpecs = map[string]CredentialSpec{
	"bluesky": {
		PlatformID: "bluesky",
		Status:     StatusSupported,
		Fields: []CredentialField{
			{Key: "BLUESKY_HANDLE", Label: "Handle", Placeholder: "yourname.bsky.social"},
			{Key: "BLUESKY_APP_PASSWORD", Label: "App Password", Placeholder: "xxxx-xxxx-xxxx-xxxx", Secret: true},
		},
		HelpURL:  "https://bsky.app/settings/app-passwords",
		HelpText: "Settings → Privacy & Security → App Passwords",
	},
	"mastodon": {
		PlatformID: "mastodon",
		Status:     StatusSupported,
		Fields: []CredentialField{
			{Key: "MASTODON_INSTANCE", Label: "Instance", Placeholder: "mastodon.social"},
			{Key: "MASTODON_ACCESS_TOKEN", Label: "Access Token", Placeholder: "Paste your access token", Secret: true},
		},
		HelpURL:  "https://docs.joinmastodon.org/client/token/",
		HelpText: "Settings → Development → New Application",
	},
	"reddit": {
		PlatformID: "reddit",
		Status:     StatusSupported,
		Fields: []CredentialField{
			{Key: "REDDIT_CLIENT_ID", Label: "Client ID", Placeholder: "Under app name after creation"},
			{Key: "REDDIT_CLIENT_SECRET", Label: "Client Secret", Placeholder: "secret field"},
			{Key: "REDDIT_USERNAME", Label: "Username", Placeholder: "Your Reddit username"},
			{Key: "REDDIT_PASSWORD", Label: "Password", Placeholder: "Your Reddit password", Secret: true},
		},
		HelpURL:  "https://www.reddit.com/prefs/apps",
		HelpText: "Create app → Select \"script\" type",
	},
	"instagram": {PlatformID: "instagram", Status: StatusComingSoon, HelpText: "Coming soon - awaiting Meta API approval"},
	"linkedin":  {PlatformID: "linkedin", Status: StatusComingSoon, HelpText: "Coming soon - awaiting API approval"},
	"facebook":  {PlatformID: "facebook", Status: StatusComingSoon, HelpText: "Coming soon - awaiting Meta API approval"},
	"tiktok":    {PlatformID: "tiktok", Status: StatusComingSoon, HelpText: "Coming soon - awaiting API approval"},
	"youtube":   {PlatformID: "youtube", Status: StatusComingSoon, HelpText: "Coming soon - awaiting API approval"},
	"threads":   {PlatformID: "threads", Status: StatusComingSoon, HelpText: "Coming soon - awaiting Meta API approval"},
	"pinterest": {PlatformID: "pinterest", Status: StatusComingSoon, HelpText: "Coming soon - awaiting API approval"},
}

// CredentialSpecByPlatform returns the credential definition for a platform.
func CredentialSpecByPlatform(platformID string) (CredentialSpec, bool) {
	spec, ok := credentialSpecs[platformID]
	return spec, ok
}

// CredentialSpecs returns all credential definitions in catalog order.
func CredentialSpecs() []CredentialSpec {
	out := make([]CredentialSpec, 0, len(credentialSpecs))
	for _, p := range Platforms() {
		if spec, ok := credentialSpecs[p.ID]; ok {
			out = append(out, spec)
		}
	}
	return out
}

// RequiredKeys returns the field keys a platform needs to be connected.
func RequiredKeys(platformID string) []string {
	spec, ok := credentialSpecs[platformID]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}
