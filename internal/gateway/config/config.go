package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	ThinkingDelay time.Duration
	Credentials   CredentialsConfig
	Campaigns     CampaignsConfig
	Asset         AssetConfig
	LLM           LLMConfig
}

type CredentialsConfig struct {
	FilePath string
}

type CampaignsConfig struct {
	FilePath string
}

type AssetConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type LLMConfig struct {
	Enabled bool
	Model   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:          *port,
		Env:           env,
		ThinkingDelay: resolveThinkingDelay(),
		Credentials: CredentialsConfig{
			FilePath: firstNonEmpty(strings.TrimSpace(os.Getenv("CREDENTIALS_FILE")), "credentials.json"),
		},
		Campaigns: CampaignsConfig{
			FilePath: firstNonEmpty(strings.TrimSpace(os.Getenv("CAMPAIGNS_FILE")), "tmp/campaigns.json"),
		},
		Asset: loadAssetConfig(env),
		LLM: LLMConfig{
			Enabled: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) != "",
			Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), "gemini-2.0-flash"),
		},
	}, nil
}

func resolveThinkingDelay() time.Duration {
	raw := strings.TrimSpace(os.Getenv("THINKING_DELAY_MS"))
	if raw == "" {
		return 800 * time.Millisecond
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 800 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func loadAssetConfig(env string) AssetConfig {
	endpoint := resolveAssetEndpoint(env)
	return AssetConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_BUCKET")), "mandy-assets"),
		UseSSL:    resolveAssetUseSSL(env),
	}
}

func resolveAssetEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("ASSET_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("ASSET_S3_ENDPOINT"))
}

func resolveAssetUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("ASSET_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
