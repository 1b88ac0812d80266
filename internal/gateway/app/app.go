package app

import (
	"context"
	"fmt"
	"log"

	"mandy/internal/gateway/config"
	"mandy/internal/gateway/handler"
	"mandy/internal/gateway/platform"
	"mandy/internal/gateway/repository/asset"
	"mandy/internal/gateway/repository/campaignstore"
	"mandy/internal/gateway/repository/credstore"
	"mandy/internal/gateway/server"
	campaignsvc "mandy/internal/gateway/service/campaign"
	credentialsvc "mandy/internal/gateway/service/credential"
	sessionsvc "mandy/internal/gateway/service/session"
	"mandy/internal/llm"
)

type App struct {
	server *server.Server
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	credStore := credstore.NewFromEnv(cfg.Credentials.FilePath)
	campaignStore := campaignstore.NewFromEnv(cfg.Campaigns.FilePath)
	assetStore := buildAssetStore(cfg.Asset)
	drafter := buildDrafter(ctx, cfg.LLM)

	credentialSvc := credentialsvc.New(credStore, platform.NewRegistry())
	credentialSvc.LoadSaved()
	campaignSvc := campaignsvc.New(campaignStore, assetStore, drafter)
	sessionSvc := sessionsvc.New(campaignSvc, cfg.ThinkingDelay)

	chatHandler := handler.NewChatHandler(sessionSvc)
	campaignHandler := handler.NewCampaignHandler(campaignSvc)
	credentialHandler := handler.NewCredentialHandler(credentialSvc)
	uploadHandler := handler.NewUploadHandler(sessionSvc)

	// Routing & Server
	mux := server.NewMux(chatHandler, campaignHandler, credentialHandler, uploadHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
	}, nil
}

func buildAssetStore(cfg config.AssetConfig) asset.Store {
	if !cfg.Enabled {
		return asset.NewMemoryStore()
	}
	s3, err := asset.NewS3Store(asset.S3Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		log.Printf("asset store: s3 unavailable, using memory: %v", err)
		return asset.NewMemoryStore()
	}
	return s3
}

func buildDrafter(ctx context.Context, cfg config.LLMConfig) campaignsvc.Drafter {
	if !cfg.Enabled {
		return nil
	}
	cli, err := llm.NewGeminiClient(ctx, cfg.Model)
	if err != nil {
		log.Printf("llm: gemini unavailable, posts use templates: %v", err)
		return nil
	}
	return cli
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
