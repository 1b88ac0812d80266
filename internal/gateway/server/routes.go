package server

import (
	"net/http"

	"mandy/internal/gateway/handler"
	"mandy/internal/gateway/middleware"
)

func NewMux(
	chatHandler *handler.ChatHandler,
	campaignHandler *handler.CampaignHandler,
	credentialHandler *handler.CredentialHandler,
	uploadHandler *handler.UploadHandler,
) http.Handler {
	mux := http.NewServeMux()

	// Chat surface
	mux.HandleFunc("/ws/chat", chatHandler.HandleChatWS)
	mux.HandleFunc("/api/session/assets", uploadHandler.HandleUpload)

	// Campaign lifecycle
	mux.HandleFunc("/api/launch", campaignHandler.HandleLaunch)
	mux.HandleFunc("/api/campaign/", campaignHandler.HandleCampaign)

	// Settings panel
	mux.HandleFunc("/api/credentials", credentialHandler.HandleCredentials)
	mux.HandleFunc("/api/test-connection", credentialHandler.HandleTestConnection)
	mux.HandleFunc("/api/platforms", credentialHandler.HandlePlatforms)

	return middleware.CORS(mux)
}
