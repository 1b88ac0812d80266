package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"mandy/internal/gateway/conversation"
	"mandy/internal/gateway/service/session"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	PlatformID string `json:"platform,omitempty"`
	AssetID    string `json:"assetId,omitempty"`
}

type chatWSOutbound struct {
	Type       string           `json:"type"`
	Message    *session.Message `json:"message,omitempty"`
	CampaignID string           `json:"campaignId,omitempty"`
	Code       string           `json:"code,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// ChatHandler serves the conversational wizard over a websocket.
type ChatHandler struct {
	sessions *session.Service
}

func NewChatHandler(sessions *session.Service) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	sub, subErr := h.sessions.Subscribe(ctx, sessionID)
	if subErr != nil {
		pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: "invalid_argument", Error: subErr.Error()})
		cancel()
		<-writerDone
		return
	}
	go func() {
		for msg := range sub {
			m := msg
			pushChatWS(writeCh, chatWSOutbound{Type: "message", Message: &m})
		}
	}()

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
		h.dispatch(ctx, sessionID, in, writeCh)
	}
}

func (h *ChatHandler) dispatch(ctx context.Context, sessionID string, in chatWSInbound, writeCh chan chatWSOutbound) {
	switch strings.TrimSpace(in.Type) {
	case "text", "quick_action":
		if err := h.sessions.HandleText(sessionID, in.Text); err != nil {
			pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: "invalid_argument", Error: err.Error()})
		}
	case "toggle_platform":
		err := h.sessions.TogglePlatform(sessionID, in.PlatformID)
		var unsupported *conversation.UnsupportedPlatformError
		if errors.As(err, &unsupported) {
			// Already surfaced inline as a system message.
			return
		}
		if err != nil {
			pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: "invalid_argument", Error: err.Error()})
		}
	case "confirm_platforms":
		err := h.sessions.ConfirmPlatforms(sessionID)
		switch {
		case err == nil, errors.Is(err, conversation.ErrEmptySelection):
			// Empty selection already surfaced inline.
		case errors.Is(err, conversation.ErrNotSelecting):
			pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: "invalid_argument", Error: err.Error()})
		default:
			pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: "internal", Error: err.Error()})
		}
	case "remove_asset":
		h.sessions.RemoveAsset(sessionID, in.AssetID)
	case "launch":
		campaignID, err := h.sessions.Launch(ctx, sessionID)
		if err != nil {
			code := "launch_failed"
			if errors.Is(err, session.ErrLaunchInFlight) {
				code = "launch_in_flight"
			}
			pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: code, Error: err.Error()})
			return
		}
		pushChatWS(writeCh, chatWSOutbound{Type: "launched", CampaignID: campaignID})
	default:
		pushChatWS(writeCh, chatWSOutbound{Type: "error", Code: "invalid_argument", Error: "unknown event type"})
	}
}

func pushChatWS(ch chan chatWSOutbound, out chatWSOutbound) {
	select {
	case ch <- out:
	default:
		log.Printf("chat ws outbound queue full, dropping %s", out.Type)
	}
}
