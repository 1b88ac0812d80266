// Package session drives one wizard conversation per chat session. It
// owns the per-session lock, applies the thinking delay before
// assistant prompts, and fans messages out to websocket subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"mandy/internal/gateway/catalog"
	"mandy/internal/gateway/conversation"
	"mandy/internal/gateway/service/campaign"
)

// DefaultThinkingDelay paces assistant replies like the original chat.
const DefaultThinkingDelay = 800 * time.Millisecond

// ErrLaunchInFlight guards against double launches of one session.
var ErrLaunchInFlight = errors.New("launch already in progress")

// ErrNotReady is returned when launching before the wizard finished.
var ErrNotReady = errors.New("campaign is not ready to launch")

// Launcher submits a finished campaign.
type Launcher interface {
	Launch(ctx context.Context, req campaign.LaunchRequest) (string, error)
}

// Role of a chat message.
const (
	RoleAssistant = "mandy"
	RoleUser      = "user"
	RoleSystem    = "system"
)

// PlatformOption is one pill of the platform picker, carrying current
// selection so re-renders keep state.
type PlatformOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Supported bool   `json:"supported"`
	Selected  bool   `json:"selected"`
}

// Message is one chat transcript entry.
type Message struct {
	Role         string                      `json:"role"`
	Text         string                      `json:"text"`
	QuickActions []string                    `json:"quick_actions,omitempty"`
	Widget       conversation.WidgetKind     `json:"widget,omitempty"`
	Platforms    []PlatformOption            `json:"platforms,omitempty"`
	Schedule     []conversation.ScheduleLine `json:"schedule,omitempty"`
	CampaignID   string                      `json:"campaign_id,omitempty"`
}

type sessionState struct {
	machine        *conversation.Machine
	transcript     []Message
	changed        chan struct{}
	launchInFlight bool
	updatedAt      time.Time
}

type Service struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	launcher Launcher
	delay    time.Duration
}

func New(launcher Launcher, thinkingDelay time.Duration) *Service {
	return &Service{
		sessions: make(map[string]*sessionState),
		launcher: launcher,
		delay:    thinkingDelay,
	}
}

func (s *Service) getOrCreateLocked(sessionID string) *sessionState {
	if st, ok := s.sessions[sessionID]; ok {
		return st
	}
	st := &sessionState{
		machine: conversation.NewMachine(conversation.NewState()),
		changed: make(chan struct{}),
	}
	greeting := conversation.Greeting()
	st.transcript = append(st.transcript, Message{
		Role:         RoleAssistant,
		Text:         greeting.Text,
		QuickActions: greeting.QuickActions,
	})
	s.sessions[sessionID] = st
	return st
}

func (s *Service) appendLocked(st *sessionState, msg Message) {
	st.transcript = append(st.transcript, msg)
	st.updatedAt = time.Now()
	notifyLocked(st)
}

func notifyLocked(st *sessionState) {
	close(st.changed)
	st.changed = make(chan struct{})
}

// HandleText consumes one chat input (typed text or a quick action).
// The state advances immediately; the assistant prompt lands after the
// thinking delay.
func (s *Service) HandleText(sessionID, text string) error {
	sessionID = strings.TrimSpace(sessionID)
	text = strings.TrimSpace(text)
	if sessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if text == "" {
		return fmt.Errorf("input is required")
	}

	s.mu.Lock()
	st := s.getOrCreateLocked(sessionID)
	s.appendLocked(st, Message{Role: RoleUser, Text: text})
	reply := st.machine.Advance(text)
	s.mu.Unlock()

	s.emitReply(sessionID, st, reply)
	return nil
}

// emitReply queues the assistant reply after the thinking delay. A zero
// delay emits synchronously, which tests rely on.
func (s *Service) emitReply(sessionID string, st *sessionState, reply conversation.Reply) {
	deliver := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.appendLocked(st, s.messageFromReplyLocked(st, reply))
	}
	if s.delay <= 0 {
		deliver()
		return
	}
	time.AfterFunc(s.delay, deliver)
}

// messageFromReplyLocked fills widget payloads from current state, so a
// re-rendered picker shows the live selection.
func (s *Service) messageFromReplyLocked(st *sessionState, reply conversation.Reply) Message {
	msg := Message{
		Role:         RoleAssistant,
		Text:         reply.Text,
		QuickActions: reply.QuickActions,
		Widget:       reply.Widget,
	}
	state := st.machine.State()
	switch reply.Widget {
	case conversation.WidgetPlatformPicker:
		msg.Platforms = platformOptions(state)
	case conversation.WidgetSchedulePreview:
		msg.Schedule = conversation.ScheduleLines(state)
	case conversation.WidgetReadySummary:
		msg.CampaignID = state.CampaignID
	}
	return msg
}

func platformOptions(state *conversation.State) []PlatformOption {
	all := catalog.Platforms()
	out := make([]PlatformOption, 0, len(all))
	for _, p := range all {
		out = append(out, PlatformOption{
			ID:        p.ID,
			Name:      p.Name,
			Icon:      p.Icon,
			Supported: p.Supported,
			Selected:  state.HasPlatform(p.ID),
		})
	}
	return out
}

// TogglePlatform flips selection of a platform. Toggling a coming-soon
// platform changes nothing and surfaces an inline system notice.
func (s *Service) TogglePlatform(sessionID, platformID string) error {
	s.mu.Lock()
	st := s.getOrCreateLocked(sessionID)
	err := st.machine.Toggle(platformID)
	var unsupported *conversation.UnsupportedPlatformError
	if errors.As(err, &unsupported) {
		s.appendLocked(st, Message{Role: RoleSystem, Text: unsupported.Error()})
	}
	s.mu.Unlock()
	return err
}

// ConfirmPlatforms finishes platform selection. An empty selection
// re-prompts without a stage change.
func (s *Service) ConfirmPlatforms(sessionID string) error {
	s.mu.Lock()
	st := s.getOrCreateLocked(sessionID)
	summary, reply, err := st.machine.ConfirmPlatforms()
	if err != nil {
		if errors.Is(err, conversation.ErrEmptySelection) {
			s.appendLocked(st, Message{Role: RoleSystem, Text: "Pick at least one!"})
		}
		s.mu.Unlock()
		return err
	}
	s.appendLocked(st, Message{Role: RoleUser, Text: summary})
	s.mu.Unlock()

	s.emitReply(sessionID, st, reply)
	return nil
}

// AcceptFiles hands an upload batch to the asset intake. Decoded assets
// are appended as they finish; the follow-up prompt fires only if the
// session is still on the assets stage when the batch settles.
func (s *Service) AcceptFiles(sessionID string, files []conversation.IncomingFile) {
	s.mu.Lock()
	st := s.getOrCreateLocked(sessionID)
	s.mu.Unlock()

	intake := &conversation.Intake{
		Append: func(a conversation.Asset) {
			s.mu.Lock()
			st.machine.State().AddAsset(a)
			s.mu.Unlock()
		},
		Settled: func(accepted int) {
			s.mu.Lock()
			defer s.mu.Unlock()
			state := st.machine.State()
			if accepted == 0 || len(state.Assets) == 0 {
				return
			}
			if state.Stage != conversation.StageAssets {
				// The user already moved on; a late prompt would land
				// in the wrong stage.
				return
			}
			s.appendLocked(st, Message{
				Role:         RoleAssistant,
				Text:         fmt.Sprintf("Got %d file(s). More, or we good?", len(state.Assets)),
				QuickActions: []string{"That's all", "Add more"},
			})
		},
	}
	intake.Accept(files)
}

// RemoveAsset drops one uploaded asset.
func (s *Service) RemoveAsset(sessionID, assetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.getOrCreateLocked(sessionID)
	return st.machine.State().RemoveAsset(assetID)
}

// Launch submits the session's campaign. A second call while one is in
// flight is refused; failures restore launchability.
func (s *Service) Launch(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	st := s.getOrCreateLocked(sessionID)
	state := st.machine.State()
	if state.Stage != conversation.StageReady {
		s.mu.Unlock()
		return "", ErrNotReady
	}
	if st.launchInFlight {
		s.mu.Unlock()
		return "", ErrLaunchInFlight
	}
	st.launchInFlight = true
	req := campaign.LaunchRequest{
		ProductName: state.Product.Name,
		ProductVibe: state.Product.Vibe,
		Platforms:   append([]string(nil), state.Platforms...),
	}
	for _, a := range state.Assets {
		req.Assets = append(req.Assets, campaign.LaunchAsset{ID: a.ID, Name: a.Name, Data: a.Data})
	}
	s.mu.Unlock()

	campaignID, err := s.launcher.Launch(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	st.launchInFlight = false
	if err != nil {
		log.Printf("session %s: launch failed: %v", sessionID, err)
		s.appendLocked(st, Message{Role: RoleSystem, Text: "Oops! Try again."})
		return "", err
	}
	state.CampaignID = campaignID
	s.appendLocked(st, Message{Role: RoleSystem, Text: "🎉 Campaign is LIVE!", CampaignID: campaignID})
	s.appendLocked(st, s.nextPostMessageLocked(state))
	return campaignID, nil
}

func (s *Service) nextPostMessageLocked(state *conversation.State) Message {
	text := "I'm now posting for you!"
	if len(state.Platforms) > 0 {
		first := state.Platforms[0]
		if p, ok := catalog.PlatformByID(first); ok {
			times := catalog.DefaultSchedule(first).Times
			if len(times) > 0 {
				text = fmt.Sprintf("I'm now posting for you! Next post: %s at %s", p.Icon, times[0])
			}
		}
	}
	return Message{
		Role:         RoleAssistant,
		Text:         text,
		QuickActions: []string{"Show schedule", "Pause campaign"},
	}
}

// StateSnapshot returns a copy of the session's wizard state.
func (s *Service) StateSnapshot(sessionID string) conversation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.getOrCreateLocked(sessionID)
	snap := *st.machine.State()
	snap.Assets = append([]conversation.Asset(nil), snap.Assets...)
	snap.Platforms = append([]string(nil), snap.Platforms...)
	return snap
}

// Subscribe streams the transcript: the backlog first, then every new
// message until ctx is canceled.
func (s *Service) Subscribe(ctx context.Context, sessionID string) (<-chan Message, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	out := make(chan Message, 32)

	go func() {
		defer close(out)
		cursor := 0
		for {
			s.mu.Lock()
			st := s.getOrCreateLocked(sessionID)
			pending := append([]Message(nil), st.transcript[cursor:]...)
			cursor = len(st.transcript)
			ch := st.changed
			s.mu.Unlock()

			for _, msg := range pending {
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ch:
			}
		}
	}()
	return out, nil
}
