package conversation

import (
	"fmt"
	"strings"

	"mandy/internal/gateway/catalog"
)

// WidgetKind tells the chat surface which interactive block to render
// beneath a reply.
type WidgetKind string

const (
	WidgetNone            WidgetKind = ""
	WidgetUpload          WidgetKind = "upload"
	WidgetPlatformPicker  WidgetKind = "platform_picker"
	WidgetSchedulePreview WidgetKind = "schedule_preview"
	WidgetReadySummary    WidgetKind = "ready_summary"
)

// Reply is one assistant turn: prompt text, optional quick actions, and
// an optional widget.
type Reply struct {
	Text         string
	QuickActions []string
	Widget       WidgetKind
}

// Machine advances a State through the wizard stages. It is not safe
// for concurrent use; callers serialize access per session.
type Machine struct {
	state *State
}

func NewMachine(state *State) *Machine {
	return &Machine{state: state}
}

// State exposes the machine's session state.
func (m *Machine) State() *State { return m.state }

// Greeting is the opening prompt, emitted before any user input.
func Greeting() Reply {
	return Reply{
		Text:         "Hey! 👋 I'm Mandy, your marketing sidekick. What are we promoting today?",
		QuickActions: []string{"I'm selling t-shirts", "I have a software product", "I run a local business", "Something else"},
	}
}

// Advance consumes one chat input at the current stage, mutates state,
// and returns the next prompt. Stages without a data-capture
// requirement treat any input as a trigger to continue. At the
// platforms stage, chat input re-renders the picker without advancing;
// the stage is left via ConfirmPlatforms only. Ready is terminal.
func (m *Machine) Advance(input string) Reply {
	input = strings.TrimSpace(input)
	st := m.state

	switch st.Stage {
	case StageIntro:
		st.Product.Name = input
		st.Stage = StageProduct
		return Reply{
			Text:         "Nice! Tell me more - what's the vibe? Who's it for?",
			QuickActions: []string{"Trendy & youthful", "Professional & clean", "Fun & quirky", "Premium & luxury"},
		}
	case StageProduct:
		st.Product.Vibe = input
		st.Stage = StageAssets
		return Reply{
			Text:   "Got it! Now drop some visuals - logo, product pics, any ads you've made.",
			Widget: WidgetUpload,
		}
	case StageAssets:
		// Any acknowledgement moves on; uploads arrive out of band.
		st.Stage = StagePlatforms
		return platformPickerReply()
	case StagePlatforms:
		return platformPickerReply()
	case StageSchedule:
		st.Stage = StageReady
		return m.readyReply()
	default:
		return m.readyReply()
	}
}

// Toggle flips membership of platformID in the selection. Unsupported
// platforms are left untouched and reported via UnsupportedPlatformError.
func (m *Machine) Toggle(platformID string) error {
	p, ok := catalog.PlatformByID(strings.TrimSpace(platformID))
	if !ok {
		return fmt.Errorf("unknown platform %q", platformID)
	}
	if !p.Supported {
		return &UnsupportedPlatformError{Platform: p}
	}
	if m.state.HasPlatform(p.ID) {
		m.state.removePlatform(p.ID)
	} else {
		m.state.addPlatform(p.ID)
	}
	return nil
}

// ConfirmPlatforms validates the selection and moves to the schedule
// stage. The returned summary echoes the chosen display names the way a
// user message would. Outside the platforms stage the confirm is
// refused with ErrNotSelecting and nothing changes.
func (m *Machine) ConfirmPlatforms() (summary string, reply Reply, err error) {
	if m.state.Stage != StagePlatforms {
		return "", Reply{}, ErrNotSelecting
	}
	if len(m.state.Platforms) == 0 {
		return "", Reply{}, ErrEmptySelection
	}
	names := make([]string, 0, len(m.state.Platforms))
	for _, id := range m.state.Platforms {
		if p, ok := catalog.PlatformByID(id); ok {
			names = append(names, p.Name)
		}
	}
	m.state.Stage = StageSchedule
	return "Selected: " + strings.Join(names, ", "), scheduleReply(), nil
}

func platformPickerReply() Reply {
	return Reply{
		Text:   "Where do you want to post?",
		Widget: WidgetPlatformPicker,
	}
}

func scheduleReply() Reply {
	return Reply{
		Text:         "Here's when I'll post (optimal times):",
		QuickActions: []string{"Sounds good!", "Use defaults"},
		Widget:       WidgetSchedulePreview,
	}
}

func (m *Machine) readyReply() Reply {
	st := m.state
	icons := make([]string, 0, len(st.Platforms))
	for _, id := range st.Platforms {
		if p, ok := catalog.PlatformByID(id); ok {
			icons = append(icons, p.Icon)
		}
	}
	text := fmt.Sprintf("🎯 Ready! Product: %s. Vibe: %s. Assets: %d files. Platforms: %s. Hit that green button!",
		st.Product.Name, st.Product.Vibe, len(st.Assets), strings.Join(icons, " "))
	return Reply{Text: text, Widget: WidgetReadySummary}
}
