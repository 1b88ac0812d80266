package conversation

import (
	"errors"
	"strings"
	"testing"

	"mandy/internal/tester"
)

func TestStageNext(t *testing.T) {
	next, ok := StageIntro.Next()
	tester.True(t, ok)
	tester.Eq(t, next, StageProduct)

	_, ok = StageReady.Next()
	tester.False(t, ok, "ready is terminal")

	unk, ok := Stage("bogus").Next()
	tester.False(t, ok)
	tester.Eq(t, unk, Stage("bogus"))
}

func TestGreeting(t *testing.T) {
	g := Greeting()
	tester.True(t, strings.Contains(g.Text, "Mandy"))
	tester.Eq(t, len(g.QuickActions), 4)
}

func TestAdvanceForwardOnly(t *testing.T) {
	st := NewState()
	m := NewMachine(st)

	seen := []Stage{st.Stage}
	record := func() { seen = append(seen, st.Stage) }

	m.Advance("Cool Shirts")
	record()
	m.Advance("Trendy & youthful")
	record()
	m.Advance("That's all")
	record()
	// Platforms is left via ConfirmPlatforms, not chat.
	tester.NoErr(t, m.Toggle("bluesky"))
	_, _, err := m.ConfirmPlatforms()
	tester.NoErr(t, err)
	record()
	m.Advance("Sounds good!")
	record()

	order := []Stage{StageIntro, StageProduct, StageAssets, StagePlatforms, StageSchedule, StageReady}
	tester.Eq(t, seen, order)
	tester.Eq(t, st.Product.Name, "Cool Shirts")
	tester.Eq(t, st.Product.Vibe, "Trendy & youthful")
}

func TestAdvanceAtPlatformsRerendersPicker(t *testing.T) {
	st := NewState()
	st.Stage = StagePlatforms
	m := NewMachine(st)

	r := m.Advance("bluesky please")
	tester.Eq(t, st.Stage, StagePlatforms, "chat input must not leave the platforms stage")
	tester.Eq(t, r.Widget, WidgetPlatformPicker)
}

func TestAdvanceAtReadyIsTerminal(t *testing.T) {
	st := NewState()
	st.Stage = StageReady
	st.Product = Product{Name: "Cool Shirts", Vibe: "Trendy & youthful"}
	st.Platforms = []string{"bluesky", "reddit"}
	m := NewMachine(st)

	r := m.Advance("anything")
	tester.Eq(t, st.Stage, StageReady)
	tester.Eq(t, r.Widget, WidgetReadySummary)
	tester.True(t, strings.Contains(r.Text, "🦋 🔶"))
	tester.True(t, strings.Contains(r.Text, "Assets: 0 files"))
}

func TestToggleIdempotentPair(t *testing.T) {
	st := NewState()
	st.Stage = StagePlatforms
	m := NewMachine(st)

	tester.NoErr(t, m.Toggle("bluesky"))
	tester.True(t, st.HasPlatform("bluesky"))
	tester.NoErr(t, m.Toggle("bluesky"))
	tester.False(t, st.HasPlatform("bluesky"))
	tester.Eq(t, len(st.Platforms), 0)
}

func TestToggleUnsupportedLeavesSelectionUntouched(t *testing.T) {
	st := NewState()
	st.Stage = StagePlatforms
	st.Platforms = []string{"mastodon"}
	m := NewMachine(st)

	err := m.Toggle("instagram")
	var unsupported *UnsupportedPlatformError
	tester.True(t, errors.As(err, &unsupported))
	tester.Eq(t, unsupported.Platform.ID, "instagram")
	tester.True(t, strings.Contains(err.Error(), "Instagram coming soon!"))
	tester.Eq(t, st.Platforms, []string{"mastodon"})
}

func TestToggleUnknownPlatform(t *testing.T) {
	m := NewMachine(NewState())
	err := m.Toggle("myspace")
	tester.True(t, err != nil)
	var unsupported *UnsupportedPlatformError
	tester.False(t, errors.As(err, &unsupported), "unknown is not the coming-soon case")
}

func TestConfirmPlatformsEmpty(t *testing.T) {
	st := NewState()
	st.Stage = StagePlatforms
	m := NewMachine(st)

	_, _, err := m.ConfirmPlatforms()
	tester.ErrIs(t, err, ErrEmptySelection)
	tester.Eq(t, st.Stage, StagePlatforms, "empty confirm must not advance")
}

func TestConfirmPlatformsOutsideSelection(t *testing.T) {
	// A stray confirm after the wizard finished must not rewind.
	st := NewState()
	st.Stage = StageReady
	st.Platforms = []string{"bluesky"}
	m := NewMachine(st)

	_, _, err := m.ConfirmPlatforms()
	tester.ErrIs(t, err, ErrNotSelecting)
	tester.Eq(t, st.Stage, StageReady)

	// Nor may it skip the earlier stages from intro.
	st = NewState()
	m = NewMachine(st)
	tester.NoErr(t, m.Toggle("bluesky"))
	_, _, err = m.ConfirmPlatforms()
	tester.ErrIs(t, err, ErrNotSelecting)
	tester.Eq(t, st.Stage, StageIntro)
}

func TestConfirmPlatformsSummary(t *testing.T) {
	st := NewState()
	st.Stage = StagePlatforms
	m := NewMachine(st)
	tester.NoErr(t, m.Toggle("bluesky"))
	tester.NoErr(t, m.Toggle("reddit"))

	summary, reply, err := m.ConfirmPlatforms()
	tester.NoErr(t, err)
	tester.Eq(t, summary, "Selected: Bluesky, Reddit")
	tester.Eq(t, reply.Widget, WidgetSchedulePreview)
	tester.Eq(t, st.Stage, StageSchedule)
}

func TestScheduleLines(t *testing.T) {
	st := NewState()
	st.Platforms = []string{"bluesky", "reddit"}

	lines := ScheduleLines(st)
	tester.Eq(t, len(lines), 2)
	tester.Eq(t, lines[0].Times, "09:00 & 12:00 & 17:00")
	tester.Eq(t, lines[0].Icon, "🦋")
	tester.Eq(t, lines[1].Times, "10:00 & 19:00")
	tester.Eq(t, lines[1].Name, "Reddit")
}

func TestScheduleLinesNilState(t *testing.T) {
	tester.Eq(t, len(ScheduleLines(nil)), 0)
}

func TestRemoveAsset(t *testing.T) {
	st := NewState()
	tester.True(t, st.AddAsset(Asset{ID: "1", Name: "logo.png"}))
	tester.True(t, st.AddAsset(Asset{ID: "2", Name: "hero.jpg"}))
	tester.False(t, st.AddAsset(Asset{Name: "blank id"}))

	tester.True(t, st.RemoveAsset("1"))
	tester.False(t, st.RemoveAsset("1"))
	tester.Eq(t, len(st.Assets), 1)
	tester.Eq(t, st.Assets[0].ID, "2")
}
