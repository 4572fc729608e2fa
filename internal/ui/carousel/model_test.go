package carousel

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/deck"
	"github.com/andyrewlee/glide/internal/keymap"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/slider"
)

func testSlides(n int) []deck.Slide {
	slides := make([]deck.Slide, n)
	for i := range slides {
		slides[i] = deck.Slide{Title: string(rune('A' + i)), Body: "body"}
	}
	return slides
}

func newTestModel(t *testing.T, n int) *Model {
	t.Helper()
	cfg := config.SliderConfig{
		Interval:        time.Millisecond,
		StabilityFrames: 20,
		MaxFrames:       500,
		FrameInterval:   time.Millisecond,
	}
	m := New(cfg, keymap.New(config.KeyMapConfig{}))
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 8})
	m.SetSlides(testSlides(n))
	m.SetLoading(false)
	return m
}

func runFrames(m *Model, n int) {
	for i := 0; i < n; i++ {
		m.Update(messages.FrameTick{})
	}
}

// settleAll pumps frames until no animation or frame work remains.
func settleAll(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !m.animating && len(m.frames) == 0 {
			return
		}
		m.Update(messages.FrameTick{})
	}
	t.Fatalf("carousel did not settle: offset=%v target=%v frames=%d", m.offset, m.target, len(m.frames))
}

func liveTimerID(t *testing.T, m *Model) int {
	t.Helper()
	if len(m.timers) != 1 {
		t.Fatalf("expected exactly one live timer, got %d", len(m.timers))
	}
	for id := range m.timers {
		return id
	}
	return 0
}

func TestModel_StartsLoadingWithoutTimer(t *testing.T) {
	m := New(config.SliderConfig{}, keymap.New(config.KeyMapConfig{}))
	if m.ctrl.State() != slider.StateLoading {
		t.Fatalf("state = %v, want loading", m.ctrl.State())
	}
	if len(m.timers) != 0 {
		t.Fatalf("timers = %d, want 0 while loading", len(m.timers))
	}
	if m.Init() != nil {
		t.Fatal("Init should have nothing to flush while loading")
	}
}

func TestModel_LoadedStartsTimer(t *testing.T) {
	m := newTestModel(t, 3)
	if m.ctrl.State() != slider.StateIdle {
		t.Fatalf("state = %v, want idle", m.ctrl.State())
	}
	if i, ok := m.ctrl.CurrentIndex(); !ok || i != 0 {
		t.Fatalf("index = %d, %v", i, ok)
	}
	liveTimerID(t, m)
}

func TestModel_SelectAnimatesToSlide(t *testing.T) {
	m := newTestModel(t, 3)

	if cmd := m.Select(2); cmd == nil {
		t.Fatal("Select should schedule a frame")
	}
	if i, _ := m.ctrl.CurrentIndex(); i != 2 {
		t.Fatalf("index = %d, want 2 immediately", i)
	}
	if !m.animating || m.offset != 0 {
		t.Fatalf("expected animation from 0, offset=%v animating=%v", m.offset, m.animating)
	}

	settleAll(t, m)
	if m.offset != 40 {
		t.Fatalf("offset = %v, want 40", m.offset)
	}
	liveTimerID(t, m)
}

func TestModel_AdvanceTickStepsAndIgnoresStaleIDs(t *testing.T) {
	m := newTestModel(t, 2)
	id := liveTimerID(t, m)

	m.Update(messages.AdvanceTick{ID: id + 100})
	if i, _ := m.ctrl.CurrentIndex(); i != 0 {
		t.Fatalf("stale tick moved index to %d", i)
	}

	_, cmd := m.Update(messages.AdvanceTick{ID: id})
	if cmd == nil {
		t.Fatal("live tick should re-arm")
	}
	if i, _ := m.ctrl.CurrentIndex(); i != 1 {
		t.Fatalf("index = %d, want 1", i)
	}
	settleAll(t, m)
	if m.offset != 20 {
		t.Fatalf("offset = %v, want 20", m.offset)
	}

	m.Update(messages.AdvanceTick{ID: id})
	if i, _ := m.ctrl.CurrentIndex(); i != 0 {
		t.Fatalf("index = %d, want wrap to 0", i)
	}
	settleAll(t, m)
	if m.offset != 0 {
		t.Fatalf("offset = %v, want 0 after wrap", m.offset)
	}
}

func TestModel_WheelScrollSnapsBack(t *testing.T) {
	m := newTestModel(t, 3)

	m.Update(tea.MouseWheelMsg{X: 1, Y: 1, Button: tea.MouseWheelRight})
	if m.ctrl.State() != slider.StateScrolling {
		t.Fatalf("state = %v, want scrolling", m.ctrl.State())
	}
	if len(m.timers) != 0 {
		t.Fatalf("timer should be cancelled while scrolling, %d live", len(m.timers))
	}
	if m.offset != 2 {
		t.Fatalf("offset = %v, want one wheel step (2)", m.offset)
	}

	runFrames(m, 25)
	if m.ctrl.State() != slider.StateIdle {
		t.Fatalf("state = %v, want idle after settling", m.ctrl.State())
	}
	settleAll(t, m)
	if m.offset != 0 {
		t.Fatalf("offset = %v, want snap back to 0", m.offset)
	}
	liveTimerID(t, m)
}

func TestModel_ScrollKeysPastMidpointSnapForward(t *testing.T) {
	m := newTestModel(t, 3)
	right := tea.KeyPressMsg{Code: 'l', Text: "l"}
	for i := 0; i < 6; i++ {
		m.Update(right)
	}
	if m.offset != 12 {
		t.Fatalf("offset = %v, want 12", m.offset)
	}
	runFrames(m, 25)
	settleAll(t, m)
	if i, _ := m.ctrl.CurrentIndex(); i != 1 {
		t.Fatalf("index = %d, want 1", i)
	}
	if m.offset != 20 {
		t.Fatalf("offset = %v, want 20", m.offset)
	}
}

func TestModel_WheelAtEdgeIsNotAScroll(t *testing.T) {
	m := newTestModel(t, 3)
	m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelLeft})
	if m.ctrl.State() != slider.StateIdle {
		t.Fatalf("state = %v, clamped wheel should not scroll", m.ctrl.State())
	}
}

func TestModel_ResizeRealigns(t *testing.T) {
	m := newTestModel(t, 3)
	m.Select(1)
	settleAll(t, m)

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	if m.ctrl.State() != slider.StateResizing {
		t.Fatalf("state = %v, want resizing", m.ctrl.State())
	}
	if len(m.timers) != 0 {
		t.Fatal("timer should be cancelled while resizing")
	}
	runFrames(m, 25)
	if m.ctrl.State() != slider.StateIdle {
		t.Fatalf("state = %v, want idle", m.ctrl.State())
	}
	settleAll(t, m)
	if m.offset != 30 {
		t.Fatalf("offset = %v, want 30 after realign", m.offset)
	}
	liveTimerID(t, m)
}

func TestModel_HeightOnlyResizeIsIgnored(t *testing.T) {
	m := newTestModel(t, 3)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 12})
	if m.ctrl.State() != slider.StateIdle {
		t.Fatalf("state = %v, height change should not be a resize", m.ctrl.State())
	}
}

func TestModel_NavigationKeys(t *testing.T) {
	m := newTestModel(t, 4)

	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if i, _ := m.ctrl.CurrentIndex(); i != 1 {
		t.Fatalf("next: index = %d, want 1", i)
	}
	m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if i, _ := m.ctrl.CurrentIndex(); i != 2 {
		t.Fatalf("digit: index = %d, want 2", i)
	}
	m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if i, _ := m.ctrl.CurrentIndex(); i != 2 {
		t.Fatalf("out of range digit moved index to %d", i)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if i, _ := m.ctrl.CurrentIndex(); i != 3 {
		t.Fatalf("last: index = %d, want 3", i)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if i, _ := m.ctrl.CurrentIndex(); i != 3 {
		t.Fatalf("next past end moved index to %d", i)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if i, _ := m.ctrl.CurrentIndex(); i != 0 {
		t.Fatalf("first: index = %d, want 0", i)
	}
	liveTimerID(t, m)
}

func TestModel_ClickIndicatorSelects(t *testing.T) {
	m := newTestModel(t, 3)
	m.View()
	if len(m.hits) != 3 {
		t.Fatalf("hits = %d, want 3", len(m.hits))
	}
	hit := m.hits[2]
	m.Update(tea.MouseClickMsg{X: hit.X, Y: hit.Y, Button: tea.MouseLeft})
	if i, _ := m.ctrl.CurrentIndex(); i != 2 {
		t.Fatalf("index = %d, want 2", i)
	}

	m.Update(tea.MouseClickMsg{X: hit.X + 1, Y: hit.Y, Button: tea.MouseLeft})
	if i, _ := m.ctrl.CurrentIndex(); i != 2 {
		t.Fatalf("click between indicators moved index to %d", i)
	}
}

func TestModel_SlideChangedMessages(t *testing.T) {
	m := newTestModel(t, 3)
	m.pending = nil
	m.ctrl.Select(1)
	var found bool
	for _, cmd := range m.pending {
		if msg, ok := cmd().(messages.SlideChanged); ok && msg.Index == 1 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected SlideChanged{1} to be queued")
	}
}

func TestModel_SetSlidesShrinkClampsIndex(t *testing.T) {
	m := newTestModel(t, 4)
	m.Select(3)
	settleAll(t, m)

	m.SetSlides(testSlides(2))
	if i, _ := m.ctrl.CurrentIndex(); i != 1 {
		t.Fatalf("index = %d, want 1", i)
	}
	if m.offset != 20 {
		t.Fatalf("offset = %v, want clamp to 20", m.offset)
	}

	m.SetSlides(nil)
	if _, ok := m.ctrl.CurrentIndex(); ok {
		t.Fatal("empty deck should have no index")
	}
	if len(m.timers) != 0 {
		t.Fatal("empty deck should stop the timer")
	}
}

func TestModel_CloseDropsScheduledWork(t *testing.T) {
	m := newTestModel(t, 3)
	id := liveTimerID(t, m)
	m.Select(1)
	m.Close()

	m.Update(messages.AdvanceTick{ID: id})
	runFrames(m, 30)
	if m.ctrl.State() != slider.StateClosed {
		t.Fatalf("state = %v, want closed", m.ctrl.State())
	}
	if len(m.timers) != 0 {
		t.Fatal("timers should be cleared on close")
	}
}

func TestView_RendersVisibleWindow(t *testing.T) {
	m := newTestModel(t, 3)
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 8 {
		t.Fatalf("view has %d lines, want 8", len(lines))
	}
	if !strings.Contains(view, "A") || strings.Contains(view, "C") {
		t.Fatalf("first slide should be the only visible one:\n%s", view)
	}
	if strings.Count(view, activeGlyph) != 1 || strings.Count(view, inactiveGlyph) != 2 {
		t.Fatalf("unexpected indicators:\n%s", view)
	}
	if !strings.Contains(view, "1/3") {
		t.Fatalf("status should show position:\n%s", view)
	}
}

func TestView_LoadingAndEmpty(t *testing.T) {
	m := New(config.SliderConfig{}, keymap.New(config.KeyMapConfig{}))
	if m.View() != "" {
		t.Fatal("zero-sized view should be empty")
	}
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 6})
	if !strings.Contains(m.View(), "loading") {
		t.Fatalf("expected loading placeholder:\n%s", m.View())
	}
	m.SetLoading(false)
	if !strings.Contains(m.View(), "no slides") {
		t.Fatalf("expected empty placeholder:\n%s", m.View())
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines([]string{"abcdef", "x"}, 4, 3)
	want := []string{"abcd", "x   ", "    "}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fitLines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestView_CompactHidesStatus(t *testing.T) {
	m := newTestModel(t, 3)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 4})

	view := m.View()
	if lines := strings.Split(view, "\n"); len(lines) != 4 {
		t.Fatalf("view has %d lines, want 4", len(lines))
	}
	if strings.Contains(view, "1/3") {
		t.Fatalf("status line should be hidden:\n%s", view)
	}
	if strings.Count(view, activeGlyph) != 1 {
		t.Fatalf("indicators should stay visible:\n%s", view)
	}

	// Indicators sit right below the three strip rows.
	m.Update(tea.MouseClickMsg{X: 9, Y: 3, Button: tea.MouseLeft})
	if i, _ := m.ctrl.CurrentIndex(); i != 1 {
		t.Fatalf("index = %d, want 1 after clicking the second indicator", i)
	}
}

func TestSnap_RepeatWhileAnimatingKeepsTarget(t *testing.T) {
	m := newTestModel(t, 3)
	m.ScrollTo(5, false)

	m.ctrl.Snap()
	if m.target != 0 || !m.animating || m.offset != 5 {
		t.Fatalf("after first snap: offset=%v target=%v animating=%v", m.offset, m.target, m.animating)
	}
	queued := len(m.pending)

	m.ctrl.Snap()
	if m.target != 0 || len(m.pending) != queued {
		t.Fatalf("second snap re-armed: target=%v pending %d -> %d", m.target, queued, len(m.pending))
	}

	settleAll(t, m)
	if m.offset != 0 {
		t.Fatalf("offset = %v, want 0 once settled", m.offset)
	}
	m.ctrl.Snap()
	if m.animating {
		t.Fatal("snap on a boundary should not animate")
	}
	if i, _ := m.ctrl.CurrentIndex(); i != 0 {
		t.Fatalf("index = %d, want 0", i)
	}
}

func TestHelpKeyTogglesFullHelp(t *testing.T) {
	m := newTestModel(t, 3)
	// Wide enough for every help column.
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if strings.Contains(m.View(), "scroll left") {
		t.Fatal("full help should start hidden")
	}

	m.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	if !m.ShowingHelp() {
		t.Fatal("? should show the full help")
	}
	view := m.View()
	if !strings.Contains(view, "scroll left") {
		t.Fatalf("full help missing from view:\n%s", view)
	}
	if lines := strings.Split(view, "\n"); len(lines) != 8 {
		t.Fatalf("help overlay changed the height to %d", len(lines))
	}

	m.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	if m.ShowingHelp() {
		t.Fatal("second ? should hide the full help")
	}
}

func TestIndicatorHitMapsToSlide(t *testing.T) {
	m := newTestModel(t, 3)
	m.View()
	// 20 columns, 3 glyphs: padding 7, glyphs at 7, 9 and 11 on row 6.
	if i, ok := m.indicatorAt(11, 6); !ok || i != 2 {
		t.Fatalf("indicatorAt(11, 6) = %d, %v, want 2", i, ok)
	}
	if _, ok := m.indicatorAt(8, 6); ok {
		t.Fatal("gap between glyphs should not hit")
	}
}
