package carousel

import (
	"math"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/ui/common"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.FrameTick:
		m.handleFrame()
	case messages.AdvanceTick:
		m.handleAdvance(msg.ID)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg)
	case tea.MouseClickMsg:
		m.handleMouseClick(msg)
	case tea.KeyPressMsg:
		m.handleKey(msg)
	}
	return m, m.flush()
}

// SetSize resizes the viewport. A width change is a resize event.
func (m *Model) SetSize(width, height int) {
	changed := width != m.width
	m.width = width
	m.height = height
	m.layout.Resize(width, height)
	m.help.SetWidth(width)
	m.clampOffset()
	if changed {
		m.emit(m.resizeSubs)
	}
}

func (m *Model) handleFrame() {
	defer perf.Time("carousel.frame")()
	m.frameRequested = false
	m.stepAnimation()

	queued := m.frames
	m.frames = nil
	for _, fn := range queued {
		fn()
	}

	if m.animating {
		m.requestTick()
	}
}

func (m *Model) stepAnimation() {
	if !m.animating {
		return
	}
	diff := m.target - m.offset
	if math.Abs(diff) < 1 {
		m.offset = m.target
		m.animating = false
		return
	}
	step := diff * easing
	if math.Abs(step) < 1 {
		step = math.Copysign(1, diff)
	}
	m.offset += step
}

func (m *Model) handleAdvance(id int) {
	entry, ok := m.timers[id]
	if !ok {
		return
	}
	m.pending = append(m.pending, common.TickMsg(entry.interval, messages.AdvanceTick{ID: id}))
	entry.fn()
}

// userScroll moves the strip the way a person dragging it would: any
// animation stops and subscribers see a scroll event.
func (m *Model) userScroll(delta float64) {
	if m.width <= 0 || len(m.slides) == 0 {
		return
	}
	m.animating = false
	next := m.clamp(m.offset + delta)
	m.target = next
	if next == m.offset {
		return
	}
	m.offset = next
	m.emit(m.scrollSubs)
}

func (m *Model) wheelStep() float64 {
	if m.scrollStep > 0 {
		return float64(m.scrollStep)
	}
	return float64(common.ScrollDeltaForWidth(m.width, wheelFactor))
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) {
	switch msg.Button {
	case tea.MouseWheelUp, tea.MouseWheelLeft:
		m.userScroll(-m.wheelStep())
	case tea.MouseWheelDown, tea.MouseWheelRight:
		m.userScroll(m.wheelStep())
	}
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) {
	if msg.Button != tea.MouseLeft {
		return
	}
	if i, ok := m.indicatorAt(msg.X, msg.Y); ok {
		m.ctrl.Select(i)
	}
}

func (m *Model) indicatorAt(x, y int) (int, bool) {
	if m.zone != nil {
		for i := range m.slides {
			z := m.zone.Get(indicatorZoneID(i))
			if z.IsZero() {
				continue
			}
			if x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY {
				return i, true
			}
		}
	}
	if hit, ok := common.HitTest(m.hits, x, y); ok {
		for i := range m.slides {
			if indicatorZoneID(i) == hit.ID {
				return i, true
			}
		}
	}
	return -1, false
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, m.keymap.Prev):
		m.selectRelative(-1)
	case key.Matches(msg, m.keymap.Next):
		m.selectRelative(1)
	case key.Matches(msg, m.keymap.First):
		m.ctrl.Select(0)
	case key.Matches(msg, m.keymap.Last):
		m.ctrl.Select(m.ctrl.Count() - 1)
	case key.Matches(msg, m.keymap.ScrollLeft):
		m.userScroll(-m.wheelStep())
	case key.Matches(msg, m.keymap.ScrollRight):
		m.userScroll(m.wheelStep())
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if t := msg.Text; len(t) == 1 && t[0] >= '1' && t[0] <= '9' {
			m.ctrl.Select(int(t[0] - '1'))
		}
	}
}

func (m *Model) selectRelative(delta int) {
	i, ok := m.ctrl.CurrentIndex()
	if !ok {
		return
	}
	m.ctrl.Select(i + delta)
}
