package carousel

import (
	"math"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/deck"
	"github.com/andyrewlee/glide/internal/keymap"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/slider"
	"github.com/andyrewlee/glide/internal/ui/common"
	"github.com/andyrewlee/glide/internal/ui/layout"
)

const (
	// easing is the share of the remaining distance covered per frame.
	easing = 0.35
	// wheelFactor divides the viewport width into wheel steps.
	wheelFactor = 8
)

type timerEntry struct {
	interval time.Duration
	fn       func()
}

// Model hosts a slider.Controller in a bubbletea program. It is the
// controller's Surface and Scheduler: frames and timers become tea.Tick
// commands, user scrolling and window resizes become surface events.
type Model struct {
	slides []deck.Slide
	ctrl   *slider.Controller

	width  int
	height int
	layout *layout.Manager

	offset    float64
	target    float64
	animating bool

	frameInterval time.Duration
	scrollStep    int

	frames         []func()
	frameRequested bool

	timers      map[int]timerEntry
	nextTimerID int

	scrollSubs map[int]func()
	resizeSubs map[int]func()
	nextSubID  int

	pending []tea.Cmd

	keymap keymap.KeyMap
	help   help.Model
	styles common.Styles
	zone   *zone.Manager
	hits   []common.HitRegion

	status string
}

// New creates a carousel that starts out loading.
func New(cfg config.SliderConfig, km keymap.KeyMap) *Model {
	m := &Model{
		frameInterval: cfg.FrameInterval,
		scrollStep:    cfg.ScrollStep,
		timers:        make(map[int]timerEntry),
		scrollSubs:    make(map[int]func()),
		resizeSubs:    make(map[int]func()),
		keymap:        km,
		help:          help.New(),
		styles:        common.DefaultStyles(),
		layout:        layout.NewManager(),
	}
	if m.frameInterval <= 0 {
		m.frameInterval = 16 * time.Millisecond
	}
	m.ctrl = slider.New(m, m, 0, slider.Options{
		Loading:  true,
		Interval: cfg.Interval,
		Settle:   cfg.SettleOptions(),
		OnChange: m.indexChanged,
	})
	return m
}

// SetZone sets the shared zone manager for click targets.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetStyles sets the styles for the carousel.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetStatus sets the message shown in the status line.
func (m *Model) SetStatus(status string) { m.status = status }

// Controller exposes the engine for read access.
func (m *Model) Controller() *slider.Controller { return m.ctrl }

// ShowingHelp reports whether the full key help is visible.
func (m *Model) ShowingHelp() bool { return m.help.ShowAll }

// Slides returns the loaded slides.
func (m *Model) Slides() []deck.Slide { return m.slides }

// CurrentSlide returns the current slide, if any.
func (m *Model) CurrentSlide() (deck.Slide, bool) {
	i, ok := m.ctrl.CurrentIndex()
	if !ok || i >= len(m.slides) {
		return deck.Slide{}, false
	}
	return m.slides[i], true
}

// Init flushes work queued while constructing the controller.
func (m *Model) Init() tea.Cmd { return m.flush() }

// SetLoading gates the carousel while content is (re)loaded.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.ctrl.SetLoading(loading)
	return m.flush()
}

// SetSlides replaces the deck. The controller keeps its index when it is
// still in range.
func (m *Model) SetSlides(slides []deck.Slide) tea.Cmd {
	m.slides = slides
	m.ctrl.SetCount(len(slides))
	m.clampOffset()
	return m.flush()
}

// Select behaves like clicking indicator i.
func (m *Model) Select(i int) tea.Cmd {
	m.ctrl.Select(i)
	return m.flush()
}

// Close tears the controller down. Pending ticks become no-ops.
func (m *Model) Close() {
	m.ctrl.Close()
	m.frames = nil
	for id := range m.timers {
		delete(m.timers, id)
	}
}

// Offset implements slider.Surface.
func (m *Model) Offset() float64 { return m.offset }

// ViewportWidth implements slider.Surface.
func (m *Model) ViewportWidth() float64 { return float64(m.width) }

// ScrollTo implements slider.Surface. Programmatic scrolls do not emit
// scroll events.
func (m *Model) ScrollTo(offset float64, animated bool) {
	offset = m.clamp(offset)
	if animated && m.animating && m.target == offset {
		return
	}
	if !animated || m.offset == offset {
		m.offset = offset
		m.target = offset
		m.animating = false
		return
	}
	m.target = offset
	m.animating = true
	m.requestTick()
}

// OnScroll implements slider.Surface.
func (m *Model) OnScroll(fn func()) func() {
	return m.subscribe(m.scrollSubs, fn)
}

// OnResize implements slider.Surface.
func (m *Model) OnResize(fn func()) func() {
	return m.subscribe(m.resizeSubs, fn)
}

// RequestFrame implements settle.FrameScheduler.
func (m *Model) RequestFrame(fn func()) {
	m.frames = append(m.frames, fn)
	m.requestTick()
}

// Every implements autoadvance.Scheduler.
func (m *Model) Every(d time.Duration, fn func()) (cancel func()) {
	m.nextTimerID++
	id := m.nextTimerID
	m.timers[id] = timerEntry{interval: d, fn: fn}
	m.pending = append(m.pending, common.TickMsg(d, messages.AdvanceTick{ID: id}))
	return func() { delete(m.timers, id) }
}

func (m *Model) subscribe(subs map[int]func(), fn func()) func() {
	m.nextSubID++
	id := m.nextSubID
	subs[id] = fn
	return func() { delete(subs, id) }
}

func (m *Model) emit(subs map[int]func()) {
	// Handlers may unsubscribe while we iterate.
	fns := make([]func(), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

func (m *Model) requestTick() {
	if m.frameRequested {
		return
	}
	m.frameRequested = true
	m.pending = append(m.pending, common.TickMsg(m.frameInterval, messages.FrameTick{}))
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return common.SafeBatch(cmds...)
}

func (m *Model) maxOffset() float64 {
	if m.width <= 0 || len(m.slides) < 2 {
		return 0
	}
	return float64(m.width * (len(m.slides) - 1))
}

func (m *Model) clamp(offset float64) float64 {
	return math.Max(0, math.Min(offset, m.maxOffset()))
}

func (m *Model) clampOffset() {
	m.offset = m.clamp(m.offset)
	m.target = m.clamp(m.target)
}

func (m *Model) slideHeight() int {
	return m.layout.StripHeight()
}

func (m *Model) indexChanged(index int) {
	m.pending = append(m.pending, func() tea.Msg {
		return messages.SlideChanged{Index: index}
	})
}
