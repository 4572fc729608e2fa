// Package slider keeps a carousel's current item in sync with its scroll
// surface.
//
// Three signals move the surface: the user scrolling it freely, explicit
// selection of an item (indicator buttons) and the auto-advance timer. A
// resize of the viewport invalidates every offset. The Controller folds them
// into one current index and drives the surface back onto item boundaries.
//
// All methods must be called from the UI loop that owns the Surface and the
// Scheduler. Nothing here is safe for concurrent use.
package slider

import (
	"math"
	"time"

	"github.com/andyrewlee/glide/internal/autoadvance"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/settle"
)

// State is the controller's machine state.
type State int

const (
	StateLoading State = iota
	StateIdle
	StateScrolling
	StateResizing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateIdle:
		return "idle"
	case StateScrolling:
		return "scrolling"
	case StateResizing:
		return "resizing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options configures a Controller.
type Options struct {
	// Loading starts the controller waiting for content. The auto-advance
	// timer does not run until SetLoading(false).
	Loading bool
	// Interval between automatic advances. Zero means autoadvance.DefaultInterval.
	Interval time.Duration
	// Settle tunes scroll-end and resize-end detection.
	Settle settle.Options
	// OnChange is called whenever the current index changes. It receives -1
	// when the carousel becomes empty.
	OnChange func(index int)
}

// Snapshot is the read side handed to views.
type Snapshot struct {
	State           State
	Count           int
	Index           int
	HasIndex        bool
	IsUserScrolling bool
	IsResizing      bool
}

// Controller owns the current index of a carousel.
type Controller struct {
	surface  Surface
	frames   settle.FrameScheduler
	timer    *autoadvance.Timer
	settle   settle.Options
	onChange func(int)

	count int
	index int
	state State

	// epoch increases on every transition; detector continuations compare
	// the epoch they started under before touching state.
	epoch       uint64
	unsubscribe []func()
}

// New creates a controller for count items and subscribes to the surface's
// scroll and resize events.
func New(surface Surface, sched Scheduler, count int, opts Options) *Controller {
	if count < 0 {
		count = 0
	}
	c := &Controller{
		surface:  surface,
		frames:   sched,
		timer:    autoadvance.New(sched, opts.Interval),
		settle:   opts.Settle,
		onChange: opts.OnChange,
		count:    count,
		index:    -1,
		state:    StateIdle,
	}
	if count > 0 {
		c.index = 0
	}
	if opts.Loading {
		c.state = StateLoading
	}
	c.unsubscribe = []func(){
		surface.OnScroll(c.HandleScroll),
		surface.OnResize(c.HandleResize),
	}
	c.restartTimer()
	return c
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// Count returns the number of items.
func (c *Controller) Count() int { return c.count }

// CurrentIndex returns the current item. ok is false when there are no items.
func (c *Controller) CurrentIndex() (index int, ok bool) {
	if c.count == 0 || c.index < 0 {
		return 0, false
	}
	return clamp(c.index, c.count), true
}

// IsButtonActive reports whether the indicator for item i is the current one.
func (c *Controller) IsButtonActive(i int) bool {
	idx, ok := c.CurrentIndex()
	return ok && idx == i
}

// IsUserScrolling reports whether a free scroll is waiting to settle.
func (c *Controller) IsUserScrolling() bool { return c.state == StateScrolling }

// IsResizing reports whether a viewport resize is waiting to settle.
func (c *Controller) IsResizing() bool { return c.state == StateResizing }

// TimerRunning reports whether the auto-advance timer is live.
func (c *Controller) TimerRunning() bool { return c.timer.Running() }

// Snapshot returns the state a view needs to render.
func (c *Controller) Snapshot() Snapshot {
	idx, ok := c.CurrentIndex()
	return Snapshot{
		State:           c.state,
		Count:           c.count,
		Index:           idx,
		HasIndex:        ok,
		IsUserScrolling: c.IsUserScrolling(),
		IsResizing:      c.IsResizing(),
	}
}

// HandleScroll reacts to a raw scroll event on the surface. The first event
// of a gesture stops the timer and waits for the surface to come to rest.
func (c *Controller) HandleScroll() {
	switch c.state {
	case StateIdle:
		c.timer.Cancel()
		c.transition(StateScrolling)
		epoch := c.epoch
		settle.AwaitScrollEnd(c.frames, c.surface, c.settle, func() {
			if !c.current(epoch) {
				return
			}
			c.Snap()
			c.transition(StateIdle)
			c.restartTimer()
		})
	case StateScrolling:
		c.timer.Cancel()
	}
}

// HandleResize reacts to a viewport resize. Once the width settles the
// surface is re-aligned on the current item without changing it.
func (c *Controller) HandleResize() {
	switch c.state {
	case StateIdle, StateScrolling:
		c.timer.Cancel()
		c.transition(StateResizing)
		epoch := c.epoch
		settle.AwaitResizeEnd(c.frames, c.surface, c.settle, func() {
			if !c.current(epoch) {
				return
			}
			c.realign()
			c.transition(StateIdle)
			c.restartTimer()
		})
	case StateResizing:
		c.timer.Cancel()
	}
}

// Select makes item j current and scrolls to it. The index changes
// immediately; it does not wait for the scroll to finish.
func (c *Controller) Select(j int) {
	if c.state == StateClosed || c.count == 0 || j < 0 || j >= c.count {
		return
	}
	c.timer.Cancel()
	target := c.surface.ViewportWidth() * float64(j)
	if math.Abs(c.surface.Offset()-target) != 0 {
		c.surface.ScrollTo(target, true)
	}
	c.setIndex(j)

	switch c.state {
	case StateLoading:
		return
	case StateResizing:
		// Re-aligned and restarted when the resize settles.
		return
	}
	c.transition(StateIdle)
	c.restartTimer()
}

// Snap moves the surface onto the nearest item boundary and makes that item
// current. An offset already on a boundary issues no scroll. While an
// animated surface is still moving, a repeat call re-requests the same
// target; surfaces treat that as a no-op.
func (c *Controller) Snap() {
	if c.state == StateClosed {
		return
	}
	if c.count == 0 {
		c.setIndex(-1)
		return
	}
	width := c.surface.ViewportWidth()
	if width <= 0 {
		c.setIndex(clamp(c.index, c.count))
		return
	}
	k, exact := NearestBoundary(c.surface.Offset(), width, c.count)
	if !exact {
		c.surface.ScrollTo(width*float64(k), true)
	}
	c.setIndex(k)
}

// SetLoading gates the carousel on its content. Entering loading stops the
// timer; leaving it resets the surface to the first item and starts the
// timer if it is not already running.
func (c *Controller) SetLoading(loading bool) {
	switch {
	case c.state == StateClosed:
	case loading:
		if c.state == StateLoading {
			return
		}
		c.timer.Cancel()
		c.transition(StateLoading)
	case c.state == StateLoading:
		c.surface.ScrollTo(0, true)
		if c.count > 0 {
			c.setIndex(0)
		}
		c.transition(StateIdle)
		if !c.timer.Running() {
			c.restartTimer()
		}
	}
}

// SetCount updates the number of items, keeping the current index in range.
func (c *Controller) SetCount(n int) {
	if c.state == StateClosed {
		return
	}
	if n < 0 {
		n = 0
	}
	prev := c.count
	c.count = n
	switch {
	case n == 0:
		c.timer.Cancel()
		c.setIndex(-1)
	case c.index < 0:
		c.setIndex(0)
	case c.index >= n:
		c.setIndex(n - 1)
	}
	if prev == 0 && n > 0 {
		c.restartTimer()
	}
}

// Close stops the timer, drops the surface subscriptions and turns any
// pending detector continuation into a no-op.
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}
	c.timer.Cancel()
	for _, unsubscribe := range c.unsubscribe {
		if unsubscribe != nil {
			unsubscribe()
		}
	}
	c.unsubscribe = nil
	c.transition(StateClosed)
}

// advance is the auto-advance tick.
func (c *Controller) advance() {
	if c.state != StateIdle || c.count == 0 {
		return
	}
	next, target := autoadvance.Step(clamp(c.index, c.count), c.count, c.surface.Offset(), c.surface.ViewportWidth())
	c.surface.ScrollTo(target, true)
	c.setIndex(next)
}

func (c *Controller) realign() {
	idx, ok := c.CurrentIndex()
	if !ok {
		return
	}
	c.surface.ScrollTo(c.surface.ViewportWidth()*float64(idx), true)
}

// restartTimer starts a fresh timer when the carousel can rotate and stops
// it otherwise. Timer.Start cancels before starting.
func (c *Controller) restartTimer() {
	if c.state != StateIdle || c.count == 0 {
		c.timer.Cancel()
		return
	}
	c.timer.Start(c.advance)
}

func (c *Controller) transition(to State) {
	if c.state != to {
		logging.Debug("slider: %s -> %s", c.state, to)
	}
	c.state = to
	c.epoch++
}

func (c *Controller) current(epoch uint64) bool {
	return c.state != StateClosed && c.epoch == epoch
}

func (c *Controller) setIndex(i int) {
	if i == c.index {
		return
	}
	c.index = i
	if c.onChange != nil {
		c.onChange(i)
	}
}

// NearestBoundary returns the item whose left edge is nearest to offset on a
// strip of n items, each width wide. exact reports that offset already sits
// on that edge. Offsets exactly halfway between two items resolve to the
// lower one. Offsets beyond the last item resolve to the last item.
func NearestBoundary(offset, width float64, n int) (index int, exact bool) {
	if n <= 0 {
		return -1, false
	}
	for k := 0; k < n; k++ {
		if offset == width*float64(k) {
			return k, true
		}
	}
	half := width / 2
	for k := 0; k < n; k++ {
		if offset <= width*float64(k)+half {
			return k, false
		}
	}
	return n - 1, false
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
