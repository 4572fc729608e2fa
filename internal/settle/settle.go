// Package settle detects when continuous motion has come to rest by sampling
// a value once per animation frame.
//
// Terminals and most embedding hosts have no "scroll finished" or "resize
// finished" event. A value is considered settled once it has stayed unchanged
// for a stability window of frames, or once a hard frame budget runs out so a
// jittering source still terminates.
package settle

const (
	// DefaultStabilityFrames is the number of unchanged frames after the last
	// observed change that counts as settled.
	DefaultStabilityFrames = 20
	// DefaultMaxFrames bounds a single wait (about 8 seconds at 60Hz).
	DefaultMaxFrames = 500
)

// FrameScheduler runs a callback on the next animation frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// Options tunes a wait.
type Options struct {
	StabilityFrames int
	MaxFrames       int
}

// DefaultOptions returns the standard stability window and frame budget.
func DefaultOptions() Options {
	return Options{
		StabilityFrames: DefaultStabilityFrames,
		MaxFrames:       DefaultMaxFrames,
	}
}

func (o Options) normalized() Options {
	if o.StabilityFrames <= 0 {
		o.StabilityFrames = DefaultStabilityFrames
	}
	if o.MaxFrames <= 0 {
		o.MaxFrames = DefaultMaxFrames
	}
	return o
}

// AwaitStable samples a value on every frame and calls done once the value
// has not changed for more than opts.StabilityFrames frames, or after
// opts.MaxFrames frames, whichever comes first. The first sample is taken
// synchronously. done is called exactly once and never synchronously.
func AwaitStable[T any](frames FrameScheduler, sample func() T, equal func(a, b T) bool, opts Options, done func()) {
	opts = opts.normalized()

	lastChanged := 0
	last := sample()

	var tick func(frame int)
	tick = func(frame int) {
		if frame >= opts.MaxFrames || frame-lastChanged > opts.StabilityFrames {
			if done != nil {
				done()
			}
			return
		}
		if current := sample(); !equal(current, last) {
			lastChanged = frame
			last = current
		}
		frames.RequestFrame(func() { tick(frame + 1) })
	}
	tick(0)
}

// Offsetter exposes the horizontal scroll position of a surface.
type Offsetter interface {
	Offset() float64
}

// Viewport exposes the visible width of a surface.
type Viewport interface {
	ViewportWidth() float64
}

// AwaitScrollEnd waits until the surface offset stops moving.
func AwaitScrollEnd(frames FrameScheduler, surface Offsetter, opts Options, done func()) {
	AwaitStable(frames, surface.Offset, sameFloat, opts, done)
}

// AwaitResizeEnd waits until the viewport width stops changing.
func AwaitResizeEnd(frames FrameScheduler, viewport Viewport, opts Options, done func()) {
	AwaitStable(frames, viewport.ViewportWidth, sameFloat, opts, done)
}

func sameFloat(a, b float64) bool { return a == b }
