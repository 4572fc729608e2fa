package slider

import (
	"github.com/andyrewlee/glide/internal/autoadvance"
	"github.com/andyrewlee/glide/internal/settle"
)

// Surface is the horizontally scrolling strip the controller drives.
// Offsets and widths are read live on every decision.
type Surface interface {
	Offset() float64
	ViewportWidth() float64
	// ScrollTo moves the strip. A new call supersedes any scroll in flight.
	ScrollTo(offset float64, animated bool)
	OnScroll(fn func()) (unsubscribe func())
	OnResize(fn func()) (unsubscribe func())
}

// Scheduler provides animation frames and periodic callbacks on the UI loop.
type Scheduler interface {
	settle.FrameScheduler
	autoadvance.Scheduler
}
