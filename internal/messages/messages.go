package messages

import (
	"github.com/andyrewlee/glide/internal/deck"
)

// FrameTick drives one animation frame. Queued frame callbacks run on it.
type FrameTick struct{}

// AdvanceTick fires a scheduled repeating task.
type AdvanceTick struct {
	ID int
}

// DeckLoaded is sent when a deck file has been read. Seq identifies the
// load request so superseded results can be dropped.
type DeckLoaded struct {
	Path   string
	Seq    int
	Slides []deck.Slide
	Err    error
}

// DeckChanged is sent when the deck file changed on disk.
type DeckChanged struct {
	Path string
}

// SlideChanged reports the carousel's new current index, -1 when empty.
type SlideChanged struct {
	Index int
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Err == nil {
		return e.Context
	}
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}
