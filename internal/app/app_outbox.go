package app

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/logging"
)

const outboxSize = 64

// outbox carries messages from background work (the deck watcher and its
// supervisor) to the running program, in the order they were posted.
type outbox struct {
	queue chan tea.Msg
	once  sync.Once
}

func newOutbox(size int) *outbox {
	return &outbox{queue: make(chan tea.Msg, size)}
}

// start delivers queued messages through send. Only the first call counts.
func (o *outbox) start(send func(tea.Msg)) {
	if send == nil {
		return
	}
	o.once.Do(func() {
		go func() {
			for msg := range o.queue {
				send(msg)
			}
		}()
	})
}

// post queues msg without blocking. It reports false when the queue is full.
func (o *outbox) post(msg tea.Msg) bool {
	if msg == nil {
		return true
	}
	select {
	case o.queue <- msg:
		return true
	default:
		return false
	}
}

// SetMsgSender connects background messages to the program, normally
// tea.Program.Send.
func (a *App) SetMsgSender(send func(tea.Msg)) {
	a.outbox.start(send)
}

func (a *App) post(msg tea.Msg) {
	if !a.outbox.post(msg) {
		// A later DeckChanged covers a dropped one.
		logging.Warn("outbox full, dropping %T", msg)
	}
}
