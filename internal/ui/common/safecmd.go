package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
)

func recoverInto(kind string, msg *tea.Msg) {
	if r := recover(); r != nil {
		logging.Error("panic in %s: %v\n%s", kind, r, debug.Stack())
		*msg = messages.Error{Err: fmt.Errorf("%s panic: %v", kind, r), Context: kind, Logged: true}
	}
}

// SafeCmd wraps a command with panic recovery.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer recoverInto("command", &msg)
		return cmd()
	}
}

// SafeBatch wraps commands in panic recovery before batching.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	safe := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		safe = append(safe, SafeCmd(cmd))
	}
	switch len(safe) {
	case 0:
		return nil
	case 1:
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick wraps tea.Tick with panic recovery in the callback.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer recoverInto("tick", &msg)
		return fn(t)
	})
}

// TickMsg delivers msg after d.
func TickMsg(d time.Duration, msg tea.Msg) tea.Cmd {
	return SafeTick(d, func(time.Time) tea.Msg { return msg })
}
