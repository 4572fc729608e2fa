package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func TestMouseWheelThrottle(t *testing.T) {
	lastMouseWheelEvent = time.Time{}

	wheel := tea.MouseWheelMsg{X: 10, Y: 10, Button: tea.MouseWheelDown}
	if mouseEventFilter(nil, wheel) == nil {
		t.Fatalf("expected first wheel event to pass through")
	}
	if mouseEventFilter(nil, wheel) != nil {
		t.Fatalf("expected second wheel event to be throttled")
	}
}

func TestMouseMotionDropped(t *testing.T) {
	motion := tea.MouseMotionMsg{X: 1, Y: 1}
	if mouseEventFilter(nil, motion) != nil {
		t.Fatalf("expected motion event to be dropped")
	}
	click := tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft}
	if mouseEventFilter(nil, click) == nil {
		t.Fatalf("expected click to pass through")
	}
}

func TestRootCmdRequiresDeck(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error without a deck argument")
	}
}

func TestRootCmdVersion(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version error = %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Fatalf("version output %q should contain %q", out.String(), version)
	}
}

func TestRootCmdNoWatchFlag(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Flags().Lookup("no-watch") == nil {
		t.Fatal("expected --no-watch flag")
	}
}
