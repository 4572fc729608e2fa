package layout

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Mode determines which chrome rows are visible below the slide strip.
type Mode int

const (
	ModeFull    Mode = iota // strip + indicators + status
	ModeCompact             // strip + indicators
	ModeStrip               // strip only
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeCompact:
		return "compact"
	default:
		return "strip"
	}
}

// Manager splits the terminal into the slide strip and its chrome rows.
type Manager struct {
	mode Mode

	width  int
	height int

	stripHeight int

	// Configuration
	minStripRows int
}

// NewManager creates a new layout manager
func NewManager() *Manager {
	return &Manager{minStripRows: 3}
}

// Resize recalculates layout based on new dimensions
func (m *Manager) Resize(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)

	switch {
	case m.height >= m.minStripRows+2:
		m.mode = ModeFull
	case m.height >= m.minStripRows+1:
		m.mode = ModeCompact
	default:
		m.mode = ModeStrip
	}
	m.stripHeight = max(1, m.height-m.ChromeRows())
}

// Mode returns the current layout mode
func (m *Manager) Mode() Mode {
	return m.mode
}

// Width returns the strip width.
func (m *Manager) Width() int {
	return m.width
}

// Height returns the total height
func (m *Manager) Height() int {
	return m.height
}

// StripHeight returns the rows available to a slide.
func (m *Manager) StripHeight() int {
	return m.stripHeight
}

// ChromeRows returns the number of rows below the strip.
func (m *Manager) ChromeRows() int {
	switch m.mode {
	case ModeFull:
		return 2
	case ModeCompact:
		return 1
	default:
		return 0
	}
}

// IndicatorRow returns the row of the indicators, or -1 when hidden.
func (m *Manager) IndicatorRow() int {
	if !m.ShowIndicators() {
		return -1
	}
	return m.stripHeight
}

// ShowIndicators returns whether the indicator row should be shown
func (m *Manager) ShowIndicators() bool {
	return m.mode != ModeStrip
}

// ShowStatus returns whether the status line should be shown
func (m *Manager) ShowStatus() bool {
	return m.mode == ModeFull
}

// Render stacks the strip and the visible chrome rows.
func (m *Manager) Render(strip, indicators, status string) string {
	switch m.mode {
	case ModeFull:
		return lipgloss.JoinVertical(lipgloss.Left, strip, indicators, status)
	case ModeCompact:
		return lipgloss.JoinVertical(lipgloss.Left, strip, indicators)
	default:
		return strings.TrimRight(strip, "\n")
	}
}
