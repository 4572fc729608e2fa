package carousel

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/slider"
	"github.com/andyrewlee/glide/internal/ui/common"
)

const (
	activeGlyph   = "●"
	inactiveGlyph = "○"
)

func indicatorZoneID(i int) string {
	return fmt.Sprintf("glide-indicator-%d", i)
}

// View renders the visible window of the strip, the indicators and the
// status line.
func (m *Model) View() string {
	defer perf.Time("carousel.view")()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := m.renderStrip()
	if m.help.ShowAll {
		rows = m.overlayHelp(rows)
	}
	strip := strings.Join(rows, "\n")
	indicators := m.renderIndicators()
	status := ""
	if m.layout.ShowStatus() {
		status = m.renderStatus()
	}
	return m.layout.Render(strip, indicators, status)
}

func (m *Model) renderStrip() []string {
	h := m.slideHeight()
	if len(m.slides) == 0 {
		text := m.styles.Empty.Render("no slides")
		if m.ctrl.State() == slider.StateLoading {
			text = m.styles.Loading.Render("loading…")
		}
		return placeCentered(text, m.width, h)
	}

	off := int(math.Round(m.offset))
	first := off / m.width
	last := (off + m.width - 1) / m.width
	if last > len(m.slides)-1 {
		last = len(m.slides) - 1
	}

	lines := make([]string, h)
	for i := first; i <= last; i++ {
		block := m.renderSlide(i, h)
		for r := range lines {
			lines[r] += block[r]
		}
	}
	local := off - first*m.width
	for r := range lines {
		lines[r] = ansi.Cut(lines[r], local, local+m.width)
	}
	return lines
}

// renderSlide returns exactly h lines of exactly m.width columns.
func (m *Model) renderSlide(i, h int) []string {
	s := m.slides[i]
	content := m.styles.SlideTitle.Render(s.Title)
	if s.Body != "" {
		content += "\n\n" + m.styles.SlideBody.Render(s.Body)
	}
	frameW := m.styles.Slide.GetHorizontalFrameSize()
	frameH := m.styles.Slide.GetVerticalFrameSize()
	box := m.styles.Slide.
		Width(max(1, m.width-frameW)).
		Height(max(1, h-frameH)).
		Render(content)
	return fitLines(strings.Split(box, "\n"), m.width, h)
}

func (m *Model) renderIndicators() string {
	n := len(m.slides)
	m.hits = m.hits[:0]
	if n == 0 || !m.layout.ShowIndicators() {
		return ""
	}
	// Each glyph is one column, separated by a space.
	total := n*2 - 1
	pad := max(0, (m.width-total)/2)
	row := m.layout.IndicatorRow()

	parts := make([]string, n)
	for i := 0; i < n; i++ {
		glyph := m.styles.Indicator.Render(inactiveGlyph)
		if m.ctrl.IsButtonActive(i) {
			glyph = m.styles.ActiveIndicator.Render(activeGlyph)
		}
		if m.zone != nil {
			glyph = m.zone.Mark(indicatorZoneID(i), glyph)
		}
		parts[i] = glyph
		m.hits = append(m.hits, common.HitRegion{
			ID:     indicatorZoneID(i),
			X:      pad + i*2,
			Y:      row,
			Width:  1,
			Height: 1,
		})
	}
	return strings.Repeat(" ", pad) + strings.Join(parts, " ")
}

func (m *Model) renderStatus() string {
	snap := m.ctrl.Snapshot()
	state := m.styles.StatusState.
		Foreground(common.StateColor(snap.State.String())).
		Render(snap.State.String())

	position := "-/-"
	title := ""
	if snap.HasIndex {
		position = fmt.Sprintf("%d/%d", snap.Index+1, snap.Count)
		if snap.Index < len(m.slides) {
			title = m.slides[snap.Index].Title
		}
	}
	if m.status != "" {
		title = m.status
	}

	left := state + " " + m.styles.Status.Render(position)
	right := m.help.ShortHelpView(m.keymap.ShortHelp())
	room := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if room > 0 && title != "" {
		left += " " + m.styles.Status.Render(runewidth.Truncate(title, room, "…"))
	}
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "")
}

// overlayHelp draws the full key help over the bottom rows of the strip.
func (m *Model) overlayHelp(rows []string) []string {
	help := strings.Split(m.help.FullHelpView(m.keymap.FullHelp()), "\n")
	n := min(len(help), len(rows))
	if len(help) > n {
		help = help[:n]
	}
	copy(rows[len(rows)-n:], fitLines(help, m.width, n))
	return rows
}

// fitLines pads or truncates lines to exactly width columns and h rows.
func fitLines(lines []string, width, h int) []string {
	out := make([]string, h)
	for r := 0; r < h; r++ {
		line := ""
		if r < len(lines) {
			line = ansi.Truncate(lines[r], width, "")
		}
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		out[r] = line
	}
	return out
}

func placeCentered(text string, width, h int) []string {
	placed := lipgloss.Place(width, h, lipgloss.Center, lipgloss.Center, text)
	return fitLines(strings.Split(placed, "\n"), width, h)
}
