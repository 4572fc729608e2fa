package common

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Tokyo Night-inspired color palette
var (
	ColorForeground = lipgloss.Color("#a9b1d6")
	ColorMuted      = lipgloss.Color("#565f89")
	ColorBorder     = lipgloss.Color("#292e42")

	ColorPrimary   = lipgloss.Color("#7aa2f7") // Active indicator, focus
	ColorSecondary = lipgloss.Color("#bb9af7")
	ColorSuccess   = lipgloss.Color("#9ece6a")
	ColorWarning   = lipgloss.Color("#e0af68")
	ColorError     = lipgloss.Color("#f7768e")
	ColorInfo      = lipgloss.Color("#7dcfff")

	ColorSurface1 = lipgloss.Color("#1f2335")
	ColorSurface2 = lipgloss.Color("#24283b")
)

// StateColor returns the status line accent for a controller state name.
func StateColor(state string) color.Color {
	switch state {
	case "idle":
		return ColorSuccess
	case "scrolling":
		return ColorInfo
	case "resizing":
		return ColorWarning
	case "loading":
		return ColorSecondary
	default:
		return ColorMuted
	}
}
