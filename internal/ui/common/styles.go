package common

import "charm.land/lipgloss/v2"

// Styles contains all the carousel styles
type Styles struct {
	// Slides
	Slide      lipgloss.Style
	SlideTitle lipgloss.Style
	SlideBody  lipgloss.Style

	// Indicators
	Indicator       lipgloss.Style
	ActiveIndicator lipgloss.Style

	// Status line
	Status      lipgloss.Style
	StatusState lipgloss.Style
	Help        lipgloss.Style

	Loading lipgloss.Style
	Empty   lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns the default styling
func DefaultStyles() Styles {
	return Styles{
		Slide: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2),
		SlideTitle: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		SlideBody: lipgloss.NewStyle().
			Foreground(ColorForeground),

		Indicator: lipgloss.NewStyle().
			Foreground(ColorMuted),
		ActiveIndicator: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(ColorMuted),
		StatusState: lipgloss.NewStyle().
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Loading: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true),
		Empty: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		ToastSuccess: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Background(ColorSurface2).
			Padding(0, 1),
		ToastError: lipgloss.NewStyle().
			Foreground(ColorError).
			Background(ColorSurface2).
			Padding(0, 1),
		ToastInfo: lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(ColorSurface1).
			Padding(0, 1),
	}
}
