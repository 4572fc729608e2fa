package common

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/messages"
)

// ToastDismissed is sent when a toast should be dismissed
type ToastDismissed struct{}

type toast struct {
	message string
	level   messages.ToastLevel
}

// ToastModel manages toast notifications
type ToastModel struct {
	current   *toast
	showUntil time.Time
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates a new toast model
func NewToastModel() *ToastModel {
	return &ToastModel{
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// Show displays a toast notification
func (m *ToastModel) Show(message string, level messages.ToastLevel, duration time.Duration) tea.Cmd {
	m.current = &toast{message: message, level: level}
	m.showUntil = m.now().Add(duration)
	return TickMsg(duration, ToastDismissed{})
}

// ShowSuccess shows a success toast
func (m *ToastModel) ShowSuccess(message string) tea.Cmd {
	return m.Show(message, messages.ToastSuccess, 2*time.Second)
}

// ShowError shows an error toast
func (m *ToastModel) ShowError(message string) tea.Cmd {
	return m.Show(message, messages.ToastError, 5*time.Second)
}

// ShowInfo shows an info toast
func (m *ToastModel) ShowInfo(message string) tea.Cmd {
	return m.Show(message, messages.ToastInfo, 2*time.Second)
}

// Update handles messages
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	if _, ok := msg.(ToastDismissed); ok && !m.now().Before(m.showUntil) {
		m.current = nil
	}
	return m, nil
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}
	switch m.current.level {
	case messages.ToastSuccess:
		return m.styles.ToastSuccess.Render("✓ " + m.current.message)
	case messages.ToastError:
		return m.styles.ToastError.Render("✗ " + m.current.message)
	default:
		return m.styles.ToastInfo.Render("i " + m.current.message)
	}
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.now().Before(m.showUntil)
}
