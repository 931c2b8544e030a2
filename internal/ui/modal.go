package ui

import (
	"charm.land/lipgloss/v2"
)

// Alert is a blocking notice for failures the user must acknowledge
// before continuing, such as a rejected post or delete.
type Alert struct {
	title  string
	text   string
	width  int
	height int
}

// NewAlert creates an alert with a title and body text.
func NewAlert(title, text string) *Alert {
	return &Alert{title: title, text: text}
}

// SetSize sets the screen dimensions used for centering.
func (a *Alert) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// View renders the centered alert over a blank screen region.
func (a *Alert) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(a.title),
		"",
		ModalErrorStyle.Render(a.text),
		"",
		ModalHelpStyle.Render("Enter/Esc: dismiss"),
	)
	box := ModalStyle.Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
