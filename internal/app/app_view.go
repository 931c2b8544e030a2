package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the whole screen: banner, room list beside the main
// panel, footer. A login form or alert replaces everything between the
// bars until dismissed.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	if m.login != nil {
		v.SetContent(m.login.View())
		return v
	}
	if m.alert != nil {
		v.SetContent(m.alert.View())
		return v
	}

	var main string
	switch {
	case m.compose != nil:
		main = m.compose.View()
	case m.registry.Mounted() != nil:
		main = m.registry.Mounted().View()
	}

	middle := lipgloss.JoinHorizontal(lipgloss.Top, m.roomList.View(), main)

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left,
		m.banner.View(),
		middle,
		m.footer.View(),
	))
	return v
}
