package ui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

const loginInputWidth = 44

// Login is the credentials modal. It blocks the rest of the UI until
// the user submits or cancels; a rejected login keeps it open with an
// error line.
type Login struct {
	form     *huh.Form
	username string
	password string

	errText  string
	inFlight bool
	width    int
	height   int
}

// NewLogin creates the login modal with an empty form.
func NewLogin(prefillUser string) *Login {
	l := &Login{username: prefillUser}
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User name").
				Value(&l.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password),
		),
	).WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(loginInputWidth)

	l.form.Init()
	return l
}

// Credentials returns the entered user name and password.
func (l *Login) Credentials() (string, string) {
	return l.username, l.password
}

// SetError shows a rejection line under the form and re-enables it.
func (l *Login) SetError(text string) {
	l.errText = text
	l.inFlight = false
}

// SetInFlight marks the form as submitted and pending.
func (l *Login) SetInFlight() {
	l.inFlight = true
	l.errText = ""
}

// InFlight reports whether a login attempt is pending.
func (l *Login) InFlight() bool {
	return l.inFlight
}

// SetSize sets the screen dimensions used for centering.
func (l *Login) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Update delegates keystrokes to the form. Enter and Escape are
// handled by the app layer and never reach the form.
func (l *Login) Update(msg tea.Msg) tea.Cmd {
	if l.inFlight {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "enter", "esc":
			return nil
		}
	}
	m, cmd := l.form.Update(msg)
	l.form = m.(*huh.Form)
	return cmd
}

// View renders the centered modal.
func (l *Login) View() string {
	title := ModalTitleStyle.Render("Log in")

	status := ModalHelpStyle.Render("Enter: log in  Esc: cancel")
	if l.inFlight {
		status = MsgDateStyle.Render("Logging in…")
	}

	parts := []string{title, "", l.form.View()}
	if l.errText != "" {
		parts = append(parts, ModalErrorStyle.Render(l.errText))
	}
	parts = append(parts, "", status)

	box := ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}

// FormTheme returns a huh theme matching the client palette.
func FormTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}
