package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/refchain"
)

// composeFocus tracks which input owns keystrokes.
type composeFocus int

const (
	focusSubject composeFocus = iota
	focusBody
)

// Compose is the message entry surface. It replaces the main panel
// until the draft is submitted or discarded; a failed submission keeps
// it open with everything the user typed.
type Compose struct {
	width  int
	height int

	room    string
	subject textinput.Model
	body    textarea.Model
	focus   composeFocus

	// references carries the reply chain, already trimmed to the wire
	// limit. Empty for a fresh top-level post.
	references string

	submitting bool
}

// NewCompose creates a compose surface for a fresh post in room.
func NewCompose(room string) *Compose {
	subject := textinput.New()
	subject.Placeholder = "Subject (optional)"
	subject.CharLimit = 200

	body := textarea.New()
	body.Placeholder = "Type your message…"
	body.ShowLineNumbers = false

	c := &Compose{
		room:    room,
		subject: subject,
		body:    body,
		focus:   focusSubject,
	}
	c.subject.Focus()
	return c
}

// NewReply creates a compose surface replying to a message: the
// subject is prefilled and the reference chain extends the parent's.
func NewReply(room string, parent *citadel.Message, parentNum int64) *Compose {
	c := NewCompose(room)
	if parent.Subj != "" && !strings.HasPrefix(strings.ToLower(parent.Subj), "re:") {
		c.subject.SetValue("Re: " + parent.Subj)
	} else {
		c.subject.SetValue(parent.Subj)
	}
	c.references = refchain.Build(parent.Wefw, parent.Msgn)
	c.focus = focusBody
	c.subject.Blur()
	c.body.Focus()
	return c
}

// Room returns the room the draft will be posted to.
func (c *Compose) Room() string {
	return c.room
}

// SetSize sets the surface dimensions.
func (c *Compose) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.subject.SetWidth(width - 6)
	c.body.SetWidth(width - 6)
	c.body.SetHeight(height - 8)
}

// SetSubmitting marks the draft as in flight, disabling edits.
func (c *Compose) SetSubmitting(v bool) {
	c.submitting = v
}

// Submitting reports whether a submission is in flight.
func (c *Compose) Submitting() bool {
	return c.submitting
}

// Draft assembles the wire draft from the current inputs.
func (c *Compose) Draft() citadel.Draft {
	return citadel.Draft{
		Subject:    c.subject.Value(),
		References: c.references,
		Body:       c.body.Value(),
	}
}

// CycleFocus moves between the subject line and the body.
func (c *Compose) CycleFocus() {
	if c.focus == focusSubject {
		c.focus = focusBody
		c.subject.Blur()
		c.body.Focus()
	} else {
		c.focus = focusSubject
		c.body.Blur()
		c.subject.Focus()
	}
}

// Update routes keystrokes to the focused input.
func (c *Compose) Update(msg tea.Msg) tea.Cmd {
	if c.submitting {
		return nil
	}
	var cmd tea.Cmd
	if c.focus == focusSubject {
		c.subject, cmd = c.subject.Update(msg)
	} else {
		c.body, cmd = c.body.Update(msg)
	}
	return cmd
}

// Bindings returns the footer bindings while composing.
func (c *Compose) Bindings() []KeyBinding {
	return []KeyBinding{
		{Key: "ctrl+s", Desc: "post"},
		{Key: "tab", Desc: "subject/body"},
		{Key: "esc", Desc: "discard"},
	}
}

// View renders the compose surface.
func (c *Compose) View() string {
	title := ModalTitleStyle.Render("New message in " + c.room)
	if c.references != "" {
		title = ModalTitleStyle.Render("Reply in " + c.room)
	}

	status := ""
	if c.submitting {
		status = MsgDateStyle.Render("Posting…")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		c.subject.View(),
		"",
		c.body.View(),
		status,
	)
	return PanelFocusedStyle.Width(c.width - 2).Height(c.height - 2).Render(content)
}
