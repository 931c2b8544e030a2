package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/keys"
	"github.com/stoa-client/stoa/internal/march"
	"github.com/stoa-client/stoa/internal/ui"
)

// Update handles messages. All state mutation happens here, between
// suspension points, which is what lets the rest of the app go
// lock-free.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case RoomsLoadedMsg:
		return m.handleRoomsLoaded(msg)

	case MarchNextMsg:
		return m.handleMarchNext(msg)

	case RoomEnteredMsg:
		return m.handleRoomEntered(msg)

	case WindowFetchedMsg:
		return m.handleWindowFetched(msg)

	case SlotResolvedMsg:
		return m.handleSlotResolved(msg)

	case MailboxLoadedMsg:
		return m.handleMailboxLoaded(msg)

	case MailStatMsg:
		return m.handleMailStat(msg)

	case MailPollTickMsg:
		return m.handleMailPollTick()

	case ReadingPaneMsg:
		return m.handleReadingPane(msg)

	case PostResultMsg:
		return m.handlePostResult(msg)

	case DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case LogoutMsg:
		return m.handleLogout(msg)

	case ui.FlashExpireMsg:
		m.footer.ExpireFlash()
		return m, nil
	}

	// Everything else goes to the active surface for scroll handling.
	return m, m.routeToSurface(msg)
}

// routeToSurface forwards non-key messages to whichever component has
// internal state that might care (viewport animation frames).
func (m *Model) routeToSurface(msg tea.Msg) tea.Cmd {
	switch {
	case m.login != nil:
		return m.login.Update(msg)
	case m.compose != nil:
		return m.compose.Update(msg)
	case m.registry.MountedIs(m.forum):
		return m.forum.Update(msg)
	case m.registry.MountedIs(m.mailbox):
		return m.mailbox.Update(msg)
	}
	return nil
}

// handleKeyPress routes a keystroke. Overlays get everything first;
// a blocking alert swallows everything except its dismissal.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.alert != nil {
		if key == keys.Enter || key == keys.Escape {
			m.alert = nil
		}
		return m, nil
	}

	if m.login != nil {
		return m.handleLoginKey(key, msg)
	}

	if m.compose != nil {
		return m.handleComposeKey(key, msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case keys.Tab:
		m.toggleFocus()
		return m, nil
	case "l":
		m.login = ui.NewLogin(m.config.GetUsername())
		m.updateSizes()
		return m, nil
	case "L":
		if m.session.LoggedIn() {
			return m, m.logout()
		}
		return m, nil
	case "g":
		return m, m.marchNext(march.OpGoto)
	case "s":
		return m, m.marchNext(march.OpSkip)
	case "u":
		return m, m.marchNext(march.OpUngoto)
	case "c":
		return m.openCompose(nil, 0)
	}

	if m.focus == FocusRoomList {
		return m.handleRoomListKey(key)
	}
	return m.handleMainKey(key, msg)
}

// handleRoomListKey handles keys while the room list is focused.
func (m *Model) handleRoomListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Up:
		m.roomList.MoveUp()
	case keys.Down:
		m.roomList.MoveDown()
	case keys.Enter:
		// An explicit pick bypasses the march queue entirely: no
		// mark-as-read for the room being left.
		if r := m.roomList.Selected(); r != nil {
			return m, m.gotoRoom(r.Name)
		}
	}
	return m, nil
}

// handleMainKey handles keys while the main panel is focused.
func (m *Model) handleMainKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.registry.MountedIs(m.forum):
		return m.handleForumKey(key, msg)
	case m.registry.MountedIs(m.mailbox):
		return m.handleMailboxKey(key, msg)
	}
	return m, nil
}

func (m *Model) handleForumKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "o":
		if win := m.forum.Window(); win != nil && win.Older != nil {
			m.forum.BeginFetch()
			return m, m.fetchWindow(m.forum.Room(), *win.Older)
		}
		return m, nil
	case "n":
		if win := m.forum.Window(); win != nil && win.Newer != nil {
			m.forum.BeginFetch()
			return m, m.fetchWindow(m.forum.Room(), *win.Newer)
		}
		return m, nil
	case "r":
		parent, parentNum := m.lastResolvedMessage()
		if parent != nil {
			return m.openCompose(parent, parentNum)
		}
		return m, nil
	}
	return m, m.forum.Update(msg)
}

func (m *Model) handleMailboxKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Up:
		m.mailbox.MoveUp()
		return m, nil
	case keys.Down:
		m.mailbox.MoveDown()
		return m, nil
	case keys.Enter:
		if id := m.mailbox.SelectOne(); id != 0 {
			return m, m.loadReadingPane(m.mailbox.Room(), id)
		}
		return m, nil
	case keys.Space:
		m.mailbox.ToggleSelect()
		return m, nil
	case keys.ShiftEnter:
		if id := m.mailbox.SelectRange(); id != 0 {
			return m, m.loadReadingPane(m.mailbox.Room(), id)
		}
		return m, nil
	case "d":
		return m, m.deleteSelected()
	}
	return m, m.mailbox.Update(msg)
}

// handleLoginKey drives the login modal.
func (m *Model) handleLoginKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		if !m.login.InFlight() {
			m.login = nil
		}
		return m, nil
	case keys.Enter:
		if m.login.InFlight() {
			return m, nil
		}
		user, pass := m.login.Credentials()
		if user == "" {
			m.login.SetError("User name is required")
			return m, nil
		}
		m.login.SetInFlight()
		return m, m.doLogin(user, pass)
	}
	return m, m.login.Update(msg)
}

// handleComposeKey drives the compose surface.
func (m *Model) handleComposeKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		if !m.compose.Submitting() {
			// Discard: the draft is gone, nothing is sent.
			m.compose = nil
			m.refreshFooter()
		}
		return m, nil
	case keys.Tab:
		m.compose.CycleFocus()
		return m, nil
	case keys.CtrlS:
		if m.compose.Submitting() {
			return m, nil
		}
		m.compose.SetSubmitting(true)
		return m, m.submitDraft()
	}
	return m, m.compose.Update(msg)
}

// openCompose opens the compose surface, as a reply when parent is
// non-nil. Posting requires a logged-in session.
func (m *Model) openCompose(parent *citadel.Message, parentNum int64) (tea.Model, tea.Cmd) {
	if !m.session.LoggedIn() {
		return m, m.ShowFlashWarning("Log in to post (press l)")
	}
	room := m.session.CurrentRoom()
	if parent != nil {
		m.compose = ui.NewReply(room, parent, parentNum)
	} else {
		m.compose = ui.NewCompose(room)
	}
	m.updateSizes()
	m.refreshFooter()
	return m, nil
}

// lastResolvedMessage returns the newest successfully resolved message
// in the forum window, for reply threading.
func (m *Model) lastResolvedMessage() (*citadel.Message, int64) {
	win := m.forum.Window()
	if win == nil {
		return nil, 0
	}
	for i := len(win.Slots) - 1; i >= 0; i-- {
		s := &win.Slots[i]
		if s.Done && s.Err == nil && s.Msg != nil {
			return s.Msg, s.MsgNum
		}
	}
	return nil, 0
}

// toggleFocus moves focus between the room list and the main panel.
func (m *Model) toggleFocus() {
	if m.focus == FocusRoomList {
		m.focus = FocusMain
	} else {
		m.focus = FocusRoomList
	}
	m.roomList.SetFocused(m.focus == FocusRoomList)
	m.mailbox.SetFocused(m.focus == FocusMain)
	m.refreshFooter()
}

// refreshFooter recomputes the footer bindings for the active surface.
func (m *Model) refreshFooter() {
	if m.compose != nil {
		m.footer.SetBindings(m.compose.Bindings())
		return
	}

	bindings := []ui.KeyBinding{
		{Key: "g", Desc: "goto next"},
		{Key: "s", Desc: "skip"},
		{Key: "tab", Desc: "focus"},
	}
	if mounted := m.registry.Mounted(); mounted != nil && m.focus == FocusMain {
		bindings = append(mounted.Bindings(), bindings...)
	}
	if !m.session.LoggedIn() {
		bindings = append(bindings, ui.KeyBinding{Key: "l", Desc: "log in"})
	}
	bindings = append(bindings, ui.KeyBinding{Key: "q", Desc: "quit"})
	m.footer.SetBindings(bindings)
}
