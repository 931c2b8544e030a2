package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/logger"
	"github.com/stoa-client/stoa/internal/notification"
	"github.com/stoa-client/stoa/internal/ui"
)

func (m *Model) handleRoomsLoaded(msg RoomsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.WithComponent("app").Debug("room list load failed", "error", msg.Err)
		return m, m.ShowFlashError("Could not load room list")
	}
	m.roomList.SetRooms(msg.Rooms)
	return m, nil
}

func (m *Model) handleMarchNext(msg MarchNextMsg) (tea.Model, tea.Cmd) {
	if !msg.OK {
		// Ungoto, or a failed refill: the traversal is abandoned and
		// the user stays where they are.
		m.navInFlight = false
		return m, nil
	}
	return m, m.fetchRoom(msg.Room)
}

func (m *Model) handleRoomEntered(msg RoomEnteredMsg) (tea.Model, tea.Cmd) {
	m.navInFlight = false

	if msg.Err != nil {
		// Navigation is abandoned without user-visible error; the
		// current room stays fully usable.
		logger.WithComponent("app").Debug("room entry failed",
			"room", msg.Name, "error", msg.Err)
		return m, nil
	}

	room := msg.Room
	m.session.EnterRoom(room)
	m.banner.SetRoom(room.Name, room.CurrentView, room.NewMessages, room.TotalMessages)
	m.roomList.SetCurrentRoom(room.Name)

	mounted := m.registry.Mount(room)
	m.refreshFooter()

	switch {
	case mounted == m.forum:
		return m, m.fetchWindow(room.Name, citadel.FirstLoad())
	case mounted == m.mailbox:
		m.pollRoom = room.Name
		m.lastMTime = 0
		return m, tea.Batch(
			m.loadMailbox(room.Name),
			m.statRoom(room.Name),
			m.mailPollTick(),
		)
	}
	return m, nil
}

func (m *Model) handleWindowFetched(msg WindowFetchedMsg) (tea.Model, tea.Cmd) {
	if !m.registry.MountedIs(m.forum) || m.forum.Room() != msg.Room {
		// Navigation raced ahead of the fetch; the response is stale.
		return m, nil
	}

	if msg.Err != nil {
		logger.WithComponent("app").Debug("window fetch failed, rolling back",
			"room", msg.Room, "error", msg.Err)
		m.forum.RestorePrior()
		return m, nil
	}

	m.session.ObserveHighest(msg.Window.HighestRef())
	m.forum.SetWindow(msg.Window)
	m.refreshFooter()
	return m, m.resolveSlots(msg.Window)
}

func (m *Model) handleSlotResolved(msg SlotResolvedMsg) (tea.Model, tea.Cmd) {
	if m.registry.MountedIs(m.forum) && m.forum.Window() == msg.Window {
		m.forum.Refresh()
	}
	return m, m.listenForSlot(msg.Window, msg.stream)
}

func (m *Model) handleMailboxLoaded(msg MailboxLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.registry.MountedIs(m.mailbox) || m.mailbox.Room() != msg.Room {
		return m, nil
	}
	if msg.Err != nil {
		logger.WithComponent("app").Debug("mailbox load failed",
			"room", msg.Room, "error", msg.Err)
		return m, nil
	}

	// Count genuinely new rows before the old snapshot is replaced.
	known := make(map[int64]bool, len(m.mailbox.Entries()))
	for _, e := range m.mailbox.Entries() {
		known[e.MsgNum] = true
	}
	fresh := 0
	for _, e := range msg.Entries {
		if !known[e.MsgNum] {
			fresh++
		}
	}

	hadSnapshot := len(known) > 0
	m.mailbox.ApplyEntries(msg.Entries)

	if hadSnapshot && fresh > 0 && m.config.GetNotificationsEnabled() {
		notification.NewMail(msg.Room, fresh)
	}
	return m, nil
}

func (m *Model) handleMailStat(msg MailStatMsg) (tea.Model, tea.Cmd) {
	if !m.registry.MountedIs(m.mailbox) || m.pollRoom != msg.Room {
		return m, nil
	}
	if msg.Err != nil {
		logger.WithComponent("app").Debug("mailbox stat failed",
			"room", msg.Room, "error", msg.Err)
		return m, nil
	}
	if msg.MTime <= m.lastMTime {
		return m, nil
	}
	changed := m.lastMTime != 0
	m.lastMTime = msg.MTime
	if changed {
		return m, m.loadMailbox(msg.Room)
	}
	return m, nil
}

// handleMailPollTick runs one polling cycle and re-arms the timer. The
// loop terminates itself: once the mailbox renderer is unmounted or
// pointed at a different room, the tick is simply not re-armed.
func (m *Model) handleMailPollTick() (tea.Model, tea.Cmd) {
	if !m.registry.MountedIs(m.mailbox) || m.mailbox.Room() != m.pollRoom {
		logger.WithComponent("app").Debug("mailbox poll loop stopping", "room", m.pollRoom)
		return m, nil
	}
	return m, tea.Batch(m.statRoom(m.pollRoom), m.mailPollTick())
}

func (m *Model) handleReadingPane(msg ReadingPaneMsg) (tea.Model, tea.Cmd) {
	if !m.registry.MountedIs(m.mailbox) || m.mailbox.Room() != msg.Room {
		return m, nil
	}
	m.mailbox.SetReadingPane(msg.MsgNum, msg.Msg, msg.Err)
	return m, nil
}

func (m *Model) handlePostResult(msg PostResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// The draft survives: the alert is dismissed back into the
		// still-open compose surface.
		if m.compose != nil {
			m.compose.SetSubmitting(false)
		}
		m.alert = ui.NewAlert("Post failed", msg.Err.Error())
		m.updateSizes()
		return m, nil
	}

	m.compose = nil
	m.refreshFooter()
	logger.WithComponent("app").Info("message posted", "room", msg.Room, "msgnum", msg.MsgNum)

	cmds := []tea.Cmd{m.ShowFlashSuccess("Message posted")}
	if m.registry.MountedIs(m.forum) && m.forum.Room() == msg.Room {
		m.forum.BeginFetch()
		cmds = append(cmds, m.fetchWindow(msg.Room, citadel.FirstLoad()))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleDeleteResult(msg DeleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.alert = ui.NewAlert("Delete failed",
			fmt.Sprintf("Message %d: %v", msg.MsgNum, msg.Err))
		m.updateSizes()
		return m, nil
	}
	if m.registry.MountedIs(m.mailbox) && m.mailbox.Room() == msg.Room {
		return m, m.loadMailbox(msg.Room)
	}
	return m, nil
}

func (m *Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.login != nil {
			m.login.SetError(msg.Err.Error())
		}
		return m, nil
	}

	m.login = nil
	m.session.SetIdentity(msg.Name, true)
	m.banner.SetUser(msg.Name)
	m.refreshFooter()

	m.config.SetUsername(msg.Name)
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Debug("config save failed", "error", err)
	}

	// Unread state is per-user; the room list and march queue both
	// start over.
	return m, tea.Batch(
		m.ShowFlashSuccess(fmt.Sprintf("Logged in as %s", msg.Name)),
		m.loadRooms(),
	)
}

func (m *Model) handleLogout(msg LogoutMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.WithComponent("app").Debug("logout failed", "error", msg.Err)
	}
	m.session.SetIdentity("", false)
	m.banner.SetUser(m.session.UserName())
	m.refreshFooter()
	return m, tea.Batch(
		m.ShowFlashInfo("Logged out"),
		m.loadRooms(),
	)
}
