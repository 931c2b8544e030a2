package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/march"
	"github.com/stoa-client/stoa/internal/window"
)

// loadRooms fetches the accessible room list.
func (m *Model) loadRooms() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		rooms, err := client.Rooms(context.Background())
		return RoomsLoadedMsg{Rooms: rooms, Err: err}
	}
}

// marchNext advances the march queue off the event loop. The queue may
// refill itself from the network, so this must not run inline.
func (m *Model) marchNext(op march.Op) tea.Cmd {
	if m.navInFlight {
		return nil
	}
	m.navInFlight = true

	queue := m.march
	current := m.session.CurrentRoom()
	lastSeen := m.session.LastSeen()
	return func() tea.Msg {
		room, ok := queue.Next(context.Background(), op, current, lastSeen)
		return MarchNextMsg{Room: room, OK: ok}
	}
}

// gotoRoom starts a navigation. A second goto while one is pending is
// dropped rather than queued, so at most one room fetch is ever in
// flight and responses cannot race each other.
func (m *Model) gotoRoom(name string) tea.Cmd {
	if m.navInFlight {
		return nil
	}
	m.navInFlight = true
	return m.fetchRoom(name)
}

// fetchRoom fetches a room's detail as the first step of navigation.
// The caller already holds the in-flight flag.
func (m *Model) fetchRoom(name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		room, err := client.Room(context.Background(), name)
		return RoomEnteredMsg{Room: room, Err: err, Name: name}
	}
}

// fetchWindow resolves the message numbers for one window position.
func (m *Model) fetchWindow(room string, cur citadel.Cursor) tea.Cmd {
	fetcher := m.fetcher
	loggedIn := m.session.LoggedIn()
	return func() tea.Msg {
		win, err := fetcher.FetchWindow(context.Background(), room, cur, loggedIn)
		return WindowFetchedMsg{Window: win, Room: room, Err: err}
	}
}

// resolveSlots starts concurrent resolution of every slot and returns
// the listener for the completion stream. Slots fill by message
// number as responses land, never by arrival order; each announcement
// re-arms the listener until the stream closes.
func (m *Model) resolveSlots(win *window.Window) tea.Cmd {
	ch := m.fetcher.ResolveAll(context.Background(), win)
	return m.listenForSlot(win, ch)
}

// listenForSlot waits for the next slot announcement.
func (m *Model) listenForSlot(win *window.Window, ch <-chan int64) tea.Cmd {
	return func() tea.Msg {
		msgnum, ok := <-ch
		if !ok {
			return nil
		}
		return SlotResolvedMsg{Window: win, MsgNum: msgnum, stream: ch}
	}
}

// loadMailbox fetches the mailbox summary table.
func (m *Model) loadMailbox(room string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		entries, err := client.Mailbox(context.Background(), room)
		return MailboxLoadedMsg{Room: room, Entries: entries, Err: err}
	}
}

// statRoom polls a room's modification time.
func (m *Model) statRoom(room string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stat, err := client.Stat(context.Background(), room)
		if err != nil {
			return MailStatMsg{Room: room, Err: err}
		}
		return MailStatMsg{Room: room, MTime: stat.MTime}
	}
}

// mailPollTick schedules the next mailbox polling cycle.
func (m *Model) mailPollTick() tea.Cmd {
	interval := time.Duration(m.config.GetPollIntervalSecs()) * time.Second
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return MailPollTickMsg(t)
	})
}

// loadReadingPane fetches one message body for the mailbox pane.
func (m *Model) loadReadingPane(room string, msgnum int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		body, err := client.Message(context.Background(), room, msgnum)
		return ReadingPaneMsg{Room: room, MsgNum: msgnum, Msg: body, Err: err}
	}
}

// submitDraft posts the open compose draft.
func (m *Model) submitDraft() tea.Cmd {
	client := m.client
	room := m.compose.Room()
	draft := m.compose.Draft()
	return func() tea.Msg {
		msgnum, err := client.Post(context.Background(), room, draft)
		return PostResultMsg{Room: room, MsgNum: msgnum, Err: err}
	}
}

// deleteSelected deletes every selected mailbox message. Each deletion
// reports individually; one failure does not stop the others.
func (m *Model) deleteSelected() tea.Cmd {
	ids := m.mailbox.SelectedIDs()
	if len(ids) == 0 {
		return nil
	}
	client := m.client
	room := m.mailbox.Room()
	cmds := make([]tea.Cmd, len(ids))
	for i, id := range ids {
		cmds[i] = func() tea.Msg {
			err := client.Delete(context.Background(), room, id)
			return DeleteResultMsg{Room: room, MsgNum: id, Err: err}
		}
	}
	return tea.Batch(cmds...)
}

// doLogin submits credentials. The display name decoded from the
// credential cookie wins over the status line when both are present.
func (m *Model) doLogin(user, pass string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		name, err := client.Login(context.Background(), user, pass)
		if err == nil {
			if cookieName, ok := client.DisplayName(); ok {
				name = cookieName
			}
		}
		return LoginResultMsg{Name: name, Err: err}
	}
}

// logout drops the server-side session.
func (m *Model) logout() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return LogoutMsg{Err: client.Logout(context.Background())}
	}
}
