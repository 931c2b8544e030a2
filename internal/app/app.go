package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/config"
	"github.com/stoa-client/stoa/internal/march"
	"github.com/stoa-client/stoa/internal/session"
	"github.com/stoa-client/stoa/internal/ui"
	"github.com/stoa-client/stoa/internal/window"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusRoomList Focus = iota
	FocusMain
)

const roomListWidth = 32

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	client  *citadel.Client
	session *session.State
	march   *march.Queue
	fetcher *window.Fetcher
	version string

	banner   *ui.Banner
	footer   *ui.Footer
	roomList *ui.RoomList
	registry *ui.Registry
	forum    *ui.Forum
	mailbox  *ui.Mailbox

	// Overlays. At most one is non-nil; it owns all keystrokes.
	compose *ui.Compose
	login   *ui.Login
	alert   *ui.Alert

	width  int
	height int
	focus  Focus

	// navInFlight serializes room transitions: a second goto while one
	// is pending is dropped rather than queued.
	navInFlight bool

	// Mailbox poll loop state. The loop stops re-arming once the
	// mailbox renderer is unmounted or switched to another room.
	pollRoom  string
	lastMTime int64
}

// RoomsLoadedMsg carries a fresh room list snapshot.
type RoomsLoadedMsg struct {
	Rooms []citadel.Room
	Err   error
}

// MarchNextMsg carries the outcome of a march-queue advance.
type MarchNextMsg struct {
	Room string
	OK   bool
}

// RoomEnteredMsg carries a room detail response for a navigation.
type RoomEnteredMsg struct {
	Room *citadel.Room
	Err  error
	Name string
}

// WindowFetchedMsg carries a fetched (unresolved) message window.
type WindowFetchedMsg struct {
	Window *window.Window
	Room   string
	Err    error
}

// SlotResolvedMsg announces that one window slot has been filled. The
// slot itself already holds the body or its error; the stream carries
// the remaining announcements.
type SlotResolvedMsg struct {
	Window *window.Window
	MsgNum int64

	stream <-chan int64
}

// MailboxLoadedMsg carries a mailbox summary snapshot.
type MailboxLoadedMsg struct {
	Room    string
	Entries []citadel.MailboxEntry
	Err     error
}

// MailStatMsg carries a polled room modification time.
type MailStatMsg struct {
	Room  string
	MTime int64
	Err   error
}

// MailPollTickMsg triggers one mailbox polling cycle.
type MailPollTickMsg time.Time

// ReadingPaneMsg carries a resolved message for the mailbox pane.
type ReadingPaneMsg struct {
	Room   string
	MsgNum int64
	Msg    *citadel.Message
	Err    error
}

// PostResultMsg carries the outcome of a message submission.
type PostResultMsg struct {
	Room   string
	MsgNum int64
	Err    error
}

// DeleteResultMsg carries the outcome of a message deletion.
type DeleteResultMsg struct {
	Room   string
	MsgNum int64
	Err    error
}

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Name string
	Err  error
}

// LogoutMsg reports that the server session was dropped.
type LogoutMsg struct {
	Err error
}

// New creates the app model. The client is already dialed; no request
// has been made yet.
func New(cfg *config.Config, client *citadel.Client, version string) *Model {
	sess := session.New()

	m := &Model{
		config:   cfg,
		client:   client,
		session:  sess,
		march:    march.New(client, client),
		fetcher:  window.NewFetcher(client, cfg.GetPageSize()),
		version:  version,
		banner:   ui.NewBanner(),
		footer:   ui.NewFooter(),
		roomList: ui.NewRoomList(),
		registry: ui.NewRegistry(),
		forum:    ui.NewForum(),
		mailbox:  ui.NewMailbox(),
	}

	m.registry.Register(m.forum, citadel.ViewBBS)
	m.registry.Register(m.mailbox, citadel.ViewMailbox, citadel.ViewDrafts)

	m.banner.SetUser(sess.UserName())
	m.banner.SetServerName(cfg.GetServerURL())
	m.roomList.SetFocused(true)

	return m
}

// Init starts the app: load the room list and land in the lobby.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadRooms(),
		m.gotoRoom(citadel.BaseRoom),
	)
}

// updateSizes recomputes child component dimensions.
func (m *Model) updateSizes() {
	mainWidth := m.width - roomListWidth
	mainHeight := m.height - 2

	m.banner.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.roomList.SetSize(roomListWidth, mainHeight)
	m.forum.SetSize(mainWidth, mainHeight)
	m.mailbox.SetSize(mainWidth, mainHeight)
	m.registry.Placeholder().SetSize(mainWidth, mainHeight)

	if m.compose != nil {
		m.compose.SetSize(mainWidth, mainHeight)
	}
	if m.login != nil {
		m.login.SetSize(m.width, m.height)
	}
	if m.alert != nil {
		m.alert.SetSize(m.width, m.height)
	}
}
