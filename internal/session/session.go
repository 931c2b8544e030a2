// Package session holds the process-wide record of identity and
// navigation facts. One State instance is created at startup, injected
// into every component that needs it, and lives for the program's
// lifetime. There is no ambient global.
package session

import (
	"github.com/stoa-client/stoa/internal/citadel"
)

// AnonymousName is shown in the banner when nobody is logged in.
const AnonymousName = "Not logged in."

// State is the single mutable source of truth for "where am I".
// All mutation happens from the event loop between suspension points,
// and only navigation mutates the room fields, so no lock is needed.
type State struct {
	loggedIn bool
	userName string

	currentRoom   string
	currentView   citadel.ViewKind
	defaultView   citadel.ViewKind
	newMessages   int
	totalMessages int

	// lastSeen is advisory until the corresponding mark-as-read call
	// is actually sent on the next goto transition.
	lastSeen int64
}

// New creates session state positioned in the lobby, not logged in.
func New() *State {
	return &State{
		userName:    AnonymousName,
		currentRoom: citadel.BaseRoom,
	}
}

// SetIdentity records the outcome of a login, logout, or cookie probe.
func (s *State) SetIdentity(name string, loggedIn bool) {
	s.loggedIn = loggedIn
	if loggedIn {
		s.userName = name
	} else {
		s.userName = AnonymousName
	}
}

// LoggedIn reports whether the session has an authenticated user.
func (s *State) LoggedIn() bool {
	return s.loggedIn
}

// UserName returns the display name for the banner.
func (s *State) UserName() string {
	return s.userName
}

// EnterRoom refreshes the room-scoped fields from a room detail
// response. This is the only mutation path for the current-room field.
func (s *State) EnterRoom(room *citadel.Room) {
	s.currentRoom = room.Name
	s.currentView = room.CurrentView
	s.defaultView = room.DefaultView
	s.newMessages = room.NewMessages
	s.totalMessages = room.TotalMessages
	s.lastSeen = room.LastSeen
}

// CurrentRoom returns the name of the room being viewed.
func (s *State) CurrentRoom() string {
	return s.currentRoom
}

// CurrentView returns the view kind of the room being viewed.
func (s *State) CurrentView() citadel.ViewKind {
	return s.currentView
}

// Counters returns the unread and total message counts for the banner.
func (s *State) Counters() (newMessages, totalMessages int) {
	return s.newMessages, s.totalMessages
}

// LastSeen returns the highest message number the user is considered
// to have observed in the current room.
func (s *State) LastSeen() int64 {
	return s.lastSeen
}

// ObserveHighest advances the last-seen pointer after a window fetch.
// It never moves backwards.
func (s *State) ObserveHighest(msgnum int64) {
	if msgnum > s.lastSeen {
		s.lastSeen = msgnum
	}
}
