package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/stoa-client/stoa/internal/citadel"
)

// Banner is the top bar: current room, view kind, unread counters, and
// who is logged in.
type Banner struct {
	width     int
	room      string
	view      citadel.ViewKind
	user      string
	newMsgs   int
	totalMsgs int
	serverHum string // server human-readable node name, shown before first goto
}

// NewBanner creates the banner in its pre-navigation state.
func NewBanner() *Banner {
	return &Banner{room: citadel.BaseRoom}
}

// SetWidth sets the banner width
func (b *Banner) SetWidth(width int) {
	b.width = width
}

// SetRoom updates the room-scoped banner fields after navigation.
func (b *Banner) SetRoom(room string, view citadel.ViewKind, newMsgs, totalMsgs int) {
	b.room = room
	b.view = view
	b.newMsgs = newMsgs
	b.totalMsgs = totalMsgs
}

// SetUser updates the identity display.
func (b *Banner) SetUser(name string) {
	b.user = name
}

// SetServerName sets the fallback title used when no room is current.
func (b *Banner) SetServerName(name string) {
	b.serverHum = name
}

// View renders the banner
func (b *Banner) View() string {
	title := b.room
	if title == "" {
		title = b.serverHum
	}

	left := title
	if b.totalMsgs > 0 {
		left = fmt.Sprintf("%s  (%d new of %d)", title, b.newMsgs, b.totalMsgs)
	}

	right := b.user
	gap := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return BannerStyle.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}
