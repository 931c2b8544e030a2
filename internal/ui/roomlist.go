package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/stoa-client/stoa/internal/citadel"
)

// listRow is one selectable or decorative line in the room list.
type listRow struct {
	room    *citadel.Room
	floor   int
	isLabel bool
}

// RoomList is the left panel: every accessible room, grouped by floor,
// sorted the way the server orders them. Unread rooms are emphasized.
type RoomList struct {
	rooms        []citadel.Room
	rows         []listRow
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	currentRoom  string
}

// NewRoomList creates an empty room list.
func NewRoomList() *RoomList {
	return &RoomList{}
}

// SetSize sets the panel dimensions
func (r *RoomList) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// SetFocused sets the focus state
func (r *RoomList) SetFocused(focused bool) {
	r.focused = focused
}

// IsFocused returns the focus state
func (r *RoomList) IsFocused() bool {
	return r.focused
}

// SetCurrentRoom marks which room the main panel is showing.
func (r *RoomList) SetCurrentRoom(name string) {
	r.currentRoom = name
}

// SetRooms replaces the room snapshot. Ordering is (floor, rorder,
// name) ascending, with a label row wherever the floor changes.
func (r *RoomList) SetRooms(rooms []citadel.Room) {
	sorted := make([]citadel.Room, len(rooms))
	copy(sorted, rooms)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Floor != sorted[j].Floor {
			return sorted[i].Floor < sorted[j].Floor
		}
		if sorted[i].ROrder != sorted[j].ROrder {
			return sorted[i].ROrder < sorted[j].ROrder
		}
		return sorted[i].Name < sorted[j].Name
	})
	r.rooms = sorted

	r.rows = r.rows[:0]
	lastFloor := -1
	for i := range r.rooms {
		if r.rooms[i].Floor != lastFloor {
			lastFloor = r.rooms[i].Floor
			r.rows = append(r.rows, listRow{floor: lastFloor, isLabel: true})
		}
		r.rows = append(r.rows, listRow{room: &r.rooms[i]})
	}

	if r.selectedIdx >= len(r.rows) {
		r.selectedIdx = 0
	}
	r.skipLabels(1)
}

// Selected returns the room under the cursor, or nil.
func (r *RoomList) Selected() *citadel.Room {
	if r.selectedIdx < 0 || r.selectedIdx >= len(r.rows) {
		return nil
	}
	return r.rows[r.selectedIdx].room
}

// MoveUp moves the cursor up one room.
func (r *RoomList) MoveUp() {
	if r.selectedIdx > 0 {
		r.selectedIdx--
		r.skipLabels(-1)
	}
}

// MoveDown moves the cursor down one room.
func (r *RoomList) MoveDown() {
	if r.selectedIdx < len(r.rows)-1 {
		r.selectedIdx++
		r.skipLabels(1)
	}
}

// skipLabels nudges the cursor off label rows in the given direction.
func (r *RoomList) skipLabels(dir int) {
	for r.selectedIdx >= 0 && r.selectedIdx < len(r.rows) && r.rows[r.selectedIdx].isLabel {
		r.selectedIdx += dir
	}
	if r.selectedIdx < 0 {
		r.selectedIdx = 0
		// Walk forward again if row 0 is a label.
		for r.selectedIdx < len(r.rows) && r.rows[r.selectedIdx].isLabel {
			r.selectedIdx++
		}
	}
	if r.selectedIdx >= len(r.rows) {
		r.selectedIdx = len(r.rows) - 1
	}
}

// View renders the room list
func (r *RoomList) View() string {
	innerWidth := r.width - 2
	innerHeight := r.height - 2
	if innerWidth < 4 || innerHeight < 1 {
		return ""
	}

	// Keep the cursor visible.
	if r.selectedIdx < r.scrollOffset {
		r.scrollOffset = r.selectedIdx
	}
	if r.selectedIdx >= r.scrollOffset+innerHeight {
		r.scrollOffset = r.selectedIdx - innerHeight + 1
	}

	var out string
	end := r.scrollOffset + innerHeight
	if end > len(r.rows) {
		end = len(r.rows)
	}
	for i := r.scrollOffset; i < end; i++ {
		row := r.rows[i]
		var line string
		switch {
		case row.isLabel:
			line = FloorLabelStyle.Render(fmt.Sprintf("Floor %d", row.floor))
		default:
			name := runewidth.Truncate(row.room.Name, innerWidth-4, "…")
			marker := "  "
			if row.room.Name == r.currentRoom {
				marker = "> "
			}
			text := marker + name
			if mt := formatMTime(row.room.MTime); mt != "" {
				pad := innerWidth - 2 - runewidth.StringWidth(text) - runewidth.StringWidth(mt)
				if pad > 0 {
					text += fmt.Sprintf("%*s", pad+len(mt), mt)
				}
			}
			style := RoomItemStyle
			if row.room.HasNewMsgs {
				style = RoomUnreadStyle
			}
			if i == r.selectedIdx && r.focused {
				style = RoomSelectedStyle
			}
			line = style.Render(text)
		}
		out += line + "\n"
	}

	panel := PanelStyle
	if r.focused {
		panel = PanelFocusedStyle
	}
	return panel.Width(r.width - 2).Height(r.height - 2).Render(out)
}

// formatMTime renders a room modification time the way the list shows
// it: clock time today, date otherwise.
func formatMTime(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	t := time.Unix(epoch, 0)
	if time.Since(t) < 24*time.Hour {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02")
}
