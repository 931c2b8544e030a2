package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/stoa-client/stoa/internal/citadel"
)

// Mailbox renders mailbox and drafts rooms as a summary table over a
// reading pane. A poll loop owned by the app keeps it fresh; the
// selection survives every refresh because it is keyed by message
// number, not by row position.
type Mailbox struct {
	width  int
	height int

	room    string
	entries []citadel.MailboxEntry

	cursorIdx    int
	scrollOffset int

	// selected is the set of highlighted message numbers.
	selected map[int64]bool
	// displayed is the message shown in the reading pane; it doubles
	// as the anchor for range selection.
	displayed int64

	reading viewport.Model
	focused bool
}

// NewMailbox creates the mailbox renderer.
func NewMailbox() *Mailbox {
	return &Mailbox{
		selected: make(map[int64]bool),
		reading:  viewport.New(),
	}
}

// Mount implements Renderer. Selection state is per-room, so it
// resets on mount; the app starts the poll loop separately.
func (m *Mailbox) Mount(room *citadel.Room) {
	m.room = room.Name
	m.entries = nil
	m.selected = make(map[int64]bool)
	m.displayed = 0
	m.cursorIdx = 0
	m.scrollOffset = 0
	m.reading.SetContent("")
}

// Unmount implements Renderer. The poll loop notices the unmount via
// the registry and stops re-arming itself; nothing to cancel here.
func (m *Mailbox) Unmount() {}

// SetSize implements Renderer.
func (m *Mailbox) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.reading.SetWidth(width - 4)
	m.reading.SetHeight(m.paneHeight() - 1)
}

// Bindings implements Renderer.
func (m *Mailbox) Bindings() []KeyBinding {
	return []KeyBinding{
		{Key: "enter", Desc: "read"},
		{Key: "space", Desc: "toggle select"},
		{Key: "shift+enter", Desc: "select range"},
		{Key: "d", Desc: "delete"},
		{Key: "c", Desc: "compose"},
	}
}

// Room returns the room this renderer is mounted on.
func (m *Mailbox) Room() string {
	return m.room
}

// tableHeight is the row budget for the summary table.
func (m *Mailbox) tableHeight() int {
	h := (m.height - 2) / 2
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Mailbox) paneHeight() int {
	return m.height - 2 - m.tableHeight()
}

// ApplyEntries installs a fresh summary list, preserving the selection
// and reading-pane choice across the re-render by message number.
func (m *Mailbox) ApplyEntries(entries []citadel.MailboxEntry) {
	captured := m.SelectedIDs()
	cursorID := m.cursorID()

	m.entries = entries

	present := make(map[int64]bool, len(entries))
	for _, e := range entries {
		present[e.MsgNum] = true
	}

	m.selected = make(map[int64]bool, len(captured))
	for _, id := range captured {
		if present[id] {
			m.selected[id] = true
		}
	}
	if m.displayed != 0 && !present[m.displayed] {
		m.displayed = 0
		m.reading.SetContent("")
	}

	// Keep the cursor on the same message if it survived.
	m.cursorIdx = 0
	if cursorID != 0 {
		for i, e := range m.entries {
			if e.MsgNum == cursorID {
				m.cursorIdx = i
				break
			}
		}
	}
}

// Entries returns the current summary snapshot.
func (m *Mailbox) Entries() []citadel.MailboxEntry {
	return m.entries
}

// cursorID returns the message number under the cursor, or 0.
func (m *Mailbox) cursorID() int64 {
	if m.cursorIdx < 0 || m.cursorIdx >= len(m.entries) {
		return 0
	}
	return m.entries[m.cursorIdx].MsgNum
}

// SelectedIDs returns the highlighted message numbers in ascending
// order.
func (m *Mailbox) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Displayed returns the reading-pane message number, or 0.
func (m *Mailbox) Displayed() int64 {
	return m.displayed
}

// MoveUp moves the cursor up one row.
func (m *Mailbox) MoveUp() {
	if m.cursorIdx > 0 {
		m.cursorIdx--
	}
}

// MoveDown moves the cursor down one row.
func (m *Mailbox) MoveDown() {
	if m.cursorIdx < len(m.entries)-1 {
		m.cursorIdx++
	}
}

// SelectOne selects exactly the row under the cursor, clearing all
// others, and makes it the displayed message. Returns the message
// number to load into the reading pane, or 0.
func (m *Mailbox) SelectOne() int64 {
	id := m.cursorID()
	if id == 0 {
		return 0
	}
	m.selected = map[int64]bool{id: true}
	m.displayed = id
	return id
}

// ToggleSelect toggles the cursor row's membership without touching
// other rows.
func (m *Mailbox) ToggleSelect() {
	id := m.cursorID()
	if id == 0 {
		return
	}
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
}

// SelectRange selects the contiguous run between the displayed anchor
// and the cursor row, by message number ordering, clearing rows
// outside the run. With no anchor it degenerates to SelectOne.
func (m *Mailbox) SelectRange() int64 {
	id := m.cursorID()
	if id == 0 {
		return 0
	}
	if m.displayed == 0 {
		return m.SelectOne()
	}

	lo, hi := m.displayed, id
	if lo > hi {
		lo, hi = hi, lo
	}
	m.selected = make(map[int64]bool)
	for _, e := range m.entries {
		if e.MsgNum >= lo && e.MsgNum <= hi {
			m.selected[e.MsgNum] = true
		}
	}
	return 0
}

// SetReadingPane installs a resolved message below the table.
func (m *Mailbox) SetReadingPane(msgnum int64, msg *citadel.Message, err error) {
	if msgnum != m.displayed {
		// A stale resolution for a message the user moved past.
		return
	}
	if err != nil {
		m.reading.SetContent(MsgErrorStyle.Render(fmt.Sprintf("Message %d could not be loaded", msgnum)))
		return
	}

	var sb strings.Builder
	sb.WriteString(MsgHeaderStyle.Render(msg.From))
	if msg.Addr != "" {
		sb.WriteString(MsgDateStyle.Render(" <" + msg.Addr + ">"))
	}
	sb.WriteString("  " + MsgDateStyle.Render(time.Unix(msg.Time, 0).Format("2006-01-02 15:04")) + "\n")
	if len(msg.To) > 0 {
		sb.WriteString(MsgDateStyle.Render("To: "+strings.Join(msg.To, ", ")) + "\n")
	}
	if len(msg.Cc) > 0 {
		sb.WriteString(MsgDateStyle.Render("Cc: "+strings.Join(msg.Cc, ", ")) + "\n")
	}
	if msg.Subj != "" {
		sb.WriteString(MsgSubjectStyle.Render(msg.Subj) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(msg.Text)
	m.reading.SetContent(sb.String())
}

// Update routes scroll keys to the reading pane.
func (m *Mailbox) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.reading, cmd = m.reading.Update(msg)
	return cmd
}

// View implements Renderer.
func (m *Mailbox) View() string {
	innerWidth := m.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	// Column layout: subject gets what the fixed columns leave over.
	numW := 8
	dateW := 12
	senderW := innerWidth / 4
	subjW := innerWidth - numW - dateW - senderW - 3

	header := fmt.Sprintf("%s %s %s %s",
		runewidth.FillRight("Subject", subjW),
		runewidth.FillRight("Sender", senderW),
		runewidth.FillRight("Date", dateW),
		runewidth.FillRight("#", numW),
	)

	rows := m.tableHeight() - 1
	if m.cursorIdx < m.scrollOffset {
		m.scrollOffset = m.cursorIdx
	}
	if m.cursorIdx >= m.scrollOffset+rows {
		m.scrollOffset = m.cursorIdx - rows + 1
	}

	var sb strings.Builder
	sb.WriteString(TableHeaderStyle.Width(innerWidth).Render(header) + "\n")

	end := m.scrollOffset + rows
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.scrollOffset; i < end; i++ {
		e := m.entries[i]
		sender := e.Author
		if e.Addr != "" {
			sender += " <" + e.Addr + ">"
		}
		line := fmt.Sprintf("%s %s %s %s",
			runewidth.FillRight(runewidth.Truncate(e.Subject, subjW, "…"), subjW),
			runewidth.FillRight(runewidth.Truncate(sender, senderW, "…"), senderW),
			runewidth.FillRight(time.Unix(e.Time, 0).Format("2006-01-02"), dateW),
			runewidth.FillRight(fmt.Sprintf("%d", e.MsgNum), numW),
		)

		style := TableRowStyle
		if m.selected[e.MsgNum] {
			style = TableRowSelectedStyle
		}
		if i == m.cursorIdx && m.focused {
			style = style.Foreground(ColorUnread)
		}
		sb.WriteString(style.Render(line) + "\n")
	}
	if len(m.entries) == 0 {
		sb.WriteString(MsgDateStyle.Render("No messages.") + "\n")
	}

	sb.WriteString(strings.Repeat("─", innerWidth) + "\n")
	sb.WriteString(m.reading.View())

	panel := PanelStyle
	if m.focused {
		panel = PanelFocusedStyle
	}
	return panel.Width(m.width - 2).Height(m.height - 2).Render(sb.String())
}

// SetFocused sets the focus state
func (m *Mailbox) SetFocused(focused bool) {
	m.focused = focused
}
