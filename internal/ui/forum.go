package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/window"
)

// loadingText matches the wording long-time users expect while a
// window is in flight.
const loadingText = "Loading messages from server, please wait"

// Forum renders bulletin-board rooms as a paginated message window.
type Forum struct {
	vp     viewport.Model
	width  int
	height int

	room string
	win  *window.Window

	// prior holds the rendered content captured before a window fetch
	// was issued, restored verbatim if the fetch fails.
	prior     string
	loading   bool
	didScroll bool

	// slotLine maps each slot's message number to its first content
	// line, for scroll targeting.
	slotLine map[int64]int
}

// NewForum creates the forum renderer.
func NewForum() *Forum {
	return &Forum{vp: viewport.New()}
}

// Mount implements Renderer.
func (f *Forum) Mount(room *citadel.Room) {
	f.room = room.Name
	f.win = nil
	f.prior = ""
	f.didScroll = false
	f.loading = true
	f.vp.SetContent(loadingText)
}

// Unmount implements Renderer. The forum has no background activity.
func (f *Forum) Unmount() {}

// SetSize implements Renderer.
func (f *Forum) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.vp.SetWidth(width - 4)
	f.vp.SetHeight(height - 2)
	if f.win != nil {
		f.render()
	}
}

// Bindings implements Renderer.
func (f *Forum) Bindings() []KeyBinding {
	b := []KeyBinding{
		{Key: "r", Desc: "reply"},
		{Key: "pgup/dn", Desc: "scroll"},
	}
	if f.win != nil && f.win.Older != nil {
		b = append([]KeyBinding{{Key: "o", Desc: "older posts"}}, b...)
	}
	if f.win != nil && f.win.Newer != nil {
		b = append([]KeyBinding{{Key: "n", Desc: "newer posts"}}, b...)
	}
	return b
}

// BeginFetch snapshots the current content so a failed fetch can put
// it back, then shows the loading text.
func (f *Forum) BeginFetch() {
	if !f.loading {
		f.prior = f.vp.View()
	}
	f.loading = true
	f.vp.SetContent(loadingText)
}

// RestorePrior rolls the panel back to its pre-fetch content. This is
// the whole failure UI: the user keeps what they had and can retry.
func (f *Forum) RestorePrior() {
	f.loading = false
	f.vp.SetContent(f.prior)
}

// SetWindow installs a freshly fetched window. Slots render as
// placeholders until resolution fills them.
func (f *Forum) SetWindow(win *window.Window) {
	f.win = win
	f.loading = false
	f.didScroll = false
	f.render()
}

// Refresh re-renders the current window (after slots fill) and
// performs the one scroll action once the target slot has resolved.
func (f *Forum) Refresh() {
	if f.win == nil {
		return
	}
	f.render()
	if !f.didScroll && f.win.ScrollTarget != 0 {
		if s := f.win.Slot(f.win.ScrollTarget); s != nil && s.Done {
			if line, ok := f.slotLine[f.win.ScrollTarget]; ok {
				f.vp.SetYOffset(line)
				f.didScroll = true
			}
		}
	}
}

// Window returns the current window, or nil while loading.
func (f *Forum) Window() *window.Window {
	return f.win
}

// Room returns the room this renderer is mounted on.
func (f *Forum) Room() string {
	return f.room
}

// Update routes scroll keys to the viewport.
func (f *Forum) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.vp, cmd = f.vp.Update(msg)
	return cmd
}

// render rebuilds the viewport content from the window's slots.
func (f *Forum) render() {
	var sb strings.Builder
	f.slotLine = make(map[int64]int, len(f.win.Slots))
	line := 0

	writeln := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\n")
		line += strings.Count(s, "\n") + 1
	}

	if f.win.Older != nil {
		writeln(NavControlStyle.Render("▲ Older posts  (o)"))
		writeln("")
	}

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(1, f.vp.Width())))
	for i := range f.win.Slots {
		s := &f.win.Slots[i]
		f.slotLine[s.MsgNum] = line
		switch {
		case !s.Done:
			writeln(MsgDateStyle.Render(fmt.Sprintf("#%d …", s.MsgNum)))
		case s.Err != nil:
			writeln(MsgErrorStyle.Render(fmt.Sprintf("#%d could not be loaded", s.MsgNum)))
		default:
			writeln(f.renderMessage(s.MsgNum, s.Msg))
		}
		writeln(sep)
	}

	if f.win.Newer != nil {
		writeln("")
		writeln(NavControlStyle.Render("▼ Newer posts  (n)"))
	}

	if len(f.win.Slots) == 0 {
		writeln(MsgDateStyle.Render("No messages here."))
	}

	f.vp.SetContent(sb.String())
}

// renderMessage formats one resolved message. The body is the server's
// pre-rendered fragment, shown as-is.
func (f *Forum) renderMessage(msgnum int64, msg *citadel.Message) string {
	var sb strings.Builder

	from := MsgHeaderStyle.Render(msg.From)
	if msg.Addr != "" {
		from += MsgDateStyle.Render(" <" + msg.Addr + ">")
	}
	date := MsgDateStyle.Render(time.Unix(msg.Time, 0).Format("2006-01-02 15:04"))
	num := MsgDateStyle.Render(fmt.Sprintf("#%d", msgnum))
	sb.WriteString(from + "  " + date + "  " + num + "\n")

	if msg.Subj != "" {
		sb.WriteString(MsgSubjectStyle.Render(msg.Subj) + "\n")
	}
	sb.WriteString(msg.Text)
	return sb.String()
}

// View implements Renderer.
func (f *Forum) View() string {
	return PanelStyle.Width(f.width - 2).Height(f.height - 2).Render(f.vp.View())
}
