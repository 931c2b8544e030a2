package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FlashType categorizes a transient footer message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash stays visible.
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient message shown in place of key bindings.
type FlashMessage struct {
	Text    string
	Type    FlashType
	Expires time.Time
}

// FlashExpireMsg asks the footer to drop an expired flash.
type FlashExpireMsg time.Time

// FlashTick returns a command that fires when the current flash should
// be re-checked for expiry.
func FlashTick() tea.Cmd {
	return tea.Tick(DefaultFlashDuration, func(t time.Time) tea.Msg {
		return FlashExpireMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer is the bottom bar: key bindings, or a flash message while one
// is active.
type Footer struct {
	width        int
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings replaces the displayed key bindings. The mounted view
// decides what is relevant.
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a transient message with the default duration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a transient message for a custom duration.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:    text,
		Type:    flashType,
		Expires: time.Now().Add(d),
	}
}

// ExpireFlash drops the flash if its time has passed.
func (f *Footer) ExpireFlash() {
	if f.flashMessage != nil && time.Now().After(f.flashMessage.Expires) {
		f.flashMessage = nil
	}
}

// flashStyle maps a flash type to its color.
func flashStyle(t FlashType) lipgloss.Style {
	switch t {
	case FlashError:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	case FlashWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case FlashSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(ColorInfo)
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil && time.Now().Before(f.flashMessage.Expires) {
		return FooterStyle.Width(f.width).Render(flashStyle(f.flashMessage.Type).Render(f.flashMessage.Text))
	}

	var parts []string
	for _, b := range f.bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	return FooterStyle.Width(f.width).Render(strings.Join(parts, sep))
}
