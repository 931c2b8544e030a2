package ui

import "charm.land/lipgloss/v2"

// Color palette - amber on slate, an old terminal BBS look
var (
	ColorPrimary     = lipgloss.Color("#D97706") // Amber
	ColorSecondary   = lipgloss.Color("#14B8A6") // Teal
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#334155") // Slate
	ColorBorderFocus = lipgloss.Color("#D97706") // Amber when focused
	ColorText        = lipgloss.Color("#F8FAFC") // Light text
	ColorTextMuted   = lipgloss.Color("#94A3B8") // Muted text
	ColorTextInverse = lipgloss.Color("#1E293B") // Dark text for light backgrounds
	ColorUnread      = lipgloss.Color("#FBBF24") // Bright amber for unread rooms
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for warnings
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
	ColorInfo        = lipgloss.Color("#14B8A6") // Teal for info
	ColorSelected    = lipgloss.Color("#422006") // Selection background
)

// Banner styles
var (
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	BannerUserStyle = lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorPrimary)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Room list styles
var (
	RoomItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	RoomSelectedStyle = lipgloss.NewStyle().
				Background(ColorSelected).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)

	RoomUnreadStyle = lipgloss.NewStyle().
			Foreground(ColorUnread).
			Bold(true).
			Padding(0, 1)

	FloorLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Bold(true).
			Padding(0, 1)
)

// Message styles
var (
	MsgHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	MsgDateStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	MsgSubjectStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MsgErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Italic(true)

	NavControlStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Underline(true)
)

// Mailbox table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextInverse).
				Background(ColorSecondary)

	TableRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TableRowSelectedStyle = lipgloss.NewStyle().
				Background(ColorSelected).
				Foreground(ColorText).
				Bold(true)

	TableRowCursorStyle = lipgloss.NewStyle().
				Foreground(ColorUnread)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderFocus).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ModalErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)
