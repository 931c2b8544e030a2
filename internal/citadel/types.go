// Package citadel is the HTTP+JSON client for a Citadel-style groupware
// server. It covers rooms, message windows, mailbox summaries, posting,
// and session identity. The server is authoritative for everything; this
// package never caches.
package citadel

// BaseRoom is the lobby room every server guarantees to have. It doubles
// as the march-list sentinel so "next unread" traversal always terminates
// somewhere.
const BaseRoom = "_BASEROOM_"

// NoUpperBound is the wire sentinel for "no upper bound" in a message
// window request. The server treats it as +infinity.
const NoUpperBound int64 = 9999999999

// ViewKind is the enumerated content interpretation for a room.
// Values mirror the server's view numbering and must not be reordered.
type ViewKind int

const (
	ViewBBS         ViewKind = iota // Bulletin board view
	ViewMailbox                     // Mailbox summary
	ViewAddressBook                 // Address book view
	ViewCalendar                    // Calendar view
	ViewTasks                       // Tasks view
	ViewNotes                       // Notes view
	ViewWiki                        // Wiki view
	ViewCalBrief                    // Brief calendar view
	ViewJournal                     // Journal view
	ViewDrafts                      // Drafts view
	ViewBlog                        // Blog view
	ViewQueue                       // Mail queue rooms
	ViewWikiMD                      // Markdown wiki view
)

func (v ViewKind) String() string {
	switch v {
	case ViewBBS:
		return "bulletin board"
	case ViewMailbox:
		return "mailbox"
	case ViewAddressBook:
		return "address book"
	case ViewCalendar:
		return "calendar"
	case ViewTasks:
		return "tasks"
	case ViewNotes:
		return "notes"
	case ViewWiki:
		return "wiki"
	case ViewCalBrief:
		return "brief calendar"
	case ViewJournal:
		return "journal"
	case ViewDrafts:
		return "drafts"
	case ViewBlog:
		return "blog"
	case ViewQueue:
		return "mail queue"
	case ViewWikiMD:
		return "markdown wiki"
	default:
		return "unknown"
	}
}

// Room is a named container of messages. The client never owns
// authoritative room state, only a read-through snapshot.
type Room struct {
	Name          string   `json:"name"`
	Floor         int      `json:"floor"`
	ROrder        int      `json:"rorder"`
	CurrentView   ViewKind `json:"current_view"`
	DefaultView   ViewKind `json:"default_view"`
	HasNewMsgs    bool     `json:"hasnewmsgs"`
	MTime         int64    `json:"mtime"`
	LastSeen      int64    `json:"last_seen"`
	NewMessages   int      `json:"new_messages"`
	TotalMessages int      `json:"total_messages"`
}

// Message is a fully resolved message. Text is a pre-rendered HTML
// fragment from the server and is treated as opaque; the client never
// reparses it.
type Message struct {
	From string   `json:"from"`
	Addr string   `json:"addr"`
	Subj string   `json:"subj,omitempty"`
	Time int64    `json:"time"`
	Wefw string   `json:"wefw"` // thread reference chain
	Msgn string   `json:"msgn"` // globally unique message-id string
	To   []string `json:"to,omitempty"`
	Cc   []string `json:"cc,omitempty"`
	Text string   `json:"text"`
}

// MailboxEntry is one row of a mailbox summary table.
type MailboxEntry struct {
	MsgNum  int64  `json:"msgnum"`
	Subject string `json:"subject"`
	Author  string `json:"author"`
	Addr    string `json:"addr"`
	Time    int64  `json:"time"`
}

// RoomStat is the polled modification state of a room.
type RoomStat struct {
	MTime int64 `json:"mtime"`
}

// Direction selects which side of a cursor boundary to fetch.
type Direction int

const (
	// GreaterThan requests all message numbers above the boundary.
	GreaterThan Direction = iota
	// LessThan requests all message numbers below the boundary.
	LessThan
)

// Cursor is a pagination boundary. Exactly one direction is active at a
// time; a LessThan cursor at NoUpperBound means "from the newest".
type Cursor struct {
	Boundary int64
	Dir      Direction
}

// FirstLoad is the cursor used when entering a room with no position:
// everything below +infinity.
func FirstLoad() Cursor {
	return Cursor{Boundary: NoUpperBound, Dir: LessThan}
}

// IsDefault reports whether the cursor is the no-lower-bound first-load
// case, which is the only case that gets a "newer posts" control.
func (c Cursor) IsDefault() bool {
	return c.Dir == LessThan && c.Boundary == NoUpperBound
}
