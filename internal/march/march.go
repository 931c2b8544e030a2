// Package march implements the "go to next unread room" traversal.
// A march queue is an ordered worklist of rooms with unread content,
// refilled on demand from the server's room list and drained FIFO.
package march

import (
	"context"
	"sort"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/logger"
)

// Op is a traversal operation. The numbering matches the server
// protocol's goto variants.
type Op int

const (
	// OpUngoto returns to the previous room. Reserved: the transition
	// is declared but deliberately unimplemented, matching the
	// upstream behavior. Calling it is a no-op.
	OpUngoto Op = iota
	// OpSkip moves to the next unread room without marking the current
	// room as read.
	OpSkip
	// OpGoto moves to the next unread room and marks the room being
	// left as read (fire-and-forget).
	OpGoto
)

func (o Op) String() string {
	switch o {
	case OpUngoto:
		return "ungoto"
	case OpSkip:
		return "skip"
	case OpGoto:
		return "goto"
	default:
		return "unknown"
	}
}

// State is the queue's lifecycle state.
type State int

const (
	StateEmpty State = iota
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StatePopulated:
		return "POPULATED"
	default:
		return "Unknown"
	}
}

// Entry is a lightweight projection of a room for traversal purposes.
type Entry struct {
	Name       string
	Floor      int
	ROrder     int
	HasNewMsgs bool
}

// RoomLister supplies the room list used to refill the queue.
type RoomLister interface {
	Rooms(ctx context.Context) ([]citadel.Room, error)
}

// ReadMarker receives the fire-and-forget mark-as-read side effect.
type ReadMarker interface {
	MarkLastRead(ctx context.Context, room string, last int64) error
}

// Queue is the room-traversal state machine.
type Queue struct {
	entries []Entry
	lister  RoomLister
	marker  ReadMarker
}

// New creates an empty march queue.
func New(lister RoomLister, marker ReadMarker) *Queue {
	return &Queue{lister: lister, marker: marker}
}

// State returns EMPTY or POPULATED.
func (q *Queue) State() State {
	if len(q.entries) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// Len returns the number of rooms remaining in the worklist.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Next advances the traversal and returns the name of the room to
// navigate to. current and lastSeen describe the room being left.
//
// Skip and Goto behave identically except that Goto also emits the
// mark-as-read side effect for the room being left. Ungoto is a
// reserved no-op and returns ok=false. A failed room-list refill also
// returns ok=false: the operation is silently abandoned and the queue
// stays EMPTY.
func (q *Queue) Next(ctx context.Context, op Op, current string, lastSeen int64) (string, bool) {
	log := logger.WithComponent("march")

	if op == OpUngoto {
		log.Debug("ungoto requested but not implemented")
		return "", false
	}

	if len(q.entries) == 0 {
		if err := q.populate(ctx); err != nil {
			log.Debug("room list refill failed, abandoning traversal", "error", err)
			return "", false
		}
	}

	next := q.entries[0]
	q.entries = q.entries[1:]
	log.Debug("advancing", "op", op.String(), "to", next.Name, "remaining", len(q.entries))

	if op == OpGoto && current != "" {
		q.markRead(current, lastSeen)
	}

	return next.Name, true
}

// populate refills the queue: rooms with unread content that render as
// bulletin boards, ordered by (floor, rorder, name). When nothing
// qualifies, the lobby sentinel keeps the traversal from dead-ending.
func (q *Queue) populate(ctx context.Context) error {
	rooms, err := q.lister.Rooms(ctx)
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(rooms))
	for _, r := range rooms {
		if r.HasNewMsgs && r.CurrentView == citadel.ViewBBS {
			entries = append(entries, Entry{
				Name:       r.Name,
				Floor:      r.Floor,
				ROrder:     r.ROrder,
				HasNewMsgs: true,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Floor != entries[j].Floor {
			return entries[i].Floor < entries[j].Floor
		}
		if entries[i].ROrder != entries[j].ROrder {
			return entries[i].ROrder < entries[j].ROrder
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) == 0 {
		entries = append(entries, Entry{Name: citadel.BaseRoom, Floor: 0, HasNewMsgs: true})
	}

	q.entries = entries
	logger.WithComponent("march").Info("march list populated", "rooms", len(entries))
	return nil
}

// markRead fires the at-most-once mark-as-read for the room being
// left. The outcome is unobserved by the state machine; it is logged
// at the boundary so the gap stays operationally visible.
func (q *Queue) markRead(room string, lastSeen int64) {
	go func() {
		log := logger.WithComponent("march")
		if err := q.marker.MarkLastRead(context.Background(), room, lastSeen); err != nil {
			log.Debug("mark-as-read failed (not retried)", "room", room, "error", err)
			return
		}
		log.Debug("marked room as read", "room", room, "last", lastSeen)
	}()
}
