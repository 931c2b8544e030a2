// Package window resolves bounded, cursor-positioned message windows.
// A window is built in two phases: FetchWindow learns the ordered
// message numbers and reserves one slot per number, then ResolveAll
// fills the slots concurrently. Slots are always addressed by message
// number, never by completion order; that is what keeps interleaved
// responses from corrupting the display.
package window

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/logger"
)

// MessageSource is the slice of the server API this package needs.
type MessageSource interface {
	MessageNums(ctx context.Context, room string, cur citadel.Cursor) ([]int64, error)
	Message(ctx context.Context, room string, msgnum int64) (*citadel.Message, error)
}

// Slot is the pre-reserved landing place for one message body.
type Slot struct {
	MsgNum int64
	Msg    *citadel.Message // nil until resolved
	Err    error            // non-nil renders an inline error marker
	Done   bool
}

// Window is a bounded page of messages plus the navigation boundaries
// around it.
type Window struct {
	Room   string
	Cursor citadel.Cursor

	// Slots holds one entry per kept message number, in display order.
	Slots []Slot

	// ScrollTarget is the message number the view should scroll to
	// once that slot resolves. Zero when the window is empty.
	ScrollTarget int64

	// Older, when non-nil, is the cursor for the "older posts"
	// control rendered above the window.
	Older *citadel.Cursor

	// Newer, when non-nil, is the cursor for the "newer posts"
	// control rendered below the window.
	Newer *citadel.Cursor

	index map[int64]int

	mu       sync.Mutex // guards scrolled across concurrent Fill calls
	scrolled bool
}

// HighestRef returns the largest message number in the window, or 0
// when the window is empty. Callers advance the advisory last-seen
// pointer with it.
func (w *Window) HighestRef() int64 {
	if len(w.Slots) == 0 {
		return 0
	}
	high := w.Slots[0].MsgNum
	for _, s := range w.Slots[1:] {
		if s.MsgNum > high {
			high = s.MsgNum
		}
	}
	return high
}

// Slot returns the slot for a message number, or nil if the number is
// not part of this window.
func (w *Window) Slot(msgnum int64) *Slot {
	i, ok := w.index[msgnum]
	if !ok {
		return nil
	}
	return &w.Slots[i]
}

// Fill places a resolution result into the slot keyed by msgnum. The
// return value reports whether the view should perform its one scroll
// action now: true exactly once, when the scroll-target slot fills.
func (w *Window) Fill(msgnum int64, msg *citadel.Message, err error) bool {
	s := w.Slot(msgnum)
	if s == nil {
		return false
	}
	s.Msg = msg
	s.Err = err
	s.Done = true

	if msgnum != w.ScrollTarget {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.scrolled {
		return false
	}
	w.scrolled = true
	return true
}

// Complete reports whether every slot has resolved (successfully or
// not).
func (w *Window) Complete() bool {
	for i := range w.Slots {
		if !w.Slots[i].Done {
			return false
		}
	}
	return true
}

// Fetcher applies the pagination policy for a room's message windows.
type Fetcher struct {
	src      MessageSource
	pageSize int
}

// NewFetcher creates a fetcher with the given page size.
func NewFetcher(src MessageSource, pageSize int) *Fetcher {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Fetcher{src: src, pageSize: pageSize}
}

// FetchWindow resolves the message numbers for one window position.
//
// Truncation: a greater-than cursor keeps the first pageSize numbers
// (everything above a known point is already bounded "new" content);
// a less-than cursor keeps the last pageSize (most recent retained).
//
// The scroll target is the first entry for greater-than windows and
// the last entry for bounded less-than windows. On the default first
// load the target depends on login state: returning users resume at
// the newest message, anonymous visitors start at the oldest kept.
func (f *Fetcher) FetchWindow(ctx context.Context, room string, cur citadel.Cursor, loggedIn bool) (*Window, error) {
	refs, err := f.src.MessageNums(ctx, room, cur)
	if err != nil {
		return nil, err
	}

	w := &Window{Room: room, Cursor: cur}

	switch {
	case cur.Dir == citadel.GreaterThan:
		if len(refs) > f.pageSize {
			refs = refs[:f.pageSize]
		}
		if len(refs) > 0 {
			w.ScrollTarget = refs[0]
		}
	default:
		if len(refs) > f.pageSize {
			refs = refs[len(refs)-f.pageSize:]
		}
		if len(refs) > 0 {
			if cur.IsDefault() && !loggedIn {
				w.ScrollTarget = refs[0]
			} else {
				w.ScrollTarget = refs[len(refs)-1]
			}
		}
	}

	// An "older" control sits above every less-than window; the
	// boundary carries forward unchanged when the page came back
	// empty. A "newer" control exists only where the request had no
	// lower bound still in play: greater-than pages and the default
	// first load.
	if cur.Dir == citadel.LessThan {
		older := citadel.Cursor{Dir: citadel.LessThan, Boundary: cur.Boundary}
		if len(refs) > 0 {
			older.Boundary = refs[0]
		}
		w.Older = &older
	}
	if cur.Dir == citadel.GreaterThan || cur.IsDefault() {
		newer := citadel.Cursor{Dir: citadel.GreaterThan}
		if cur.Dir == citadel.GreaterThan {
			newer.Boundary = cur.Boundary
		}
		if len(refs) > 0 {
			newer.Boundary = refs[len(refs)-1]
		}
		w.Newer = &newer
	}

	w.Slots = make([]Slot, len(refs))
	w.index = make(map[int64]int, len(refs))
	for i, ref := range refs {
		w.Slots[i] = Slot{MsgNum: ref}
		w.index[ref] = i
	}

	logger.WithComponent("window").Debug("window fetched",
		"room", room, "kept", len(refs), "scrollTarget", w.ScrollTarget)
	return w, nil
}

// ResolveAll issues one body retrieval per slot, all concurrently, and
// fills each slot by message number as its response arrives. Every
// fill is announced on the returned channel after the slot is written;
// the channel closes once the window is complete. A failed retrieval
// marks only its own slot, siblings are unaffected.
func (f *Fetcher) ResolveAll(ctx context.Context, w *Window) <-chan int64 {
	ch := make(chan int64, len(w.Slots))
	g, ctx := errgroup.WithContext(ctx)
	for i := range w.Slots {
		msgnum := w.Slots[i].MsgNum
		g.Go(func() error {
			msg, err := f.src.Message(ctx, w.Room, msgnum)
			w.Fill(msgnum, msg, err)
			ch <- msgnum
			return nil
		})
	}
	go func() {
		g.Wait()
		close(ch)
	}()
	return ch
}

// PageSize returns the window page size.
func (f *Fetcher) PageSize() int {
	return f.pageSize
}
