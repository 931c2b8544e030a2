package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/window"
)

type stubSource struct {
	nums []int64
}

func (s *stubSource) MessageNums(ctx context.Context, room string, cur citadel.Cursor) ([]int64, error) {
	return s.nums, nil
}

func (s *stubSource) Message(ctx context.Context, room string, msgnum int64) (*citadel.Message, error) {
	return &citadel.Message{From: "a", Text: fmt.Sprintf("body %d", msgnum)}, nil
}

func fetchedWindow(t *testing.T, nums ...int64) *window.Window {
	t.Helper()
	f := window.NewFetcher(&stubSource{nums: nums}, 20)
	w, err := f.FetchWindow(context.Background(), "Tech", citadel.FirstLoad(), true)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestForumShowsLoadingOnMount(t *testing.T) {
	f := NewForum()
	f.SetSize(80, 24)
	f.Mount(&citadel.Room{Name: "Tech", CurrentView: citadel.ViewBBS})

	if !strings.Contains(f.View(), loadingText) {
		t.Error("loading text missing after mount")
	}
}

func TestForumRendersPlaceholdersThenBodies(t *testing.T) {
	f := NewForum()
	f.SetSize(80, 24)
	f.Mount(&citadel.Room{Name: "Tech", CurrentView: citadel.ViewBBS})

	win := fetchedWindow(t, 1, 2)
	f.SetWindow(win)
	if view := f.View(); !strings.Contains(view, "#1") || !strings.Contains(view, "#2") {
		t.Errorf("pending placeholders missing: %q", view)
	}

	win.Fill(1, &citadel.Message{From: "a", Text: "body 1"}, nil)
	win.Fill(2, &citadel.Message{From: "a", Text: "body 2"}, nil)
	f.Refresh()
	if view := f.View(); !strings.Contains(view, "body 1") || !strings.Contains(view, "body 2") {
		t.Errorf("resolved bodies missing: %q", view)
	}
}

func TestForumRollbackRestoresPriorContent(t *testing.T) {
	f := NewForum()
	f.SetSize(80, 24)
	f.Mount(&citadel.Room{Name: "Tech", CurrentView: citadel.ViewBBS})

	win := fetchedWindow(t, 7)
	f.SetWindow(win)
	win.Fill(7, &citadel.Message{From: "a", Text: "the good stuff"}, nil)
	f.Refresh()

	f.BeginFetch()
	if !strings.Contains(f.View(), loadingText) {
		t.Fatal("loading text missing during fetch")
	}

	f.RestorePrior()
	view := f.View()
	if strings.Contains(view, loadingText) {
		t.Error("loading text survived rollback")
	}
	if !strings.Contains(view, "the good stuff") {
		t.Errorf("prior content not restored: %q", view)
	}
}

func TestForumInlineErrorMarker(t *testing.T) {
	f := NewForum()
	f.SetSize(80, 24)
	f.Mount(&citadel.Room{Name: "Tech", CurrentView: citadel.ViewBBS})

	win := fetchedWindow(t, 1, 2)
	f.SetWindow(win)
	win.Fill(1, nil, fmt.Errorf("boom"))
	win.Fill(2, &citadel.Message{From: "a", Text: "fine"}, nil)
	f.Refresh()

	view := f.View()
	if !strings.Contains(view, "could not be loaded") {
		t.Errorf("inline error marker missing: %q", view)
	}
	if !strings.Contains(view, "fine") {
		t.Errorf("sibling message missing: %q", view)
	}
}
