package ui

import (
	"reflect"
	"testing"

	"github.com/stoa-client/stoa/internal/citadel"
)

func mailboxWith(nums ...int64) *Mailbox {
	m := NewMailbox()
	m.Mount(&citadel.Room{Name: "Mail", CurrentView: citadel.ViewMailbox})
	entries := make([]citadel.MailboxEntry, len(nums))
	for i, n := range nums {
		entries[i] = citadel.MailboxEntry{MsgNum: n, Subject: "s", Author: "a"}
	}
	m.ApplyEntries(entries)
	return m
}

func TestSelectOneClearsOthers(t *testing.T) {
	m := mailboxWith(10, 20, 30)

	m.ToggleSelect() // 10
	m.MoveDown()
	m.ToggleSelect() // 20
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{10, 20}) {
		t.Fatalf("setup selection %v", got)
	}

	m.MoveDown()
	if id := m.SelectOne(); id != 30 {
		t.Fatalf("SelectOne returned %d", id)
	}
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{30}) {
		t.Errorf("selection %v, want [30]", got)
	}
	if m.Displayed() != 30 {
		t.Errorf("displayed %d, want 30", m.Displayed())
	}
}

func TestToggleSelectIsIndependent(t *testing.T) {
	m := mailboxWith(10, 20, 30)

	m.ToggleSelect()
	m.MoveDown()
	m.MoveDown()
	m.ToggleSelect()
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{10, 30}) {
		t.Errorf("selection %v, want [10 30]", got)
	}

	m.ToggleSelect()
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{10}) {
		t.Errorf("selection after untoggle %v, want [10]", got)
	}
}

func TestSelectRangeByMessageNumber(t *testing.T) {
	m := mailboxWith(10, 20, 30, 40, 50)

	// Anchor at 20, stray selection at 50 to prove clearing.
	m.MoveDown()
	m.SelectOne() // displays 20
	m.MoveDown()
	m.MoveDown()
	m.MoveDown()
	m.ToggleSelect() // 50

	m.MoveUp() // cursor at 40
	m.SelectRange()
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{20, 30, 40}) {
		t.Errorf("range selection %v, want [20 30 40]", got)
	}
}

func TestSelectRangeUpward(t *testing.T) {
	m := mailboxWith(10, 20, 30, 40)

	m.MoveDown()
	m.MoveDown()
	m.SelectOne() // anchor 30
	m.MoveUp()
	m.MoveUp() // cursor 10
	m.SelectRange()
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{10, 20, 30}) {
		t.Errorf("upward range %v, want [10 20 30]", got)
	}
}

func TestSelectRangeWithoutAnchorFallsBackToPlain(t *testing.T) {
	m := mailboxWith(10, 20, 30)

	m.MoveDown()
	if id := m.SelectRange(); id != 20 {
		t.Errorf("anchorless range returned %d, want 20 (plain select)", id)
	}
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{20}) {
		t.Errorf("selection %v, want [20]", got)
	}
}

func TestApplyEntriesPreservesSelectionByID(t *testing.T) {
	m := mailboxWith(10, 20, 30)
	m.ToggleSelect() // 10
	m.MoveDown()
	m.ToggleSelect() // 20

	// Refresh reorders rows and drops 10; only 20 survives, regardless
	// of where it now sits.
	m.ApplyEntries([]citadel.MailboxEntry{
		{MsgNum: 40}, {MsgNum: 20}, {MsgNum: 30},
	})
	if got := m.SelectedIDs(); !reflect.DeepEqual(got, []int64{20}) {
		t.Errorf("selection after refresh %v, want [20]", got)
	}
}

func TestApplyEntriesKeepsCursorOnSameMessage(t *testing.T) {
	m := mailboxWith(10, 20, 30)
	m.MoveDown() // cursor on 20

	m.ApplyEntries([]citadel.MailboxEntry{
		{MsgNum: 5}, {MsgNum: 10}, {MsgNum: 20}, {MsgNum: 30},
	})
	if id := m.SelectOne(); id != 20 {
		t.Errorf("cursor drifted to %d, want 20", id)
	}
}

func TestApplyEntriesDropsVanishedDisplayed(t *testing.T) {
	m := mailboxWith(10, 20)
	m.SelectOne() // displays 10

	m.ApplyEntries([]citadel.MailboxEntry{{MsgNum: 20}})
	if m.Displayed() != 0 {
		t.Errorf("displayed %d after its row vanished, want 0", m.Displayed())
	}
}

func TestMountResetsSelection(t *testing.T) {
	m := mailboxWith(10, 20)
	m.ToggleSelect()

	m.Mount(&citadel.Room{Name: "Drafts", CurrentView: citadel.ViewDrafts})
	if len(m.SelectedIDs()) != 0 {
		t.Error("selection survived remount")
	}
	if m.Room() != "Drafts" {
		t.Errorf("room %q", m.Room())
	}
}

func TestSetReadingPaneIgnoresStaleMessage(t *testing.T) {
	m := mailboxWith(10, 20)
	m.SelectOne() // displays 10
	m.MoveDown()
	m.SelectOne() // displays 20

	// Resolution for 10 arrives after the user moved on.
	m.SetReadingPane(10, &citadel.Message{Text: "old"}, nil)
	if m.Displayed() != 20 {
		t.Errorf("stale resolution changed displayed to %d", m.Displayed())
	}
}
