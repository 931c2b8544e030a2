package ui

import (
	"testing"

	"github.com/stoa-client/stoa/internal/citadel"
)

func TestSetRoomsSortsByFloorOrderName(t *testing.T) {
	rl := NewRoomList()
	rl.SetRooms([]citadel.Room{
		{Name: "Zeta", Floor: 1, ROrder: 1},
		{Name: "Beta", Floor: 0, ROrder: 5},
		{Name: "Alpha", Floor: 0, ROrder: 5},
		{Name: "Lobby", Floor: 0, ROrder: 1},
	})

	want := []string{"Lobby", "Alpha", "Beta", "Zeta"}
	var got []string
	for range want {
		r := rl.Selected()
		if r == nil {
			t.Fatal("cursor on nil room")
		}
		got = append(got, r.Name)
		rl.MoveDown()
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursorSkipsFloorLabels(t *testing.T) {
	rl := NewRoomList()
	rl.SetRooms([]citadel.Room{
		{Name: "Lobby", Floor: 0},
		{Name: "Tech", Floor: 1},
	})

	if r := rl.Selected(); r == nil || r.Name != "Lobby" {
		t.Fatalf("initial selection %+v", r)
	}
	rl.MoveDown()
	if r := rl.Selected(); r == nil || r.Name != "Tech" {
		t.Errorf("cursor landed on %+v, want Tech", r)
	}
	rl.MoveUp()
	if r := rl.Selected(); r == nil || r.Name != "Lobby" {
		t.Errorf("cursor landed on %+v, want Lobby", r)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	rl := NewRoomList()
	rl.SetRooms([]citadel.Room{{Name: "Lobby", Floor: 0}})

	rl.MoveUp()
	if r := rl.Selected(); r == nil || r.Name != "Lobby" {
		t.Errorf("MoveUp at top broke selection: %+v", r)
	}
	rl.MoveDown()
	if r := rl.Selected(); r == nil || r.Name != "Lobby" {
		t.Errorf("MoveDown at bottom broke selection: %+v", r)
	}
}

func TestSelectedNilWhenEmpty(t *testing.T) {
	rl := NewRoomList()
	if rl.Selected() != nil {
		t.Error("empty list has a selection")
	}
}
