package session

import (
	"testing"

	"github.com/stoa-client/stoa/internal/citadel"
)

func TestNewStartsAnonymousInLobby(t *testing.T) {
	s := New()
	if s.LoggedIn() {
		t.Error("new session should be anonymous")
	}
	if s.UserName() != AnonymousName {
		t.Errorf("user name %q, want %q", s.UserName(), AnonymousName)
	}
	if s.CurrentRoom() != citadel.BaseRoom {
		t.Errorf("current room %q, want %q", s.CurrentRoom(), citadel.BaseRoom)
	}
}

func TestSetIdentity(t *testing.T) {
	s := New()
	s.SetIdentity("Testy", true)
	if !s.LoggedIn() || s.UserName() != "Testy" {
		t.Errorf("login not recorded: %q %v", s.UserName(), s.LoggedIn())
	}

	s.SetIdentity("", false)
	if s.LoggedIn() {
		t.Error("logout not recorded")
	}
	if s.UserName() != AnonymousName {
		t.Errorf("user name after logout %q, want %q", s.UserName(), AnonymousName)
	}
}

func TestEnterRoomRefreshesScopedFields(t *testing.T) {
	s := New()
	s.EnterRoom(&citadel.Room{
		Name:          "Tech",
		CurrentView:   citadel.ViewBBS,
		NewMessages:   3,
		TotalMessages: 10,
		LastSeen:      42,
	})

	if s.CurrentRoom() != "Tech" {
		t.Errorf("current room %q", s.CurrentRoom())
	}
	if s.CurrentView() != citadel.ViewBBS {
		t.Errorf("current view %v", s.CurrentView())
	}
	newMsgs, total := s.Counters()
	if newMsgs != 3 || total != 10 {
		t.Errorf("counters (%d, %d), want (3, 10)", newMsgs, total)
	}
	if s.LastSeen() != 42 {
		t.Errorf("last seen %d, want 42", s.LastSeen())
	}
}

func TestObserveHighestNeverMovesBackwards(t *testing.T) {
	s := New()
	s.EnterRoom(&citadel.Room{Name: "Tech", LastSeen: 100})

	s.ObserveHighest(150)
	if s.LastSeen() != 150 {
		t.Errorf("last seen %d, want 150", s.LastSeen())
	}

	s.ObserveHighest(120)
	if s.LastSeen() != 150 {
		t.Errorf("last seen moved backwards to %d", s.LastSeen())
	}

	s.ObserveHighest(0)
	if s.LastSeen() != 150 {
		t.Errorf("last seen reset to %d", s.LastSeen())
	}
}
