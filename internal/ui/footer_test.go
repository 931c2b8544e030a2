package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFooterShowsBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	f.SetBindings([]KeyBinding{{Key: "g", Desc: "goto next"}})

	view := f.View()
	if !strings.Contains(view, "g") || !strings.Contains(view, "goto next") {
		t.Errorf("bindings missing from view: %q", view)
	}
}

func TestFlashReplacesBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	f.SetBindings([]KeyBinding{{Key: "g", Desc: "goto next"}})
	f.SetFlash("Message posted", FlashSuccess)

	view := f.View()
	if !strings.Contains(view, "Message posted") {
		t.Errorf("flash missing from view: %q", view)
	}
	if strings.Contains(view, "goto next") {
		t.Errorf("bindings shown during flash: %q", view)
	}
}

func TestExpireFlashRestoresBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	f.SetBindings([]KeyBinding{{Key: "g", Desc: "goto next"}})
	f.SetFlashWithDuration("brief", FlashInfo, -time.Second)

	f.ExpireFlash()
	view := f.View()
	if strings.Contains(view, "brief") {
		t.Errorf("expired flash still shown: %q", view)
	}
	if !strings.Contains(view, "goto next") {
		t.Errorf("bindings not restored: %q", view)
	}
}

func TestExpireFlashKeepsLiveFlash(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	f.SetFlash("still here", FlashWarning)

	f.ExpireFlash()
	if !strings.Contains(f.View(), "still here") {
		t.Error("live flash dropped early")
	}
}
