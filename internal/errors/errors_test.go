package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestEComposesFields(t *testing.T) {
	underlying := stderrors.New("connection reset")
	err := E(Op("citadel.Rooms"), KindNetwork, "fetching room list", underlying)

	msg := err.Error()
	if !strings.Contains(msg, "citadel.Rooms") || !strings.Contains(msg, "connection reset") {
		t.Errorf("message missing fields: %q", msg)
	}
	if !stderrors.Is(err, underlying) {
		t.Error("underlying error not unwrappable")
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	inner := E(Op("citadel.Login"), KindAuth, "rejected")
	outer := fmt.Errorf("while starting: %w", inner)

	if !Is(outer, KindAuth) {
		t.Error("kind not found through wrapping")
	}
	if Is(outer, KindNetwork) {
		t.Error("wrong kind matched")
	}
	if Is(stderrors.New("plain"), KindAuth) {
		t.Error("plain error matched a kind")
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(E(KindTimeout, "slow")); got != KindTimeout {
		t.Errorf("kind %v, want timeout", got)
	}
	if got := GetKind(stderrors.New("plain")); got != KindUnknown {
		t.Errorf("plain error kind %v, want unknown", got)
	}
}

func TestStatusErrorMapsCodes(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{404, KindNotFound},
		{408, KindTimeout},
		{500, KindProtocol},
	}
	for _, c := range cases {
		err := StatusError("op", c.status)
		if GetKind(err) != c.kind {
			t.Errorf("status %d mapped to %v, want %v", c.status, GetKind(err), c.kind)
		}
	}
}
