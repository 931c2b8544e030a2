package citadel

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stoa-client/stoa/internal/errors"
)

func TestDialRejectsBadURL(t *testing.T) {
	for _, bad := range []string{"", "not a url", "/relative/path"} {
		if _, err := Dial(bad); err == nil {
			t.Errorf("Dial(%q) should fail", bad)
		}
	}
}

func TestRoomsPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]Room{{Name: "Lobby", Floor: 0}})
	}))
	defer srv.Close()

	c, err := Dial(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	rooms, err := c.Rooms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/rooms/" {
		t.Errorf("path %q, want /rooms/", gotPath)
	}
	if len(rooms) != 1 || rooms[0].Name != "Lobby" {
		t.Errorf("rooms decoded wrong: %+v", rooms)
	}
}

func TestRoomEscapesName(t *testing.T) {
	var gotPath, gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRaw = r.RequestURI
		json.NewEncoder(w).Encode(Room{Name: "Art & Design"})
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	room, err := c.Room(context.Background(), "Art & Design")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/rooms/Art & Design/" {
		t.Errorf("decoded path %q", gotPath)
	}
	if gotRaw != "/rooms/Art%20&%20Design/" {
		t.Errorf("wire path %q: the name must be escaped exactly once", gotRaw)
	}
	if room.Name != "Art & Design" {
		t.Errorf("room %q", room.Name)
	}
}

func TestMessageNumsCursorLeaf(t *testing.T) {
	var gotPath, gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRaw = r.RequestURI
		json.NewEncoder(w).Encode([]int64{1, 2, 3})
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)

	if _, err := c.MessageNums(context.Background(), "General", Cursor{Boundary: 42, Dir: GreaterThan}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/rooms/General/msgs.gt|42" {
		t.Errorf("greater-than path %q", gotPath)
	}
	if gotRaw != "/rooms/General/msgs.gt%7C42" {
		t.Errorf("wire path %q: the pipe must be escaped exactly once", gotRaw)
	}

	if _, err := c.MessageNums(context.Background(), "General", FirstLoad()); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/rooms/General/msgs.lt|9999999999" {
		t.Errorf("first-load path %q", gotPath)
	}
}

func TestMessagePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Message{From: "Testy", Text: "<p>hi</p>"})
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	msg, err := c.Message(context.Background(), "General", 123)
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/rooms/General/123/json" {
		t.Errorf("path %q", gotPath)
	}
	if msg.From != "Testy" {
		t.Errorf("message decoded wrong: %+v", msg)
	}
}

func TestMessageNotFoundKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	_, err := c.Message(context.Background(), "General", 123)
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestMarkLastReadQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	if err := c.MarkLastRead(context.Background(), "General", 4242); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/rooms/General/slrp" {
		t.Errorf("path %q", gotPath)
	}
	if gotQuery != "last=4242" {
		t.Errorf("query %q", gotQuery)
	}
}

func TestDeleteMethod(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	if err := c.Delete(context.Background(), "General", 77); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method %q", gotMethod)
	}
	if gotPath != "/rooms/General/77" {
		t.Errorf("path %q", gotPath)
	}
}

func TestLoginSuccess(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		cookie := base64.StdEncoding.EncodeToString([]byte("Testy McTestface:hunter2"))
		http.SetCookie(w, &http.Cookie{Name: "wcauth", Value: cookie})
		w.Write([]byte("200 Testy McTestface|0|0"))
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	name, err := c.Login(context.Background(), "Testy McTestface", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if string(gotBody) != "Testy McTestface|hunter2|" {
		t.Errorf("wire body %q", gotBody)
	}
	if name != "Testy McTestface" {
		t.Errorf("display name %q", name)
	}

	display, ok := c.DisplayName()
	if !ok || display != "Testy McTestface" {
		t.Errorf("DisplayName = (%q, %v)", display, ok)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("541 Bad password"))
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	_, err := c.Login(context.Background(), "Testy", "wrong")
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !errors.Is(err, errors.KindAuth) {
		t.Errorf("expected auth kind, got %v", err)
	}
}

func TestDisplayNameFindsPathScopedCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:  "wcauth",
			Value: base64.StdEncoding.EncodeToString([]byte("Testy:hunter2")),
			Path:  "/users",
		})
		w.Write([]byte("200 Testy|0|0"))
	}))
	defer srv.Close()

	c, _ := Dial(srv.URL)
	if _, err := c.Login(context.Background(), "Testy", "hunter2"); err != nil {
		t.Fatal(err)
	}
	name, ok := c.DisplayName()
	if !ok || name != "Testy" {
		t.Errorf("DisplayName = (%q, %v), want the cookie name", name, ok)
	}
}

func TestDisplayNameAnonymousCases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("mode") {
		case "garbage":
			http.SetCookie(w, &http.Cookie{Name: "wcauth", Value: "!!not-base64!!"})
		case "nocolon":
			http.SetCookie(w, &http.Cookie{Name: "wcauth",
				Value: base64.StdEncoding.EncodeToString([]byte("no-separator"))})
		}
		w.Write([]byte("200 ok"))
	}))
	defer srv.Close()

	// No cookie at all.
	c, _ := Dial(srv.URL)
	if name, ok := c.DisplayName(); ok {
		t.Errorf("fresh client should be anonymous, got %q", name)
	}

	// Undecodable cookie reads as anonymous, never an error.
	c, _ = Dial(srv.URL)
	c.getJSON(context.Background(), "test", srv.URL+"/?mode=garbage", &struct{}{})
	if _, ok := c.DisplayName(); ok {
		t.Error("undecodable cookie should read as anonymous")
	}

	// Decodable but malformed payload.
	c, _ = Dial(srv.URL)
	c.getJSON(context.Background(), "test", srv.URL+"/?mode=nocolon", &struct{}{})
	if _, ok := c.DisplayName(); ok {
		t.Error("cookie without separator should read as anonymous")
	}
}
