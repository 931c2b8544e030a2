package citadel

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/stoa-client/stoa/internal/errors"
	"github.com/stoa-client/stoa/internal/logger"
)

// authCookie is the credential cookie the server sets on login. The
// client decodes it only to extract a display name for presentation;
// the server is the sole enforcement point.
const authCookie = "wcauth"

// Client talks to one groupware server. Safe for use from the single
// event loop; the cookie jar carries session identity across calls.
type Client struct {
	base *url.URL
	hc   *http.Client
}

// Dial prepares a client for the given base URL. No request is made;
// the session exists only once Login succeeds or an anonymous request
// is served.
func Dial(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.E(errors.Op("citadel.Dial"), errors.KindInvalid,
			fmt.Sprintf("invalid server URL %q", baseURL))
	}

	jar, _ := cookiejar.New(nil)
	return &Client{
		base: u,
		hc: &http.Client{
			Jar: jar,
			Transport: &http.Transport{
				// Connect promptly or not at all. There is deliberately
				// no per-request deadline: a hung exchange stays hung
				// and its placeholder stays visible.
				DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			},
		},
	}, nil
}

// endpoint joins path segments onto the base URL. JoinPath keeps Path
// and RawPath consistent, so each segment is escaped exactly once on
// the wire.
func (c *Client) endpoint(segments ...string) string {
	return c.base.JoinPath(segments...).String()
}

// getJSON performs a GET and decodes a JSON body into out.
func (c *Client) getJSON(ctx context.Context, op errors.Op, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errors.StatusError(op, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.E(op, errors.KindProtocol, err)
	}
	return nil
}

// Rooms fetches the full accessible room list.
func (c *Client) Rooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	if err := c.getJSON(ctx, "citadel.Rooms", c.endpoint("rooms")+"/", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Room fetches one room's detail, including its current view kind and
// the server-side last-seen pointer.
func (c *Client) Room(ctx context.Context, name string) (*Room, error) {
	var room Room
	if err := c.getJSON(ctx, "citadel.Room", c.endpoint("rooms", name)+"/", &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// MessageNums fetches the ordered message numbers on one side of a
// cursor boundary. The returned slice is untruncated; windowing policy
// belongs to the caller.
func (c *Client) MessageNums(ctx context.Context, room string, cur Cursor) ([]int64, error) {
	var leaf string
	if cur.Dir == GreaterThan {
		leaf = fmt.Sprintf("msgs.gt|%d", cur.Boundary)
	} else {
		leaf = fmt.Sprintf("msgs.lt|%d", cur.Boundary)
	}
	var nums []int64
	if err := c.getJSON(ctx, "citadel.MessageNums", c.endpoint("rooms", room, leaf), &nums); err != nil {
		return nil, err
	}
	return nums, nil
}

// Message fetches one message body by number.
func (c *Client) Message(ctx context.Context, room string, msgnum int64) (*Message, error) {
	var msg Message
	u := c.endpoint("rooms", room, fmt.Sprintf("%d", msgnum), "json")
	if err := c.getJSON(ctx, "citadel.Message", u, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Mailbox fetches the summary list used for mailbox table rendering.
func (c *Client) Mailbox(ctx context.Context, room string) ([]MailboxEntry, error) {
	var entries []MailboxEntry
	if err := c.getJSON(ctx, "citadel.Mailbox", c.endpoint("rooms", room, "mailbox"), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stat fetches the room's modification time. Polled by the mailbox
// refresh loop.
func (c *Client) Stat(ctx context.Context, room string) (*RoomStat, error) {
	var stat RoomStat
	if err := c.getJSON(ctx, "citadel.Stat", c.endpoint("rooms", room, "stat"), &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

// MarkLastRead tells the server the highest message the user has seen
// in a room. Callers treat this as fire-and-forget: the result is
// logged at the boundary and otherwise unobserved.
func (c *Client) MarkLastRead(ctx context.Context, room string, last int64) error {
	op := errors.Op("citadel.MarkLastRead")
	u := c.endpoint("rooms", room, "slrp") + fmt.Sprintf("?last=%d", last)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return errors.StatusError(op, resp.StatusCode)
	}
	return nil
}

// Delete removes a message from a room. The server decides whether the
// user may; no client-side permission check exists.
func (c *Client) Delete(ctx context.Context, room string, msgnum int64) error {
	op := errors.Op("citadel.Delete")
	u := c.endpoint("rooms", room, fmt.Sprintf("%d", msgnum))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return errors.StatusError(op, resp.StatusCode)
	}
	return nil
}

// Login authenticates as user with pass. The server answers with a
// textual status line; a leading '2' means success and the remainder
// carries the canonical display name.
func (c *Client) Login(ctx context.Context, user, pass string) (string, error) {
	op := errors.Op("citadel.Login")
	body := strings.NewReader(user + "|" + pass + "|")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("users", "login"), body)
	if err != nil {
		return "", errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.E(op, errors.KindNetwork, err)
	}
	line := strings.TrimSpace(string(data))
	if len(line) == 0 || line[0] != '2' {
		detail := line
		if len(line) > 4 {
			detail = line[4:]
		}
		return "", errors.LoginRejected(detail)
	}
	name := line
	if len(line) > 4 {
		name = line[4:]
	}
	if i := strings.IndexByte(name, '|'); i >= 0 {
		name = name[:i]
	}
	return name, nil
}

// Logout drops the server-side session. The cookie jar keeps whatever
// the server leaves behind; DisplayName goes back to reporting
// anonymous once the credential cookie is cleared or invalidated.
func (c *Client) Logout(ctx context.Context) error {
	op := errors.Op("citadel.Logout")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("users", "logout"), nil)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// DisplayName decodes the session credential cookie to extract a
// display name for presentation. The credential is never validated
// here; a missing or undecodable cookie simply reads as "not logged
// in", never as an error.
func (c *Client) DisplayName() (string, bool) {
	// The server scopes the credential cookie to the login path, so
	// the jar has to be asked there; it never matches the bare base.
	for _, ck := range c.hc.Jar.Cookies(c.base.JoinPath("users", "login")) {
		if ck.Name != authCookie {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(ck.Value)
		if err != nil {
			logger.Debug("citadel: undecodable %s cookie, treating as anonymous", authCookie)
			return "", false
		}
		name, _, found := strings.Cut(string(decoded), ":")
		if !found || name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}
