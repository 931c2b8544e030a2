package citadel

import (
	"context"
	"fmt"
	"io"
	"mime/quotedprintable"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/stoa-client/stoa/internal/errors"
)

// placeholderName is the path component used when creating a message;
// the server assigns the real number and returns it in the etag header.
const placeholderName = "dummy_name_for_new_message"

// Draft is a message being composed. Body is an HTML fragment; the
// editor that produced it is opaque to this package.
type Draft struct {
	Subject    string
	References string // wefw chain from refchain.Build
	Body       string
}

// Post creates a message in room and returns the server-assigned
// message number. The body goes up as a single text/html multipart
// part, quoted-printable encoded, matching the server's upload
// contract. Pipes in the reference chain travel as '!' on the wire.
func (c *Client) Post(ctx context.Context, room string, draft Draft) (int64, error) {
	op := errors.Op("citadel.Post")

	wire := strings.ReplaceAll(draft.References, "|", "!")
	target := c.endpoint("rooms", room, placeholderName) +
		"?wefw=" + url.QueryEscape(wire) +
		"&subj=" + url.QueryEscape(draft.Subject)

	boundary := uuid.NewString()
	var body strings.Builder
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-type: text/html\r\n")
	body.WriteString("Content-transfer-encoding: quoted-printable\r\n")
	body.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&body)
	if _, err := qp.Write([]byte("<html><body>" + draft.Body + "</body></html>")); err != nil {
		return 0, errors.E(op, errors.KindIO, err)
	}
	if err := qp.Close(); err != nil {
		return 0, errors.E(op, errors.KindIO, err)
	}
	body.WriteString("\r\n--" + boundary + "--\r\n")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, strings.NewReader(body.String()))
	if err != nil {
		return 0, errors.E(op, errors.KindInvalid, err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", boundary))

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(resp.Body)
		detail := strings.TrimSpace(string(data))
		if detail == "" {
			return 0, errors.StatusError(op, resp.StatusCode)
		}
		return 0, errors.E(op, errors.KindProtocol, detail)
	}
	io.Copy(io.Discard, resp.Body)

	etag := resp.Header.Get("etag")
	if etag == "" {
		return 0, errors.E(op, errors.KindProtocol, "post succeeded but no etag header returned")
	}
	var msgnum int64
	if _, err := fmt.Sscanf(etag, "%d", &msgnum); err != nil {
		return 0, errors.E(op, errors.KindProtocol, fmt.Sprintf("unparseable etag %q", etag))
	}
	return msgnum, nil
}
