package client

import (
	"errors"
	"io"
	"strings"

	imap "github.com/MichaelMcDonnell/async-imap"
)

// run is the background reader. It turns the connection into a stream of
// response records and routes each one until the connection goes away.
func (c *Client) run() {
	for {
		rd, err := c.decoder.ReadResponse()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			c.handleDisconnect(err)
			return
		}

		c.options.Logger.Debug("recv", "line", rd.Raw(), "kind", imap.ResponseName(rd.Parsed()))

		c.route(rd)
	}
}

// route delivers one record.
//
// A tagged completion ends the record stream of the command bearing its tag:
// the reader stores the status and closes that command's channel, so the
// command never consumes past its completion. Untagged records belong to the
// oldest in-flight command's stream; with no command in flight they are
// server-initiated traffic and go straight to the unilateral sink.
func (c *Client) route(rd *imap.ResponseData) {
	switch resp := rd.Parsed().(type) {
	case *imap.ContinuationRequest:
		// Nothing in this client carries a continuation exchange, so
		// abort it; the server then finishes the command with a
		// tagged BAD.
		c.options.Logger.Debug("aborting continuation request", "text", resp.Text)
		_ = c.writeLine("*\r\n")
		return
	case *imap.CapabilityData:
		c.setCaps(resp.Caps)
	case *imap.StatusResponse:
		if resp.Tag != "" {
			cmd := c.pending.Remove(resp.Tag)
			if cmd == nil {
				// A completion no command is waiting for is
				// server-initiated traffic like anything else.
				c.options.Logger.Debug("completion for unknown tag", "tag", resp.Tag)
				c.sink.publish(rd)
				return
			}
			cmd.status = resp
			close(cmd.recv)
			return
		}
		if resp.Code == imap.ResponseCodeCapability {
			c.setCaps(strings.Fields(resp.CodeArg))
		}
	}

	if cmd := c.pending.First(); cmd != nil {
		cmd.recv <- rd
		return
	}
	c.sink.publish(rd)
}

// handleDisconnect fails every in-flight command and closes the sink. A
// command whose completion was never observed reports ErrMissingCompletion
// rather than hanging, and so does any command issued afterwards.
func (c *Client) handleDisconnect(cause error) {
	c.options.Logger.Debug("reader stopped", "error", cause)

	c.pending.Fail(cause)
	c.sink.close()
}
