package client

import (
	"fmt"
	"strings"

	imap "github.com/MichaelMcDonnell/async-imap"
)

// execute sends a command and consumes its bounded response sub-sequence.
//
// handle classifies each in-scope record: it returns true when the record
// has been folded into the command's result. Records it declines, and every
// record when handle is nil, are published on the unilateral sink in arrival
// order. execute returns once the tagged completion for the command's tag
// has been observed, or with an error wrapping ErrMissingCompletion if the
// stream ends first. No partial result escapes on the error path: callers
// only read their accumulated state after a nil error.
func (c *Client) execute(name string, args []string, handle func(*imap.ResponseData) bool) (*imap.StatusResponse, error) {
	tag := c.tags.Next()

	var line strings.Builder
	line.WriteString(tag)
	line.WriteByte(' ')
	line.WriteString(name)
	for _, arg := range args {
		line.WriteByte(' ')
		line.WriteString(arg)
	}
	line.WriteString("\r\n")

	c.options.Logger.Debug("send", "line", strings.TrimRight(line.String(), "\r\n"))

	// Registration and the write happen under one lock so the pending
	// FIFO order always matches the order commands reach the wire.
	c.wmu.Lock()
	cmd := c.pending.Add(tag)
	var writeErr error
	if cmd.err == nil {
		_, writeErr = c.conn.Write([]byte(line.String()))
	}
	c.wmu.Unlock()

	if writeErr != nil {
		// The command may already be receiving records, so it cannot
		// simply be deregistered. Drop the connection; the reader
		// fails every in-flight command and closes cmd.recv.
		_ = c.conn.Close()
	}

	for rd := range cmd.recv {
		if handle != nil && handle(rd) {
			continue
		}
		c.sink.publish(rd)
	}

	if writeErr != nil {
		return nil, fmt.Errorf("sending %s: %w", name, writeErr)
	}
	if cmd.err != nil {
		return nil, cmd.err
	}
	return cmd.status, nil
}

// executeCheck executes a command that produces no data records and returns
// an error if the completion status is not OK.
func (c *Client) executeCheck(name string, args ...string) error {
	status, err := c.execute(name, args, nil)
	if err != nil {
		return err
	}
	return checkStatus(status)
}

// checkStatus converts a non-OK completion into an *imap.IMAPError.
func checkStatus(status *imap.StatusResponse) error {
	if status.Type != imap.StatusResponseTypeOK {
		return &imap.IMAPError{StatusResponse: status}
	}
	return nil
}
