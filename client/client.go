// Package client implements a line-oriented IMAP client built around
// tagged-response correlation.
//
// Every command is issued with a unique tag. A background reader turns the
// connection into a stream of parsed response records, delivers each record
// to the oldest in-flight command, and terminates that command's record
// stream exactly at the tagged completion bearing its tag. Records that no
// command claims, and records a command's accumulator has no use for, are
// published on a shared unilateral sink that any number of listeners can
// subscribe to.
package client

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"sync"

	imap "github.com/MichaelMcDonnell/async-imap"
	"github.com/MichaelMcDonnell/async-imap/wire"
)

// Client is an IMAP client.
type Client struct {
	conn    net.Conn
	decoder *wire.Decoder
	options *Options
	tags    *tagGenerator
	pending *pendingCommands
	sink    *UnilateralSink

	// wmu serializes command writes so pipelined commands cannot
	// interleave on the wire.
	wmu sync.Mutex

	mu     sync.Mutex
	caps   []string
	closed bool
}

// New creates a new Client from an existing connection and reads the server
// greeting. The connection is closed if the greeting is not accepted.
func New(conn net.Conn, opts ...Option) (*Client, error) {
	return newClient(conn, applyOptions(opts))
}

// Dial connects to an IMAP server at the given address.
func Dial(addr string, opts ...Option) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return newClient(conn, applyOptions(opts))
}

// DialTLS connects to an IMAP server using TLS. A nil config falls back to
// the TLS configuration from the options.
func DialTLS(addr string, config *tls.Config, opts ...Option) (*Client, error) {
	options := applyOptions(opts)
	if config == nil {
		config = options.TLSConfig
	}
	conn, err := tls.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("dial TLS: %w", err)
	}
	return newClient(conn, options)
}

func newClient(conn net.Conn, options *Options) (*Client, error) {
	c := &Client{
		conn:    conn,
		decoder: wire.NewDecoder(conn),
		options: options,
		tags:    newTagGenerator("A"),
		pending: newPendingCommands(),
		sink:    newUnilateralSink(options.SinkBuffer),
	}

	if err := c.readGreeting(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	go c.run()

	return c, nil
}

// readGreeting consumes and validates the server greeting line.
func (c *Client) readGreeting() error {
	rd, err := c.decoder.ReadResponse()
	if err != nil {
		return fmt.Errorf("reading greeting: %w", err)
	}

	c.options.Logger.Debug("greeting", "line", rd.Raw())

	status, ok := rd.Parsed().(*imap.StatusResponse)
	if !ok || status.Tag != "" {
		return fmt.Errorf("unexpected greeting: %s", rd.Raw())
	}
	switch status.Type {
	case imap.StatusResponseTypeOK, imap.StatusResponseTypePREAUTH:
	case imap.StatusResponseTypeBYE:
		return fmt.Errorf("server rejected connection: %s", rd.Raw())
	default:
		return fmt.Errorf("unexpected greeting: %s", rd.Raw())
	}

	if status.Code == imap.ResponseCodeCapability {
		c.caps = strings.Fields(status.CodeArg)
	}
	return nil
}

// Unilateral returns the sink carrying server-initiated responses that were
// not part of any command's result.
func (c *Client) Unilateral() *UnilateralSink {
	return c.sink
}

// Caps returns the server's capabilities.
func (c *Client) Caps() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.caps))
	copy(result, c.caps)
	return result
}

// HasCap returns true if the server advertises the given capability.
func (c *Client) HasCap(cap string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	upper := strings.ToUpper(cap)
	for _, s := range c.caps {
		if strings.ToUpper(s) == upper {
			return true
		}
	}
	return false
}

func (c *Client) setCaps(caps []string) {
	c.mu.Lock()
	c.caps = caps
	c.mu.Unlock()
}

// Close closes the client connection. Any in-flight commands fail with
// ErrMissingCompletion once the reader observes the closed connection, as
// does any command issued after that.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.conn.Close()
}

// writeLine writes one complete command line to the connection.
func (c *Client) writeLine(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := c.conn.Write([]byte(line))
	return err
}
