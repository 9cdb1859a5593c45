package client

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
)

// Login authenticates the user with a username and password.
func (c *Client) Login(username, password string) error {
	return c.executeCheck("LOGIN", quoteArg(username), quoteArg(password))
}

// Authenticate authenticates using a SASL mechanism.
//
// Only single-round-trip mechanisms are supported: the initial response is
// carried on the AUTHENTICATE line (SASL-IR, RFC 4959). If the server asks
// for another exchange the client aborts the command.
func (c *Client) Authenticate(mech sasl.Client) error {
	name, ir, err := mech.Start()
	if err != nil {
		return fmt.Errorf("SASL start: %w", err)
	}

	args := []string{name}
	if ir != nil && c.HasCap("SASL-IR") {
		args = append(args, base64.StdEncoding.EncodeToString(ir))
	}
	return c.executeCheck("AUTHENTICATE", args...)
}

// Logout sends the LOGOUT command. The server's BYE arrives on the
// unilateral sink.
func (c *Client) Logout() error {
	err := c.executeCheck("LOGOUT")
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return err
}

// Noop sends a NOOP command.
func (c *Client) Noop() error {
	return c.executeCheck("NOOP")
}

// quoteArg quotes a string for use as an IMAP argument.
func quoteArg(s string) string {
	if s == "" {
		return `""`
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == ' ' || b == '"' || b == '\\' || b == '(' || b == ')' || b == '{' || b < 0x20 || b > 0x7e {
			var buf strings.Builder
			buf.WriteByte('"')
			for j := 0; j < len(s); j++ {
				if s[j] == '"' || s[j] == '\\' {
					buf.WriteByte('\\')
				}
				buf.WriteByte(s[j])
			}
			buf.WriteByte('"')
			return buf.String()
		}
	}
	return s
}
