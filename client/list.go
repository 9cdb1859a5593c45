package client

import (
	imap "github.com/MichaelMcDonnell/async-imap"
)

// List lists mailboxes matching the given reference and pattern.
//
// Each LIST record gathered during the command becomes a Name view that
// aliases the record it arrived in; other records go to the unilateral
// sink. The returned names are in arrival order.
func (c *Client) List(ref, pattern string) ([]*imap.Name, error) {
	return c.listCommand("LIST", ref, pattern)
}

// Lsub lists subscribed mailboxes matching the given reference and pattern.
func (c *Client) Lsub(ref, pattern string) ([]*imap.Name, error) {
	return c.listCommand("LSUB", ref, pattern)
}

func (c *Client) listCommand(name, ref, pattern string) ([]*imap.Name, error) {
	var names []*imap.Name
	status, err := c.execute(name, []string{quoteArg(ref), quoteArg(pattern)}, func(rd *imap.ResponseData) bool {
		if _, ok := rd.Parsed().(*imap.ListData); !ok {
			return false
		}
		names = append(names, imap.NewName(rd))
		return true
	})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}
	return names, nil
}
