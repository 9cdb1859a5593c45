package client

import (
	"fmt"
	"strconv"
	"strings"

	imap "github.com/MichaelMcDonnell/async-imap"
)

// GetQuota requests the quota for the named quota root (RFC 2087 GETQUOTA).
//
// The server is expected to answer with exactly one QUOTA record; the first
// one observed becomes the result and anything else in the command's stream
// goes to the unilateral sink. A completion without any QUOTA record
// reports ErrEmptyResult.
func (c *Client) GetQuota(root string) (*imap.QuotaData, error) {
	var quota *imap.QuotaData
	status, err := c.execute("GETQUOTA", []string{quoteArg(root)}, func(rd *imap.ResponseData) bool {
		q, ok := rd.Parsed().(*imap.QuotaData)
		if !ok || quota != nil {
			return false
		}
		quota = q
		return true
	})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}
	if quota == nil {
		return nil, fmt.Errorf("GETQUOTA %s: %w", root, imap.ErrEmptyResult)
	}
	return quota, nil
}

// GetQuotaRoot requests the quota roots that apply to a mailbox
// (RFC 2087 GETQUOTAROOT).
//
// It returns the QUOTAROOT and QUOTA records gathered during the command,
// each collection in arrival order. Both may be empty: a mailbox may have
// no quota roots.
func (c *Client) GetQuotaRoot(mailbox string) ([]*imap.QuotaRootData, []*imap.QuotaData, error) {
	var (
		roots  []*imap.QuotaRootData
		quotas []*imap.QuotaData
	)
	status, err := c.execute("GETQUOTAROOT", []string{quoteArg(mailbox)}, func(rd *imap.ResponseData) bool {
		switch resp := rd.Parsed().(type) {
		case *imap.QuotaRootData:
			roots = append(roots, resp)
			return true
		case *imap.QuotaData:
			quotas = append(quotas, resp)
			return true
		default:
			return false
		}
	})
	if err != nil {
		return nil, nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, nil, err
	}
	return roots, quotas, nil
}

// SetQuota sets resource limits on a quota root (RFC 2087 SETQUOTA) and
// returns the QUOTA record the server echoes back.
func (c *Client) SetQuota(root string, limits []imap.QuotaResourceData) (*imap.QuotaData, error) {
	var list strings.Builder
	list.WriteByte('(')
	for i, res := range limits {
		if i > 0 {
			list.WriteByte(' ')
		}
		list.WriteString(string(res.Name))
		list.WriteByte(' ')
		list.WriteString(strconv.FormatInt(res.Limit, 10))
	}
	list.WriteByte(')')

	var quota *imap.QuotaData
	status, err := c.execute("SETQUOTA", []string{quoteArg(root), list.String()}, func(rd *imap.ResponseData) bool {
		q, ok := rd.Parsed().(*imap.QuotaData)
		if !ok || quota != nil {
			return false
		}
		quota = q
		return true
	})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}
	if quota == nil {
		return nil, fmt.Errorf("SETQUOTA %s: %w", root, imap.ErrEmptyResult)
	}
	return quota, nil
}
