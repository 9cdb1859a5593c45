// Package wire turns raw IMAP lines into structured response records.
//
// The decoder owns the line framing and the recognition of the response
// kinds the client correlates on. It is deliberately tolerant: lines it
// cannot give a structured form are returned as raw records rather than
// errors, and quoted-string handling is the simplified form that covers
// what servers actually send on these lines.
//
// Parsed fields are substrings of the received line, so a record's views
// share one buffer with the record itself.
package wire

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	imap "github.com/MichaelMcDonnell/async-imap"
)

// Decoder reads IMAP response lines from an io.Reader and parses them into
// response records.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a new Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 4096)
	}
	return &Decoder{r: br}
}

// ReadLine reads a complete IMAP line (terminated by CRLF).
func (d *Decoder) ReadLine() (string, error) {
	var line []byte
	for {
		part, isPrefix, err := d.r.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, part...)
		if !isPrefix {
			break
		}
	}
	return string(line), nil
}

// ReadResponse reads the next line and returns it as a response record.
// The only errors are transport errors; parsing itself is total.
func (d *Decoder) ReadResponse() (*imap.ResponseData, error) {
	line, err := d.ReadLine()
	if err != nil {
		return nil, err
	}
	return ParseResponse(line), nil
}

// ParseResponse parses one received line into a response record.
func ParseResponse(line string) *imap.ResponseData {
	switch {
	case strings.HasPrefix(line, "* "):
		return imap.NewResponseData(line, parseUntagged(line[2:]))
	case strings.HasPrefix(line, "+"):
		text := strings.TrimPrefix(strings.TrimPrefix(line, "+"), " ")
		return imap.NewResponseData(line, &imap.ContinuationRequest{Text: text})
	default:
		return imap.NewResponseData(line, parseTagged(line))
	}
}

// parseTagged parses "TAG STATUS [CODE] text".
func parseTagged(line string) imap.Response {
	spaceIdx := strings.IndexByte(line, ' ')
	if spaceIdx < 0 {
		return &imap.RawResponse{Text: line}
	}
	tag := line[:spaceIdx]
	status := parseStatus(line[spaceIdx+1:])
	if status == nil {
		return &imap.RawResponse{Text: line}
	}
	status.Tag = tag
	return status
}

// parseUntagged parses the body of a "* " line.
func parseUntagged(body string) imap.Response {
	// Numeric responses: "123 EXISTS", "456 EXPUNGE", etc.
	if spaceIdx := strings.IndexByte(body, ' '); spaceIdx > 0 {
		if num, err := strconv.ParseUint(body[:spaceIdx], 10, 32); err == nil {
			switch strings.ToUpper(body[spaceIdx+1:]) {
			case "EXISTS":
				return &imap.MailboxUpdate{Num: uint32(num), Kind: "EXISTS"}
			case "RECENT":
				return &imap.MailboxUpdate{Num: uint32(num), Kind: "RECENT"}
			case "EXPUNGE":
				return &imap.MailboxUpdate{Num: uint32(num), Kind: "EXPUNGE"}
			}
			return &imap.RawResponse{Text: body}
		}
	}

	upper := strings.ToUpper(body)
	switch {
	case strings.HasPrefix(upper, "OK ") || strings.HasPrefix(upper, "NO ") ||
		strings.HasPrefix(upper, "BAD ") || strings.HasPrefix(upper, "BYE ") ||
		strings.HasPrefix(upper, "PREAUTH "):
		if status := parseStatus(body); status != nil {
			return status
		}
		return &imap.RawResponse{Text: body}
	case strings.HasPrefix(upper, "CAPABILITY "):
		return &imap.CapabilityData{Caps: strings.Fields(body[11:])}
	case strings.HasPrefix(upper, "QUOTAROOT "):
		return parseQuotaRoot(body[10:])
	case strings.HasPrefix(upper, "QUOTA "):
		return parseQuota(body[6:])
	case strings.HasPrefix(upper, "LIST "):
		return parseList(body[5:])
	case strings.HasPrefix(upper, "LSUB "):
		return parseList(body[5:])
	default:
		return &imap.RawResponse{Text: body}
	}
}

// parseStatus parses "STATUS [CODE arg] text". Returns nil if the first
// word is not a status keyword.
func parseStatus(s string) *imap.StatusResponse {
	word := s
	rest := ""
	if spaceIdx := strings.IndexByte(s, ' '); spaceIdx >= 0 {
		word = s[:spaceIdx]
		rest = s[spaceIdx+1:]
	}

	var typ imap.StatusResponseType
	switch strings.ToUpper(word) {
	case "OK":
		typ = imap.StatusResponseTypeOK
	case "NO":
		typ = imap.StatusResponseTypeNO
	case "BAD":
		typ = imap.StatusResponseTypeBAD
	case "BYE":
		typ = imap.StatusResponseTypeBYE
	case "PREAUTH":
		typ = imap.StatusResponseTypePREAUTH
	default:
		return nil
	}

	status := &imap.StatusResponse{Type: typ}
	if strings.HasPrefix(rest, "[") {
		if endBracket := strings.IndexByte(rest, ']'); endBracket > 0 {
			code := rest[1:endBracket]
			if spaceIdx := strings.IndexByte(code, ' '); spaceIdx > 0 {
				status.Code = imap.ResponseCode(strings.ToUpper(code[:spaceIdx]))
				status.CodeArg = code[spaceIdx+1:]
			} else {
				status.Code = imap.ResponseCode(strings.ToUpper(code))
			}
			rest = strings.TrimLeft(rest[endBracket+1:], " ")
		}
	}
	status.Text = rest
	return status
}

// parseQuota parses `root (resource usage limit ...)`.
func parseQuota(s string) *imap.QuotaData {
	root, rest := readAString(s)
	data := &imap.QuotaData{Root: root}

	if strings.HasPrefix(rest, "(") {
		if endParen := strings.IndexByte(rest, ')'); endParen > 0 {
			fields := strings.Fields(rest[1:endParen])
			for i := 0; i+2 < len(fields); i += 3 {
				usage, err := strconv.ParseInt(fields[i+1], 10, 64)
				if err != nil {
					break
				}
				limit, err := strconv.ParseInt(fields[i+2], 10, 64)
				if err != nil {
					break
				}
				data.Resources = append(data.Resources, imap.QuotaResourceData{
					Name:  imap.QuotaResource(strings.ToUpper(fields[i])),
					Usage: usage,
					Limit: limit,
				})
			}
		}
	}
	return data
}

// parseQuotaRoot parses `mailbox root1 root2 ...`.
func parseQuotaRoot(s string) *imap.QuotaRootData {
	mailbox, rest := readAString(s)
	data := &imap.QuotaRootData{Mailbox: mailbox}
	for rest != "" {
		var root string
		root, rest = readAString(rest)
		data.Roots = append(data.Roots, root)
	}
	return data
}

// parseList parses `(attrs) "delim" mailbox`.
func parseList(s string) *imap.ListData {
	data := &imap.ListData{}

	if strings.HasPrefix(s, "(") {
		endParen := strings.IndexByte(s, ')')
		if endParen < 0 {
			return data
		}
		if attrStr := s[1:endParen]; attrStr != "" {
			data.Attrs = strings.Fields(attrStr)
		}
		s = strings.TrimLeft(s[endParen+1:], " ")
	}

	if strings.HasPrefix(s, "NIL") {
		s = strings.TrimLeft(s[3:], " ")
	} else if strings.HasPrefix(s, `"`) && len(s) >= 3 {
		data.Delim = s[1:2]
		s = strings.TrimLeft(s[3:], " ")
	}

	data.Mailbox, _ = readAString(s)
	return data
}

// readAString reads one atom or quoted string and returns it together with
// the rest of the input after any separating spaces. Quoted strings use the
// simplified form without escape handling.
func readAString(s string) (value, rest string) {
	if strings.HasPrefix(s, `"`) {
		if endQuote := strings.IndexByte(s[1:], '"'); endQuote >= 0 {
			return s[1 : 1+endQuote], strings.TrimLeft(s[endQuote+2:], " ")
		}
		return s[1:], ""
	}
	if spaceIdx := strings.IndexByte(s, ' '); spaceIdx >= 0 {
		return s[:spaceIdx], strings.TrimLeft(s[spaceIdx+1:], " ")
	}
	return s, ""
}
