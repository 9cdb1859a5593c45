// Package imap provides the shared types for an IMAP client built around
// tagged-response correlation.
//
// A server reply is modelled as a stream of ResponseData records. Each record
// owns one received line together with its parsed interpretation; command
// logic in the client package consumes records up to the tagged completion
// for the command it issued and diverts everything else to a side channel.
package imap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCompletion is reported when the response stream ends before the
// tagged completion for a command has been observed. It is fatal to that
// command but says nothing about other commands.
var ErrMissingCompletion = errors.New("imap: stream ended before tagged completion")

// ErrEmptyResult is reported when a command that requires at least one data
// record of a given kind completed without the server sending any.
var ErrEmptyResult = errors.New("imap: server reply contained no matching data")

// Response is the parsed interpretation of one server line.
//
// It is a closed sum over the record kinds the client routes on. Lines the
// parser has no structured form for are carried as *RawResponse; grammar
// validation is not this layer's job.
type Response interface {
	response()
}

// ResponseData owns one received server line and its parsed interpretation.
// It is immutable after construction. Parsed values alias substrings of the
// raw line, so a ResponseData keeps every view derived from it alive.
type ResponseData struct {
	raw    string
	parsed Response
}

// NewResponseData creates a record from a raw line and its parsed form.
func NewResponseData(raw string, parsed Response) *ResponseData {
	return &ResponseData{raw: raw, parsed: parsed}
}

// Raw returns the received line without the trailing CRLF.
func (d *ResponseData) Raw() string {
	return d.raw
}

// Parsed returns the structured interpretation of the line.
func (d *ResponseData) Parsed() Response {
	return d.parsed
}

// StatusResponseType represents the type of a status response.
type StatusResponseType string

const (
	StatusResponseTypeOK      StatusResponseType = "OK"
	StatusResponseTypeNO      StatusResponseType = "NO"
	StatusResponseTypeBAD     StatusResponseType = "BAD"
	StatusResponseTypeBYE     StatusResponseType = "BYE"
	StatusResponseTypePREAUTH StatusResponseType = "PREAUTH"
)

// ResponseCode represents a response code in brackets.
type ResponseCode string

// Standard response codes.
const (
	ResponseCodeAlert          ResponseCode = "ALERT"
	ResponseCodeBadCharset     ResponseCode = "BADCHARSET"
	ResponseCodeCapability     ResponseCode = "CAPABILITY"
	ResponseCodeParse          ResponseCode = "PARSE"
	ResponseCodePermanentFlags ResponseCode = "PERMANENTFLAGS"
	ResponseCodeReadOnly       ResponseCode = "READ-ONLY"
	ResponseCodeReadWrite      ResponseCode = "READ-WRITE"
	ResponseCodeTryCreate      ResponseCode = "TRYCREATE"
	ResponseCodeUIDNext        ResponseCode = "UIDNEXT"
	ResponseCodeUIDValidity    ResponseCode = "UIDVALIDITY"
	ResponseCodeUnseen         ResponseCode = "UNSEEN"
	ResponseCodeOverQuota      ResponseCode = "OVERQUOTA"
	ResponseCodeNonExistent    ResponseCode = "NONEXISTENT"
	ResponseCodeNoPerm         ResponseCode = "NOPERM"
	ResponseCodeClientBug      ResponseCode = "CLIENTBUG"
	ResponseCodeServerBug      ResponseCode = "SERVERBUG"
)

// StatusResponse represents an IMAP status response line.
//
// Tag is empty for untagged status lines; a non-empty Tag marks the line as
// the completion of the command that was sent with that tag.
type StatusResponse struct {
	// Tag is the command tag for tagged responses, empty otherwise.
	Tag string
	// Type is the response type (OK, NO, BAD, BYE, PREAUTH).
	Type StatusResponseType
	// Code is the optional response code.
	Code ResponseCode
	// CodeArg is the optional argument to the response code.
	CodeArg string
	// Text is the human-readable text.
	Text string
}

func (*StatusResponse) response() {}

// Error returns the status response as an error string.
func (r *StatusResponse) Error() string {
	var b strings.Builder
	b.WriteString(string(r.Type))
	if r.Code != "" {
		b.WriteString(" [")
		b.WriteString(string(r.Code))
		if r.CodeArg != "" {
			b.WriteString(" ")
			b.WriteString(r.CodeArg)
		}
		b.WriteString("]")
	}
	if r.Text != "" {
		b.WriteString(" ")
		b.WriteString(r.Text)
	}
	return b.String()
}

// IMAPError is an error type that wraps an IMAP status response.
type IMAPError struct {
	*StatusResponse
}

// Error implements the error interface.
func (e *IMAPError) Error() string {
	return e.StatusResponse.Error()
}

// CapabilityData is an untagged CAPABILITY line.
type CapabilityData struct {
	// Caps is the advertised capability list.
	Caps []string
}

func (*CapabilityData) response() {}

// MailboxUpdate is an untagged numeric status line such as "* 3 EXISTS".
type MailboxUpdate struct {
	// Num is the message count or sequence number.
	Num uint32
	// Kind is the update kind: "EXISTS", "RECENT" or "EXPUNGE".
	Kind string
}

func (*MailboxUpdate) response() {}

// ContinuationRequest is a "+" line requesting more command data.
type ContinuationRequest struct {
	// Text is the human-readable text after the "+".
	Text string
}

func (*ContinuationRequest) response() {}

// RawResponse is an untagged line the parser has no structured form for.
type RawResponse struct {
	// Text is the line body after the "* " prefix.
	Text string
}

func (*RawResponse) response() {}

// ResponseName returns a short description of a response for logging.
func ResponseName(resp Response) string {
	switch r := resp.(type) {
	case *StatusResponse:
		if r.Tag != "" {
			return fmt.Sprintf("tagged %s", r.Type)
		}
		return fmt.Sprintf("untagged %s", r.Type)
	case *CapabilityData:
		return "CAPABILITY"
	case *MailboxUpdate:
		return r.Kind
	case *QuotaData:
		return "QUOTA"
	case *QuotaRootData:
		return "QUOTAROOT"
	case *ListData:
		return "LIST"
	case *ContinuationRequest:
		return "continuation"
	default:
		return "raw"
	}
}
