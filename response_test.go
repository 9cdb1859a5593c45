package imap

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusResponseError(t *testing.T) {
	tests := []struct {
		resp *StatusResponse
		want string
	}{
		{
			&StatusResponse{Type: StatusResponseTypeNO, Text: "mailbox does not exist"},
			"NO mailbox does not exist",
		},
		{
			&StatusResponse{Type: StatusResponseTypeNO, Code: ResponseCodeTryCreate, Text: "no such mailbox"},
			"NO [TRYCREATE] no such mailbox",
		},
		{
			&StatusResponse{Type: StatusResponseTypeOK, Code: ResponseCodeUnseen, CodeArg: "17", Text: "message 17 is first unseen"},
			"OK [UNSEEN 17] message 17 is first unseen",
		},
		{
			&StatusResponse{Type: StatusResponseTypeBAD},
			"BAD",
		},
	}

	for _, tt := range tests {
		if got := tt.resp.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestIMAPErrorWrapsStatus(t *testing.T) {
	err := error(&IMAPError{&StatusResponse{Type: StatusResponseTypeNO, Text: "denied"}})
	if err.Error() != "NO denied" {
		t.Errorf("Error() = %q, want %q", err.Error(), "NO denied")
	}

	var imapErr *IMAPError
	if !errors.As(err, &imapErr) {
		t.Fatal("errors.As failed to find *IMAPError")
	}
	if imapErr.Type != StatusResponseTypeNO {
		t.Errorf("Type = %q, want NO", imapErr.Type)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	wrapped := fmt.Errorf("command A3: %w: %v", ErrMissingCompletion, errors.New("unexpected EOF"))
	if !errors.Is(wrapped, ErrMissingCompletion) {
		t.Error("wrapped missing-completion error lost its sentinel")
	}
	if errors.Is(wrapped, ErrEmptyResult) {
		t.Error("missing-completion error matches ErrEmptyResult")
	}

	empty := fmt.Errorf("GETQUOTA INBOX: %w", ErrEmptyResult)
	if !errors.Is(empty, ErrEmptyResult) {
		t.Error("wrapped empty-result error lost its sentinel")
	}
	if errors.Is(empty, ErrMissingCompletion) {
		t.Error("empty-result error matches ErrMissingCompletion")
	}
}

func TestResponseData(t *testing.T) {
	raw := `* QUOTA "" (STORAGE 10 512)`
	parsed := &QuotaData{Root: "", Resources: []QuotaResourceData{{Name: QuotaResourceStorage, Usage: 10, Limit: 512}}}
	rd := NewResponseData(raw, parsed)

	if rd.Raw() != raw {
		t.Errorf("Raw() = %q, want %q", rd.Raw(), raw)
	}
	if rd.Parsed() != Response(parsed) {
		t.Error("Parsed() did not return the original response")
	}
	if got := ResponseName(rd.Parsed()); got != "QUOTA" {
		t.Errorf("ResponseName() = %q, want QUOTA", got)
	}
}
