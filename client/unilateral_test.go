package client

import (
	"fmt"
	"testing"

	imap "github.com/MichaelMcDonnell/async-imap"
)

func rawRecord(i int) *imap.ResponseData {
	line := fmt.Sprintf("* X record %d", i)
	return imap.NewResponseData(line, &imap.RawResponse{Text: line[2:]})
}

func TestSinkDeliversInOrder(t *testing.T) {
	s := newUnilateralSink(8)
	sub := s.Subscribe()

	for i := 0; i < 3; i++ {
		s.publish(rawRecord(i))
	}

	for i := 0; i < 3; i++ {
		rd := <-sub
		if want := fmt.Sprintf("* X record %d", i); rd.Raw() != want {
			t.Errorf("record = %q, want %q", rd.Raw(), want)
		}
	}
}

func TestSinkIndependentSubscribers(t *testing.T) {
	s := newUnilateralSink(8)
	a := s.Subscribe()
	b := s.Subscribe()

	s.publish(rawRecord(0))

	if rd := <-a; rd.Raw() != "* X record 0" {
		t.Errorf("subscriber a got %q", rd.Raw())
	}
	if rd := <-b; rd.Raw() != "* X record 0" {
		t.Errorf("subscriber b got %q", rd.Raw())
	}
}

// A full subscriber drops its oldest unread record; publish never blocks.
func TestSinkDropsOldestWhenFull(t *testing.T) {
	s := newUnilateralSink(1)
	sub := s.Subscribe()

	s.publish(rawRecord(0))
	s.publish(rawRecord(1)) // must not block; record 0 is dropped

	rd := <-sub
	if rd.Raw() != "* X record 1" {
		t.Errorf("record = %q, want the newest record", rd.Raw())
	}

	select {
	case rd := <-sub:
		t.Errorf("unexpected extra record %q", rd.Raw())
	default:
	}
}

// Publishing never blocks, no matter how far behind a subscriber is.
func TestSinkPublishNeverBlocks(t *testing.T) {
	s := newUnilateralSink(1)
	slow := s.Subscribe()

	for i := 0; i < 100; i++ {
		s.publish(rawRecord(i))
	}

	// Only the newest record survives.
	if rd := <-slow; rd.Raw() != "* X record 99" {
		t.Errorf("subscriber got %q, want the newest record", rd.Raw())
	}
	select {
	case rd := <-slow:
		t.Errorf("unexpected extra record %q", rd.Raw())
	default:
	}
}

func TestSinkSubscribeAfterClose(t *testing.T) {
	s := newUnilateralSink(4)
	s.close()

	sub := s.Subscribe()
	if _, ok := <-sub; ok {
		t.Error("subscription after close is not closed")
	}

	// Publishing after close is a no-op.
	s.publish(rawRecord(0))
}

func TestSinkCloseEndsSubscriptions(t *testing.T) {
	s := newUnilateralSink(4)
	sub := s.Subscribe()

	s.publish(rawRecord(0))
	s.close()

	if rd, ok := <-sub; !ok || rd.Raw() != "* X record 0" {
		t.Errorf("buffered record lost on close: %v, %v", rd, ok)
	}
	if _, ok := <-sub; ok {
		t.Error("subscription still open after close")
	}
}
