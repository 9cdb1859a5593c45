package client

import (
	"sync"

	imap "github.com/MichaelMcDonnell/async-imap"
)

// UnilateralSink fans server-initiated response records out to any number
// of independent subscribers.
//
// Producers never block: each subscriber has a bounded buffer and the
// oldest unread record is dropped when it fills, so a slow listener cannot
// stall completion detection for the command that observed the record.
// Within one command's execution, records arrive on the sink in the order
// they were observed.
type UnilateralSink struct {
	buffer int

	mu     sync.Mutex
	subs   []chan *imap.ResponseData
	closed bool
}

func newUnilateralSink(buffer int) *UnilateralSink {
	return &UnilateralSink{buffer: buffer}
}

// Subscribe returns a channel carrying every record published after the
// call. The channel is closed when the connection goes away.
func (s *UnilateralSink) Subscribe() <-chan *imap.ResponseData {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *imap.ResponseData, s.buffer)
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// publish delivers a record to every subscriber, dropping each subscriber's
// oldest unread record if its buffer is full.
func (s *UnilateralSink) publish(rd *imap.ResponseData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for _, ch := range s.subs {
		select {
		case ch <- rd:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- rd:
		default:
		}
	}
}

// close ends every subscription.
func (s *UnilateralSink) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}
