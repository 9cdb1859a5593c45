package client

import (
	"fmt"
	"sync"
	"sync/atomic"

	imap "github.com/MichaelMcDonnell/async-imap"
)

// command is one in-flight command: a tag and the bounded sub-sequence of
// response records that belong to it.
//
// The reader goroutine sends records on recv and closes it exactly once,
// either after storing the tagged completion in status or after storing a
// transport failure in err. Consumers drain recv to the end and then read
// whichever field is set; the close provides the ordering.
type command struct {
	tag    string
	recv   chan *imap.ResponseData
	status *imap.StatusResponse
	err    error
}

// tagGenerator generates unique command tags.
type tagGenerator struct {
	counter atomic.Int64
	prefix  string
}

// newTagGenerator creates a new tag generator.
func newTagGenerator(prefix string) *tagGenerator {
	return &tagGenerator{prefix: prefix}
}

// Next returns the next unique tag.
func (g *tagGenerator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("%s%d", g.prefix, n)
}

// pendingCommands tracks in-flight commands in issue order. Untagged
// records are attributed to the oldest in-flight command, so order matters.
//
// Once the set has been failed, every later Add returns a command that has
// already failed with the recorded cause, since no reader is left to
// complete it.
type pendingCommands struct {
	mu       sync.Mutex
	commands []*command
	cause    error
}

func newPendingCommands() *pendingCommands {
	return &pendingCommands{}
}

// Add registers a new in-flight command and returns it. After Fail the
// returned command carries the failure and its channel is already closed.
func (pc *pendingCommands) Add(tag string) *command {
	cmd := &command{
		tag:  tag,
		recv: make(chan *imap.ResponseData),
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.cause != nil {
		cmd.err = failedCommand(tag, pc.cause)
		close(cmd.recv)
		return cmd
	}
	pc.commands = append(pc.commands, cmd)
	return cmd
}

// First returns the oldest in-flight command, or nil.
func (pc *pendingCommands) First() *command {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if len(pc.commands) == 0 {
		return nil
	}
	return pc.commands[0]
}

// Remove takes the command with the given tag out of the in-flight set.
// It returns nil if no such command is pending.
func (pc *pendingCommands) Remove(tag string) *command {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for i, cmd := range pc.commands {
		if cmd.tag == tag {
			pc.commands = append(pc.commands[:i], pc.commands[i+1:]...)
			return cmd
		}
	}
	return nil
}

// Fail removes every in-flight command, failing each one with the given
// cause, and marks the set closed so later additions fail the same way.
func (pc *pendingCommands) Fail(cause error) {
	pc.mu.Lock()
	commands := pc.commands
	pc.commands = nil
	pc.cause = cause
	pc.mu.Unlock()

	for _, cmd := range commands {
		cmd.err = failedCommand(cmd.tag, cause)
		close(cmd.recv)
	}
}

// failedCommand builds the error for a command whose completion will never
// be observed.
func failedCommand(tag string, cause error) error {
	return fmt.Errorf("command %s: %w: %v", tag, imap.ErrMissingCompletion, cause)
}
