package imap

// ListData is an untagged LIST or LSUB line.
//
// All fields alias the raw line of the ResponseData the value was parsed
// from; a ListData must not outlive its record.
type ListData struct {
	// Attrs is the list of raw attribute tokens, e.g. "\Noselect".
	Attrs []string
	// Delim is the hierarchy delimiter, empty if the name is flat (NIL).
	Delim string
	// Mailbox is the mailbox name.
	Mailbox string
}

func (*ListData) response() {}
