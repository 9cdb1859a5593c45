package imap

// SpecialUse identifies a special-use mailbox as defined in
// [RFC 6154 section 2].
//
// [RFC 6154 section 2]: https://datatracker.ietf.org/doc/html/rfc6154#section-2
type SpecialUse string

const (
	// SpecialUseAll presents all messages in the user's message store.
	SpecialUseAll SpecialUse = `\All`
	// SpecialUseArchive is used to archive messages.
	SpecialUseArchive SpecialUse = `\Archive`
	// SpecialUseDrafts holds draft messages.
	SpecialUseDrafts SpecialUse = `\Drafts`
	// SpecialUseFlagged presents all messages marked as important.
	SpecialUseFlagged SpecialUse = `\Flagged`
	// SpecialUseJunk holds messages deemed to be junk mail.
	SpecialUseJunk SpecialUse = `\Junk`
	// SpecialUseSent holds copies of messages that have been sent.
	SpecialUseSent SpecialUse = `\Sent`
	// SpecialUseTrash holds messages that have been deleted or marked
	// for deletion.
	SpecialUseTrash SpecialUse = `\Trash`
)

type nameAttrKind uint8

const (
	attrNoInferiors nameAttrKind = iota
	attrNoSelect
	attrMarked
	attrUnmarked
	attrSpecialUse
	attrCustom
)

// NameAttribute is a classification flag attached to a mailbox name in a
// LIST response (RFC 3501 section 7.2.2).
//
// The structural flags and the special-use set form a closed vocabulary;
// every other token is carried as a custom attribute. Values are comparable
// with ==.
type NameAttribute struct {
	kind nameAttrKind
	use  SpecialUse
	text string
}

// The four structural name attributes.
var (
	// AttrNoInferiors means no child levels of hierarchy can exist
	// under this name.
	AttrNoInferiors = NameAttribute{kind: attrNoInferiors}
	// AttrNoSelect means the name cannot be used as a selectable mailbox.
	AttrNoSelect = NameAttribute{kind: attrNoSelect}
	// AttrMarked means the server considers the mailbox "interesting";
	// it probably contains messages added since it was last selected.
	AttrMarked = NameAttribute{kind: attrMarked}
	// AttrUnmarked means the mailbox contains no additional messages
	// since it was last selected.
	AttrUnmarked = NameAttribute{kind: attrUnmarked}
)

// SpecialUseAttr returns the attribute for a special-use mailbox.
func SpecialUseAttr(use SpecialUse) NameAttribute {
	return NameAttribute{kind: attrSpecialUse, use: use}
}

// CustomAttr returns a non-standard attribute wrapping the raw token.
func CustomAttr(token string) NameAttribute {
	return NameAttribute{kind: attrCustom, text: token}
}

// ParseNameAttribute classifies a raw attribute token.
//
// Classification is total: structural flags first, then the special-use
// vocabulary, and any other token becomes a custom attribute wrapping the
// token unchanged. Matching is exact and case-sensitive.
func ParseNameAttribute(token string) NameAttribute {
	switch token {
	case `\Noinferiors`:
		return AttrNoInferiors
	case `\Noselect`:
		return AttrNoSelect
	case `\Marked`:
		return AttrMarked
	case `\Unmarked`:
		return AttrUnmarked
	case `\All`, `\Archive`, `\Drafts`, `\Flagged`, `\Junk`, `\Sent`, `\Trash`:
		return SpecialUseAttr(SpecialUse(token))
	default:
		return CustomAttr(token)
	}
}

// SpecialUse reports whether the attribute marks a special-use mailbox,
// and if so which one.
func (a NameAttribute) SpecialUse() (SpecialUse, bool) {
	return a.use, a.kind == attrSpecialUse
}

// Custom reports whether the attribute is a non-standard token, and if so
// returns it exactly as received.
func (a NameAttribute) Custom() (string, bool) {
	return a.text, a.kind == attrCustom
}

// String returns the attribute's wire token. For custom attributes this is
// the exact token the attribute was built from.
func (a NameAttribute) String() string {
	switch a.kind {
	case attrNoInferiors:
		return `\Noinferiors`
	case attrNoSelect:
		return `\Noselect`
	case attrMarked:
		return `\Marked`
	case attrUnmarked:
		return `\Unmarked`
	case attrSpecialUse:
		return string(a.use)
	default:
		return a.text
	}
}

// Name is a mailbox name matched by a LIST or LSUB command.
//
// A Name wraps the ResponseData record the LIST line arrived in and exposes
// its attributes, hierarchy delimiter and mailbox name. The exposed strings
// alias the record's received line; the record is retained by the Name, so
// the views stay valid for as long as the Name itself. Accessors perform no
// allocation.
type Name struct {
	resp  *ResponseData
	attrs []NameAttribute
	delim string
	name  string
}

// NewName constructs a Name from a record carrying mailbox-listing data.
//
// The record's parsed form must be *ListData; calling NewName with any other
// record kind is a caller bug and panics.
func NewName(resp *ResponseData) *Name {
	data, ok := resp.Parsed().(*ListData)
	if !ok {
		panic("imap: cannot construct Name from non mailbox-listing data")
	}
	attrs := make([]NameAttribute, len(data.Attrs))
	for i, token := range data.Attrs {
		attrs[i] = ParseNameAttribute(token)
	}
	return &Name{
		resp:  resp,
		attrs: attrs,
		delim: data.Delim,
		name:  data.Mailbox,
	}
}

// Attributes returns the attributes of this name, in arrival order.
func (n *Name) Attributes() []NameAttribute {
	return n.attrs
}

// Delimiter returns the hierarchy delimiter, a character used to delimit
// levels of hierarchy in the mailbox name. An empty string means no
// hierarchy exists; the name is a "flat" name.
func (n *Name) Delimiter() string {
	return n.delim
}

// Name returns the mailbox name. Unless AttrNoSelect is present, the name
// is valid as an argument for commands such as SELECT that accept mailbox
// names.
func (n *Name) Name() string {
	return n.name
}

// Source returns the record this name was constructed from.
func (n *Name) Source() *ResponseData {
	return n.resp
}
