package imap

// QuotaResource represents a quota resource type (RFC 2087, RFC 9208).
type QuotaResource string

const (
	QuotaResourceStorage           QuotaResource = "STORAGE"
	QuotaResourceMessage           QuotaResource = "MESSAGE"
	QuotaResourceMailbox           QuotaResource = "MAILBOX"
	QuotaResourceAnnotationStorage QuotaResource = "ANNOTATION-STORAGE"
)

// QuotaResourceData contains usage and limit for a single resource.
type QuotaResourceData struct {
	Name  QuotaResource
	Usage int64
	Limit int64
}

// QuotaData is an untagged QUOTA line: a quota root name together with the
// usage and limit of each resource under that root.
type QuotaData struct {
	// Root is the quota root name.
	Root string
	// Resources lists the resource limits and usage.
	Resources []QuotaResourceData
}

func (*QuotaData) response() {}

// QuotaRootData is an untagged QUOTAROOT line: the association between a
// mailbox and the quota roots that apply to it.
type QuotaRootData struct {
	// Mailbox is the mailbox name.
	Mailbox string
	// Roots is the list of quota root names, possibly empty.
	Roots []string
}

func (*QuotaRootData) response() {}
