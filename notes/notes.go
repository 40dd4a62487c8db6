// Package notes defines the structs for release note records and the functions
// that classify, extract and clean release note lines.
package notes

import (
	"errors"
	"fmt"
)

// UnknownTicket is the ticket ID used when a line carries no ticket reference.
const UnknownTicket = "UNKNOWN"

// ErrInvalidRecord is returned when a record fails validation.
var ErrInvalidRecord = errors.New("invalid record")

// Bucket is the release note section a line belongs to.
type Bucket int

// The section buckets.
const (
	Unclassified Bucket = iota
	FeatureBucket
	BugBucket
	KnownIssueBucket
)

func (b Bucket) String() string {
	switch b {
	case FeatureBucket:
		return "feature"
	case BugBucket:
		return "bug"
	case KnownIssueBucket:
		return "known_issue"
	default:
		return "unclassified"
	}
}

// ParseBucket is the inverse of Bucket.String.
func ParseBucket(s string) (Bucket, error) {
	switch s {
	case "feature":
		return FeatureBucket, nil
	case "bug":
		return BugBucket, nil
	case "known_issue":
		return KnownIssueBucket, nil
	case "unclassified":
		return Unclassified, nil
	}
	return Unclassified, fmt.Errorf("unknown section bucket %q", s)
}

// Kind is the type of a record.
type Kind string

// Record kinds.
const (
	Feature Kind = "feature"
	Bug     Kind = "bug"
)

// Record is one semantic release note item, consumed by summary generation and
// document rendering.
type Record struct {
	Type        Kind   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TicketID    string `json:"ticket_id"`
}

// NewRecord validates the fields and fills the ticket sentinel.
func NewRecord(kind Kind, title, description, ticketID string) (Record, error) {
	if kind != Feature && kind != Bug {
		return Record{}, fmt.Errorf("%w: type %q", ErrInvalidRecord, kind)
	}
	if ticketID == "" {
		ticketID = UnknownTicket
	}
	return Record{
		Type:        kind,
		Title:       title,
		Description: description,
		TicketID:    ticketID,
	}, nil
}

// Ticket is a tracker ticket as returned by the tracker client.
type Ticket struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
	URL     string `json:"url"`
	Epic    string `json:"epic"`
}

// Notes contains all the note entries for a given release.
type Notes struct {
	Version  string
	Sections []*Section
}

// Section contains one release note section, for example "New Features".
type Section struct {
	Name    string
	Kind    Kind
	Entries []*Entry
}

// Entry contains the info for one entry in the release notes.
type Entry struct {
	TicketID    string
	Title       string
	Description string
	HTMLURL     string
}
