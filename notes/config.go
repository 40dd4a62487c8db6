package notes

import (
	"errors"
	"regexp"
	"strings"
)

// HeaderToken maps a section header prefix to the bucket it opens.
type HeaderToken struct {
	Token  string
	Bucket Bucket
}

// Config holds the knobs shared by the classifier, extractor, sanitizer and
// record synthesizer.
type Config struct {
	// TrackerBaseURL is the tracker host, for example
	// "https://example.atlassian.net". Ticket links are TrackerBaseURL/browse/ID.
	TrackerBaseURL string
	// ProjectPrefixes are the ticket prefixes always captured, for example CWB.
	ProjectPrefixes []string
	// SectionHeaders are matched case-insensitively against the start of a line.
	SectionHeaders []HeaderToken
	// Threshold is the ticket count from which records are built from tickets
	// instead of the raw release text.
	Threshold int
	// TitleMaxLen bounds Record.Title when built from raw text.
	TitleMaxLen int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TrackerBaseURL:  "https://tracker.example.com",
		ProjectPrefixes: []string{"CWB", "WEBTV"},
		SectionHeaders: []HeaderToken{
			{Token: "### features", Bucket: FeatureBucket},
			{Token: "### bug fixes", Bucket: BugBucket},
			{Token: "### known issues", Bucket: KnownIssueBucket},
			{Token: "bug fixes", Bucket: BugBucket},
			{Token: "known issues", Bucket: KnownIssueBucket},
		},
		Threshold:   5,
		TitleMaxLen: 80,
	}
}

var prefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// Validate reports configuration that would make the pipeline misbehave.
func (c Config) Validate() error {
	if c.TrackerBaseURL == "" {
		return errors.New("notes: tracker base url is empty")
	}
	for _, p := range c.ProjectPrefixes {
		if !prefixPattern.MatchString(p) {
			return errors.New("notes: invalid project prefix " + p)
		}
	}
	for _, h := range c.SectionHeaders {
		if strings.TrimSpace(h.Token) == "" {
			return errors.New("notes: empty section header token")
		}
	}
	if c.Threshold < 0 {
		return errors.New("notes: negative ticket threshold")
	}
	if c.TitleMaxLen <= 0 {
		return errors.New("notes: title length must be positive")
	}
	return nil
}

// TicketURL returns the tracker page for a ticket.
func (c Config) TicketURL(id string) string {
	return strings.TrimRight(c.TrackerBaseURL, "/") + "/browse/" + id
}
