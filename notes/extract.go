package notes

import (
	"regexp"
	"strings"
)

const genericTicket = `[A-Z]{2,}-\d+`

var (
	genericTicketRE = regexp.MustCompile(`\b` + genericTicket + `\b`)
	commitLinkRE    = regexp.MustCompile(`https?://[^\s()\[\]<>]+/commit/[0-9a-fA-F]{7,40}\b`)
	prLinkRE        = regexp.MustCompile(`https?://[^\s()\[\]<>]+/(?:pull|issues)/\d+\b`)
)

// Entities holds the references found on one line.
type Entities struct {
	Tickets []string
	Commits []string
	PRs     []string
}

// Extractor finds ticket IDs, commit links and pull request links in text.
type Extractor struct {
	known *regexp.Regexp // nil when there are no project prefixes
	// alternation of known and generic IDs, used by the sanitizer
	ticketAlt string
}

// NewExtractor returns an extractor for the project prefixes in cfg.
func NewExtractor(cfg Config) *Extractor {
	e := &Extractor{ticketAlt: genericTicket}
	if len(cfg.ProjectPrefixes) > 0 {
		quoted := make([]string, 0, len(cfg.ProjectPrefixes))
		for _, p := range cfg.ProjectPrefixes {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
		known := `(?:` + strings.Join(quoted, "|") + `)-\d+`
		e.known = regexp.MustCompile(`\b` + known + `\b`)
		e.ticketAlt = `(?:` + known + `|` + genericTicket + `)`
	}
	return e
}

// Tickets returns the ticket IDs on line in order of appearance, without
// duplicates. IDs under the configured prefixes win; the generic uppercase
// pattern is only consulted when none are present.
func (e *Extractor) Tickets(line string) []string {
	if e.known != nil {
		if ids := unique(e.known.FindAllString(line, -1)); len(ids) > 0 {
			return ids
		}
	}
	return unique(genericTicketRE.FindAllString(line, -1))
}

// FirstTicket returns the first ticket ID on line, or UnknownTicket.
func (e *Extractor) FirstTicket(line string) string {
	if ids := e.Tickets(line); len(ids) > 0 {
		return ids[0]
	}
	return UnknownTicket
}

// Extract returns every reference on line. The line is not modified.
func (e *Extractor) Extract(line string) Entities {
	return Entities{
		Tickets: e.Tickets(line),
		Commits: commitLinkRE.FindAllString(line, -1),
		PRs:     prLinkRE.FindAllString(line, -1),
	}
}

// UniqueTickets returns the ticket IDs of every line of text, deduplicated
// across the whole text.
func (e *Extractor) UniqueTickets(text string) []string {
	var all []string
	for _, line := range strings.Split(text, "\n") {
		all = append(all, e.Tickets(line)...)
	}
	return unique(all)
}

func unique(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ss))
	ret := make([]string, 0, len(ss))
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		ret = append(ret, s)
	}
	return ret
}
