package notes

import (
	"regexp"
	"strings"
)

var (
	boldRE        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	parenURLRE    = regexp.MustCompile(`\(https?://[^\s)]+\)`)
	bareURLRE     = regexp.MustCompile(`https?://\S+`)
	emptyParenRE  = regexp.MustCompile(`\(\s*\[*\s*\]*\s*\)`)
	emptyBrackRE  = regexp.MustCompile(`\[\s*\]`)
	bracketCharRE = regexp.MustCompile(`[\[\]()]`)
	leadingRE     = regexp.MustCompile(`^[•\-.\s:—]+`)
)

// Sanitizer turns a raw release note line into display prose.
type Sanitizer struct {
	bracketTicketRE *regexp.Regexp
	parenTicketRE   *regexp.Regexp
}

// NewSanitizer returns a sanitizer removing the ticket IDs e recognizes.
func NewSanitizer(e *Extractor) *Sanitizer {
	return &Sanitizer{
		bracketTicketRE: regexp.MustCompile(`\[\s*` + e.ticketAlt + `\s*\]`),
		parenTicketRE:   regexp.MustCompile(`\s*\(\s*` + e.ticketAlt + `\s*\)`),
	}
}

// Clean strips markdown decoration, ticket tokens and links from line. The
// steps run in a fixed order; each relies on the previous ones having removed
// syntax that would otherwise match again.
func (s *Sanitizer) Clean(line string) string {
	t := boldRE.ReplaceAllString(line, "$1")
	t = s.bracketTicketRE.ReplaceAllString(t, "")
	t = parenURLRE.ReplaceAllString(t, "")
	t = bareURLRE.ReplaceAllString(t, "")
	t = emptyParenRE.ReplaceAllString(t, "")
	t = emptyBrackRE.ReplaceAllString(t, "")
	t = bracketCharRE.ReplaceAllString(t, "")
	t = leadingRE.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// Sanitize returns the cleaned line ending with a period, or "" when nothing
// displayable is left.
func (s *Sanitizer) Sanitize(line string) string {
	t := s.Clean(line)
	if t == "" {
		return ""
	}
	if !strings.HasSuffix(t, ".") {
		t += "."
	}
	return t
}

// StripTicketRefs removes ticket IDs written in parentheses, as in
// "Faster playback (CWB-2)". Callers that link the ticket separately use it
// before Sanitize.
func (s *Sanitizer) StripTicketRefs(line string) string {
	return s.parenTicketRE.ReplaceAllString(line, "")
}
