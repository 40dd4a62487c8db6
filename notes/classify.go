package notes

import (
	"regexp"
	"sort"
	"strings"
)

var markdownHeadingRE = regexp.MustCompile(`^#{1,6}\s`)

// Line is one non-empty content line and the section it was found in.
type Line struct {
	Index  int
	Text   string
	Bucket Bucket
}

// Classifier assigns release text lines to section buckets using the section
// headers seen so far.
type Classifier struct {
	headers []HeaderToken
}

// NewClassifier returns a classifier matching the headers in cfg.
func NewClassifier(cfg Config) *Classifier {
	headers := make([]HeaderToken, 0, len(cfg.SectionHeaders))
	for _, h := range cfg.SectionHeaders {
		headers = append(headers, HeaderToken{
			Token:  strings.ToLower(strings.TrimSpace(h.Token)),
			Bucket: h.Bucket,
		})
	}
	// Longest token first, so "### bug fixes" is tried before "bug fixes".
	sort.SliceStable(headers, func(i, j int) bool {
		return len(headers[i].Token) > len(headers[j].Token)
	})
	return &Classifier{headers: headers}
}

// header reports whether line is a section header, and the bucket it opens.
// Markdown headings ("#" to "######" followed by a space) that are not known
// section headers close the current section. Lines like "#42 ..." are content.
func (c *Classifier) header(line string) (Bucket, bool) {
	l := strings.ToLower(line)
	for _, h := range c.headers {
		if strings.HasPrefix(l, h.Token) {
			return h.Bucket, true
		}
	}
	if markdownHeadingRE.MatchString(line) {
		return Unclassified, true
	}
	return Unclassified, false
}

// Classify returns the content lines of text in order, each tagged with the
// bucket of the last header above it. Header and blank lines are dropped.
func (c *Classifier) Classify(text string) []Line {
	var (
		lines   []Line
		current = Unclassified
	)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if b, ok := c.header(line); ok {
			current = b
			continue
		}
		lines = append(lines, Line{Index: i, Text: line, Bucket: current})
	}
	return lines
}

// Buckets groups the content lines of text per bucket, keeping their order.
func (c *Classifier) Buckets(text string) map[Bucket][]string {
	ret := make(map[Bucket][]string)
	for _, l := range c.Classify(text) {
		ret[l.Bucket] = append(ret[l.Bucket], l.Text)
	}
	return ret
}

var (
	bugWords     = []string{"fix", "bug", "resolve"}
	featureWords = []string{"add", "implement", "migrate", "move", "create"}
)

// ClassifyHeuristic types a line that has no section context. Bug words are
// checked before feature words, and anything else is a feature.
func ClassifyHeuristic(line string) Kind {
	l := strings.ToLower(line)
	if containsAny(l, bugWords) {
		return Bug
	}
	if containsAny(l, featureWords) {
		return Feature
	}
	return Feature
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
