package adf

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/menghanl/release-doc-gen/notes"
)

// ErrInvalidInput is returned when the release body cannot be processed.
var ErrInvalidInput = errors.New("adf: invalid input")

// Titles of the generated headings.
const (
	TitleText    = "📦 Release Notes"
	FeaturesText = "🚀 Features"
	BugsText     = "🐞 Bug Fixes"
	SummaryText  = "📌 Summary"
)

var compareRE = regexp.MustCompile(`\[(.*?)\]\((https://github\.com/[^)]+)\)\s*\((\d{4}-\d{2}-\d{2})\)`)

// Builder turns release text into a Document.
type Builder struct {
	cfg        notes.Config
	classifier *notes.Classifier
	extractor  *notes.Extractor
	sanitizer  *notes.Sanitizer
}

// NewBuilder returns a builder using cfg for section headers, ticket prefixes
// and ticket links.
func NewBuilder(cfg notes.Config) *Builder {
	e := notes.NewExtractor(cfg)
	return &Builder{
		cfg:        cfg,
		classifier: notes.NewClassifier(cfg),
		extractor:  e,
		sanitizer:  notes.NewSanitizer(e),
	}
}

// Build renders body: a title, an optional compare link, the features and bug
// fixes sections, and a summary of how many lines each section rendered.
func (b *Builder) Build(body string) (*Document, error) {
	if !utf8.ValidString(body) {
		return nil, fmt.Errorf("%w: body is not valid UTF-8", ErrInvalidInput)
	}
	if strings.ContainsRune(body, 0) {
		return nil, fmt.Errorf("%w: body contains NUL bytes", ErrInvalidInput)
	}

	doc := &Document{}
	doc.Append(Heading(2, TitleText))

	skip := -1
	if idx, line := firstLine(body); idx >= 0 {
		if m := compareRE.FindStringSubmatch(line); m != nil {
			doc.Append(Paragraph(
				Text("🔍 "),
				Link("View Code Changes", m[2]),
				Text(" – "+m[3]),
			))
			skip = idx
		}
	}

	var features, bugs []string
	for _, l := range b.classifier.Classify(body) {
		if l.Index == skip {
			continue
		}
		switch l.Bucket {
		case notes.FeatureBucket:
			features = append(features, l.Text)
		case notes.BugBucket:
			bugs = append(bugs, l.Text)
		}
	}

	seen := make(map[string]bool)
	nf := b.renderSection(doc, FeaturesText, features, seen)
	nb := b.renderSection(doc, BugsText, bugs, seen)

	doc.Append(
		Heading(3, SummaryText),
		Paragraph(Text(fmt.Sprintf("• %d features delivered", nf))),
		Paragraph(Text(fmt.Sprintf("• %d bugs resolved", nb))),
		// Known issues are not counted.
		Paragraph(Text("• 0 known issues")),
	)
	return doc, nil
}

// renderSection appends a heading and one paragraph per displayable line,
// followed by a card for each ticket not carded yet. It returns the number of
// paragraphs added.
func (b *Builder) renderSection(doc *Document, title string, lines []string, seen map[string]bool) int {
	if len(lines) == 0 {
		return 0
	}
	doc.Append(Heading(3, title))

	var (
		count   int
		tickets []string
	)
	for _, line := range lines {
		ents := b.extractor.Extract(line)
		clean := b.sanitizer.Sanitize(line)
		if clean == "" {
			continue
		}
		runs := []Run{Text("• " + clean + " ")}
		for _, t := range ents.Tickets {
			runs = append(runs, Link("🔗 "+t, b.cfg.TicketURL(t)))
		}
		// Only the first link of each kind is rendered.
		if len(ents.PRs) > 0 {
			runs = append(runs, Text(" – "), Link("[PR]", ents.PRs[0]))
		}
		if len(ents.Commits) > 0 {
			runs = append(runs, Text(" "), Link("[Code]", ents.Commits[0]))
		}
		doc.Append(Paragraph(runs...))
		tickets = append(tickets, ents.Tickets...)
		count++
	}

	for _, t := range tickets {
		if seen[t] {
			continue
		}
		seen[t] = true
		doc.Append(Card(b.cfg.TicketURL(t)))
	}
	return count
}

func firstLine(body string) (int, string) {
	for i, l := range strings.Split(body, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return i, l
		}
	}
	return -1, ""
}
