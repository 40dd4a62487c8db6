// Package summary asks a text generator for the human friendly parts of a
// release document and turns the answers into document nodes.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/menghanl/release-doc-gen/adf"
	"github.com/menghanl/release-doc-gen/notes"
)

// HighlightsTitle heads the generated summary in the issue description.
const HighlightsTitle = "🧠 Summary Highlights"

// ErrNoGenerator is returned when a generated text is requested without a
// generator.
var ErrNoGenerator = errors.New("summary: no text generator configured")

// Generator produces text for a system and user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	summarySystemPrompt = "You are a helpful assistant that writes clean Jira summaries."
	docSystemPrompt     = "You are a helpful assistant who writes release documentation."

	maxPromptItems = 4
	trimChars      = " -•:—."
)

// Summarizer builds prompts from records and parses the generated text.
type Summarizer struct {
	gen     Generator
	cfg     notes.Config
	builder *adf.Builder
}

// New returns a summarizer. gen may be nil, in which case only the local
// fallback summary is produced.
func New(gen Generator, cfg notes.Config) *Summarizer {
	return &Summarizer{gen: gen, cfg: cfg, builder: adf.NewBuilder(cfg)}
}

func promptLines(s *notes.Section) []string {
	if s == nil {
		return nil
	}
	var lines []string
	for _, e := range s.Entries {
		title := strings.Trim(e.Title, trimChars)
		desc := strings.Trim(e.Description, trimChars)
		sentence := title
		if desc != "" && desc != title {
			sentence = title + ": " + desc
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", sentence, e.TicketID))
		if len(lines) == maxPromptItems {
			break
		}
	}
	return lines
}

// FriendlyPrompt returns the user prompt for the release summary of version.
func FriendlyPrompt(version string, ns *notes.Notes) string {
	features := "- No new features in this release."
	if lines := promptLines(ns.Section(notes.Feature)); len(lines) > 0 {
		features = strings.Join(lines, "\n")
	}
	bugs := "- No bug fixes in this release."
	if lines := promptLines(ns.Section(notes.Bug)); len(lines) > 0 {
		bugs = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a senior product release writer. Write a professional and user-friendly release summary for version %s.\n\n", version)
	b.WriteString("Format:\n\n")
	fmt.Fprintf(&b, "🎉 What's New in Version %s\n\n", version)
	fmt.Fprintf(&b, "🚀 New Features & Improvements\n%s\n\n", features)
	fmt.Fprintf(&b, "🛠️ Bug Fixes\n%s\n\n", bugs)
	b.WriteString("📌 Summary\nWrite a 3-4 sentence summary explaining the value of this release using the changes above.\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("- Include short but clear explanations (1 line) per item.\n")
	b.WriteString("- Ticket IDs must be shown in parentheses, e.g., (TVAPP-1234)\n")
	b.WriteString("- NO empty (), no raw links, no Markdown formatting.\n")
	b.WriteString("- Use proper punctuation and polish grammar.\n")
	return b.String()
}

// Highlights returns the summary block for the records of version: a heading
// followed by the generated text parsed into nodes. When generation fails the
// block is rendered locally from the records and the error is returned with
// it, so callers can log it and carry on.
func (s *Summarizer) Highlights(ctx context.Context, version string, recs []notes.Record) ([]adf.Node, error) {
	ns := notes.GenerateNotes(version, recs, s.cfg, notes.Filters{})
	if s.gen == nil {
		return s.fallback(ns), nil
	}
	text, err := s.gen.Generate(ctx, summarySystemPrompt, FriendlyPrompt(version, ns))
	if err != nil {
		return s.fallback(ns), fmt.Errorf("generate summary: %w", err)
	}
	nodes := s.builder.FromMarkdown(text)
	if len(nodes) == 0 {
		return s.fallback(ns), errors.New("generate summary: empty response")
	}
	return append([]adf.Node{adf.Heading(2, HighlightsTitle)}, nodes...), nil
}

func (s *Summarizer) fallback(ns *notes.Notes) []adf.Node {
	nodes := []adf.Node{adf.Heading(2, HighlightsTitle)}
	if len(ns.Sections) == 0 {
		return append(nodes, adf.Paragraph(adf.Text("No changes in this release.")))
	}
	for _, sec := range ns.Sections {
		nodes = append(nodes, adf.Heading(3, sec.Name))
		for _, e := range sec.Entries {
			runs := []adf.Run{adf.Text(strings.Trim(e.Title, trimChars))}
			if e.HTMLURL != "" {
				runs = append(runs, adf.Text(" "), adf.Link("🔗 "+e.TicketID, e.HTMLURL))
			}
			nodes = append(nodes, adf.BulletItem(runs...))
		}
	}
	return nodes
}

// DocumentPrompt returns the user prompt for a release management document.
func DocumentPrompt(version, body string, tickets []notes.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You're an expert release engineer. Based on the following GitHub release notes and Jira ticket details, generate a professional Release Management Document for version %s.\n\n", version)
	b.WriteString("Include:\n")
	b.WriteString("1. Summary of Changes (brief, bullet points)\n")
	b.WriteString("2. Detailed Release Notes (with ticket key, description, and status)\n")
	b.WriteString("3. Known Issues (if any)\n")
	b.WriteString("4. Notes for QA (if needed)\n\n")
	fmt.Fprintf(&b, "GitHub Release Notes:\n%s\n\n", strings.TrimSpace(body))
	b.WriteString("Jira Ticket Details:\n")
	if len(tickets) == 0 {
		b.WriteString("- none\n")
	}
	for _, t := range tickets {
		fmt.Fprintf(&b, "- %s: %s (status: %s, epic: %s)\n", t.ID, t.Summary, t.Status, t.Epic)
	}
	return b.String()
}

// ReleaseDocument asks the generator for a Markdown release management
// document.
func (s *Summarizer) ReleaseDocument(ctx context.Context, version, body string, tickets []notes.Ticket) (string, error) {
	if s.gen == nil {
		return "", ErrNoGenerator
	}
	text, err := s.gen.Generate(ctx, docSystemPrompt, DocumentPrompt(version, body, tickets))
	if err != nil {
		return "", fmt.Errorf("generate release document: %w", err)
	}
	return text, nil
}
