package adf

import (
	"regexp"
	"strings"
)

var (
	emojiLeadRE  = regexp.MustCompile(`^((?:[\x{1F300}-\x{1FAFF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]\x{FE0F}?){1,2})\s+(.+)$`)
	linkBulletRE = regexp.MustCompile(`^- \[(.*?)\]\((.*?)\): (.*)$`)
	boldSpanRE   = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// FromMarkdown converts generated prose into nodes. Headings become bold
// headings, a line led by an emoji becomes a bold title paragraph, bullets are
// sanitized like release lines and link their first ticket, and other lines
// become paragraphs with their **bold** spans kept.
func (b *Builder) FromMarkdown(text string) []Node {
	var nodes []Node
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if level, rest, ok := heading(line); ok {
			nodes = append(nodes, Node{Kind: HeadingNode, Level: level, Runs: []Run{Strong(rest)}})
			continue
		}
		if m := emojiLeadRE.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, Paragraph(Text(m[1]+" "), Strong(strings.TrimSpace(m[2]))))
			continue
		}
		if m := linkBulletRE.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, BulletItem(Link(m[1], m[2]), Text(": "+m[3])))
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			tickets := b.extractor.Tickets(line)
			body := line[2:]
			if len(tickets) > 0 {
				body = b.sanitizer.StripTicketRefs(body)
			}
			clean := b.sanitizer.Sanitize(body)
			if clean == "" {
				continue
			}
			runs := []Run{Text(clean)}
			if len(tickets) > 0 {
				runs = append(runs, Text(" "), Link("🔗 "+tickets[0], b.cfg.TicketURL(tickets[0])))
			}
			nodes = append(nodes, BulletItem(runs...))
			continue
		}

		nodes = append(nodes, Paragraph(boldRuns(line)...))
		if tickets := b.extractor.Tickets(line); len(tickets) > 0 {
			nodes = append(nodes, Paragraph(Link("🔗 View Ticket", b.cfg.TicketURL(tickets[0]))))
		}
	}
	return nodes
}

func heading(line string) (int, string, bool) {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			return level, strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return 0, "", false
}

// boldRuns splits line into plain and bold runs at **...** spans.
func boldRuns(line string) []Run {
	var (
		runs []Run
		last int
	)
	for _, loc := range boldSpanRE.FindAllStringSubmatchIndex(line, -1) {
		if plain := line[last:loc[0]]; plain != "" {
			runs = append(runs, Text(plain))
		}
		if bold := line[loc[2]:loc[3]]; bold != "" {
			runs = append(runs, Strong(bold))
		}
		last = loc[1]
	}
	if rest := line[last:]; rest != "" {
		runs = append(runs, Text(rest))
	}
	return runs
}
