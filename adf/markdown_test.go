package adf

import "testing"

func TestFromMarkdown(t *testing.T) {
	text := `# What's New in Version v1.2

🚀 New Features & Improvements
- Added carousel [CWB-1](https://github.com/x/y/pull/3)
- [CWB-2](https://tracker.example.com/browse/CWB-2): Faster video
- ()
Plain **bold** text about CWB-9.
#### not a heading`

	nodes := testBuilder().FromMarkdown(text)
	if len(nodes) != 7 {
		t.Fatalf("got %d nodes, want 7: %+v", len(nodes), nodes)
	}

	h := nodes[0]
	if h.Kind != HeadingNode || h.Level != 1 || !h.Runs[0].Bold || h.Text() != "What's New in Version v1.2" {
		t.Fatalf("heading = %+v", h)
	}

	e := nodes[1]
	if e.Kind != ParagraphNode || e.Runs[0].Text != "🚀 " || !e.Runs[1].Bold {
		t.Fatalf("emoji paragraph = %+v", e)
	}

	b := nodes[2]
	if b.Kind != BulletItemNode || b.Runs[0].Text != "Added carousel." {
		t.Fatalf("bullet = %+v", b)
	}
	if links := b.Links(); len(links) != 1 || links[0] != "https://tracker.example.com/browse/CWB-1" {
		t.Fatalf("bullet links = %v", links)
	}

	l := nodes[3]
	if l.Kind != BulletItemNode || l.Runs[0].Link != "https://tracker.example.com/browse/CWB-2" || l.Runs[1].Text != ": Faster video" {
		t.Fatalf("link bullet = %+v", l)
	}

	p := nodes[4]
	if p.Kind != ParagraphNode || len(p.Runs) != 3 || !p.Runs[1].Bold || p.Runs[1].Text != "bold" {
		t.Fatalf("bold paragraph = %+v", p)
	}
	if ticket := nodes[5]; ticket.Text() != "🔗 View Ticket" {
		t.Fatalf("ticket paragraph = %+v", ticket)
	}
	if last := nodes[6]; last.Kind != ParagraphNode || last.Text() != "#### not a heading" {
		t.Fatalf("last node = %+v", last)
	}
}

func TestFromMarkdownParenthesizedTicket(t *testing.T) {
	nodes := testBuilder().FromMarkdown("- Carousel: Faster browsing (CWB-1)")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1: %+v", len(nodes), nodes)
	}
	if got := nodes[0].Text(); got != "Carousel: Faster browsing. 🔗 CWB-1" {
		t.Fatalf("bullet text = %q", got)
	}
	if links := nodes[0].Links(); len(links) != 1 || links[0] != "https://tracker.example.com/browse/CWB-1" {
		t.Fatalf("bullet links = %v", links)
	}
}
