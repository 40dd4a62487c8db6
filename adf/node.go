// Package adf builds release documents as a tree of headings, paragraphs,
// bullet items and card references, and encodes them in the tracker's
// structured document format.
package adf

import "strings"

// NodeKind discriminates Node.
type NodeKind int

// The node kinds.
const (
	HeadingNode NodeKind = iota + 1
	ParagraphNode
	BulletItemNode
	CardNode
)

func (k NodeKind) String() string {
	switch k {
	case HeadingNode:
		return "heading"
	case ParagraphNode:
		return "paragraph"
	case BulletItemNode:
		return "bulletListItem"
	case CardNode:
		return "cardReference"
	}
	return "unknown"
}

// Run is a piece of text with optional bold and link marks.
type Run struct {
	Text string
	Bold bool
	Link string
}

// Text returns a plain run.
func Text(s string) Run { return Run{Text: s} }

// Strong returns a bold run.
func Strong(s string) Run { return Run{Text: s, Bold: true} }

// Link returns a hyperlink run.
func Link(text, url string) Run { return Run{Text: text, Link: url} }

// Node is one block of a document. Level is set for headings, URL for cards.
type Node struct {
	Kind  NodeKind
	Level int
	Runs  []Run
	URL   string
}

// Heading returns a heading node holding a single plain run.
func Heading(level int, text string) Node {
	return Node{Kind: HeadingNode, Level: level, Runs: []Run{Text(text)}}
}

// Paragraph returns a paragraph of runs.
func Paragraph(runs ...Run) Node {
	return Node{Kind: ParagraphNode, Runs: runs}
}

// BulletItem returns a single bullet list item of runs.
func BulletItem(runs ...Run) Node {
	return Node{Kind: BulletItemNode, Runs: runs}
}

// Card returns a card reference to url.
func Card(url string) Node {
	return Node{Kind: CardNode, URL: url}
}

// Text concatenates the text of all runs of n.
func (n Node) Text() string {
	var b strings.Builder
	for _, r := range n.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Links returns the link targets of n's runs, in order.
func (n Node) Links() []string {
	var ret []string
	for _, r := range n.Runs {
		if r.Link != "" {
			ret = append(ret, r.Link)
		}
	}
	return ret
}

// Document is an ordered list of top-level nodes.
type Document struct {
	Nodes []Node
}

// Append adds nodes at the end of d.
func (d *Document) Append(nodes ...Node) {
	d.Nodes = append(d.Nodes, nodes...)
}

// InsertAfterHeading inserts nodes right after the first node of d, which is
// the document title.
func (d *Document) InsertAfterHeading(nodes ...Node) {
	if len(d.Nodes) == 0 {
		d.Nodes = append(d.Nodes, nodes...)
		return
	}
	ret := make([]Node, 0, len(d.Nodes)+len(nodes))
	ret = append(ret, d.Nodes[0])
	ret = append(ret, nodes...)
	ret = append(ret, d.Nodes[1:]...)
	d.Nodes = ret
}

// Count returns the number of nodes of kind k.
func (d *Document) Count(k NodeKind) int {
	var n int
	for _, node := range d.Nodes {
		if node.Kind == k {
			n++
		}
	}
	return n
}
