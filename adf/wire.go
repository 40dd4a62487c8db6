package adf

import "encoding/json"

type wireDoc struct {
	Type    string     `json:"type"`
	Version int        `json:"version"`
	Content []wireNode `json:"content"`
}

type wireNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []wireNode     `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []wireMark     `json:"marks,omitempty"`
}

type wireMark struct {
	Type  string            `json:"type"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// MarshalJSON encodes d as {"type":"doc","version":1,"content":[...]}.
func (d Document) MarshalJSON() ([]byte, error) {
	doc := wireDoc{Type: "doc", Version: 1, Content: []wireNode{}}
	for _, n := range d.Nodes {
		doc.Content = append(doc.Content, toWire(n))
	}
	return json.Marshal(doc)
}

func toWire(n Node) wireNode {
	switch n.Kind {
	case HeadingNode:
		return wireNode{
			Type:    "heading",
			Attrs:   map[string]any{"level": n.Level},
			Content: runsToWire(n.Runs),
		}
	case BulletItemNode:
		return wireNode{
			Type: "bulletList",
			Content: []wireNode{{
				Type: "listItem",
				Content: []wireNode{{
					Type:    "paragraph",
					Content: runsToWire(n.Runs),
				}},
			}},
		}
	case CardNode:
		return wireNode{
			Type:  "blockCard",
			Attrs: map[string]any{"url": n.URL},
		}
	default:
		return wireNode{Type: "paragraph", Content: runsToWire(n.Runs)}
	}
}

// runsToWire drops empty runs; the tracker rejects empty text nodes.
func runsToWire(runs []Run) []wireNode {
	var ret []wireNode
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		w := wireNode{Type: "text", Text: r.Text}
		if r.Bold {
			w.Marks = append(w.Marks, wireMark{Type: "strong"})
		}
		if r.Link != "" {
			w.Marks = append(w.Marks, wireMark{Type: "link", Attrs: map[string]string{"href": r.Link}})
		}
		ret = append(ret, w)
	}
	return ret
}
