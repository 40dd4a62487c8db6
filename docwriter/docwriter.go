// Package docwriter writes a release document to disk as Markdown.
package docwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/menghanl/release-doc-gen/adf"
)

// Meta is the header block of the written document.
type Meta struct {
	ProjectName string
	Version     string
	Date        string
	Owner       string
}

// Render writes meta followed by the nodes of doc to w.
func Render(w io.Writer, meta Meta, doc *adf.Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# 📄 Release Management Document - %s\n\n", meta.Version)
	if meta.ProjectName != "" {
		fmt.Fprintf(&b, "**🗂️ Project:** %s  \n", meta.ProjectName)
	}
	fmt.Fprintf(&b, "**📦 Release Version:** %s  \n", meta.Version)
	fmt.Fprintf(&b, "**📅 Release Date:** %s  \n", valueOr(meta.Date, "unknown"))
	fmt.Fprintf(&b, "**👤 Release Owner:** %s\n\n", valueOr(meta.Owner, "unknown"))

	nodes := doc.Nodes
	for i, n := range nodes {
		switch n.Kind {
		case adf.HeadingNode:
			// The document title above is the only level-1 heading.
			level := n.Level + 1
			if level > 6 {
				level = 6
			}
			fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", level), runs(n.Runs))
		case adf.BulletItemNode:
			fmt.Fprintf(&b, "- %s\n", runs(n.Runs))
			if i+1 == len(nodes) || nodes[i+1].Kind != adf.BulletItemNode {
				b.WriteString("\n")
			}
		case adf.CardNode:
			fmt.Fprintf(&b, "> 🔗 <%s>\n\n", n.URL)
		default:
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(runs(n.Runs)))
		}
	}

	_, err := io.WriteString(w, strings.TrimRight(b.String(), "\n")+"\n")
	return err
}

// WriteFile renders the document into path, creating parent directories.
func WriteFile(path string, meta Meta, doc *adf.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("docwriter: ensure dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("docwriter: create %s: %w", path, err)
	}
	if err := Render(f, meta, doc); err != nil {
		f.Close()
		return fmt.Errorf("docwriter: write %s: %w", path, err)
	}
	return f.Close()
}

// FileName returns a file name for version that is safe on every platform.
func FileName(version, ext string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	return "release_" + r.Replace(version) + ext
}

func runs(rs []adf.Run) string {
	var b strings.Builder
	for _, r := range rs {
		t := r.Text
		if r.Link != "" {
			t = "[" + t + "](" + r.Link + ")"
		}
		if r.Bold && strings.TrimSpace(t) != "" {
			t = "**" + t + "**"
		}
		b.WriteString(t)
	}
	return b.String()
}

func valueOr(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
