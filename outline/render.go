package outline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pdfoutline/model"
)

// Node is an outline entry with the entries nested beneath it
type Node struct {
	Entry    model.OutlineEntry
	Children []*Node
}

// Build nests flat outline entries by heading depth: each entry becomes a
// child of the closest preceding entry with a smaller depth. Entries with
// no numeric depth are treated as depth 1.
func Build(entries []model.OutlineEntry) []*Node {
	var roots []*Node
	var stack []*Node

	for _, e := range entries {
		node := &Node{Entry: e}
		depth := entryDepth(e)

		for len(stack) > 0 && entryDepth(stack[len(stack)-1].Entry) >= depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}

	return roots
}

func entryDepth(e model.OutlineEntry) int {
	if d := e.Depth(); d > 0 {
		return d
	}
	return 1
}

// WriteJSON writes the outline as indented JSON. Non-ASCII text and HTML
// characters are written as is.
func WriteJSON(w io.Writer, doc *model.DocumentOutline) error {
	if doc == nil {
		doc = model.NewDocumentOutline()
	}
	if doc.Outline == nil {
		cp := *doc
		cp.Outline = make([]model.OutlineEntry, 0)
		doc = &cp
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding outline: %w", err)
	}
	return nil
}

// ToMarkdown renders the outline as a markdown title followed by a nested
// bullet list
func ToMarkdown(doc *model.DocumentOutline) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	if doc.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(doc.Title)
		sb.WriteString("\n")
	}
	if len(doc.Outline) == 0 {
		return sb.String()
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- ")
			sb.WriteString(n.Entry.Text)
			sb.WriteString(" (page ")
			sb.WriteString(strconv.Itoa(n.Entry.Page))
			sb.WriteString(")\n")
			walk(n.Children, depth+1)
		}
	}
	walk(Build(doc.Outline), 0)

	return sb.String()
}

// RenderHTML writes the outline as a <nav> element holding the title and a
// nested ordered list
func RenderHTML(w io.Writer, doc *model.DocumentOutline) error {
	if doc == nil {
		doc = model.NewDocumentOutline()
	}

	nav := element(atom.Nav, "class", "document-outline")
	if doc.Title != "" {
		h1 := element(atom.H1)
		h1.AppendChild(textNode(doc.Title))
		nav.AppendChild(h1)
	}
	if roots := Build(doc.Outline); len(roots) > 0 {
		nav.AppendChild(listNode(roots))
	}

	if err := html.Render(w, nav); err != nil {
		return fmt.Errorf("rendering outline: %w", err)
	}
	return nil
}

// ToHTML renders the outline as an HTML fragment
func ToHTML(doc *model.DocumentOutline) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func listNode(nodes []*Node) *html.Node {
	ol := element(atom.Ol)
	for _, n := range nodes {
		li := element(atom.Li,
			"data-level", n.Entry.Level,
			"data-page", strconv.Itoa(n.Entry.Page),
		)
		li.AppendChild(textNode(n.Entry.Text))
		if len(n.Children) > 0 {
			li.AppendChild(listNode(n.Children))
		}
		ol.AppendChild(li)
	}
	return ol
}

// element creates an element node from a tag and key/value attribute pairs
func element(tag atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
