// Package dom wraps a parsed listing page behind a scan-oriented view so
// detection strategies never touch goquery selections directly.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// View is a read-only snapshot of a host page document.
type View struct {
	doc *goquery.Document
}

// NewView parses an HTML document from r.
func NewView(r io.Reader) (*View, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "dom: parse document")
	}
	return &View{doc: doc}, nil
}

// NewViewFromString parses an HTML document from a string.
func NewViewFromString(raw string) (*View, error) {
	return NewView(strings.NewReader(raw))
}

// Find exposes a raw selector query for strategies that need one.
func (v *View) Find(selector string) *goquery.Selection {
	return v.doc.Find(selector)
}

// Title returns the page title text.
func (v *View) Title() string {
	return strings.TrimSpace(v.doc.Find("title").First().Text())
}

// Text returns the whole document's text content.
func (v *View) Text() string {
	return v.doc.Text()
}

// Html returns the raw serialized markup, or "" when serialization fails.
func (v *View) Html() string {
	raw, err := v.doc.Html()
	if err != nil {
		return ""
	}
	return raw
}

// DescriptionFrame returns a sub-view parsed from an inline description
// frame's srcdoc content, when the page carries one.
func (v *View) DescriptionFrame() (*View, bool) {
	var sub *View
	v.doc.Find("iframe").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		if !strings.Contains(strings.ToLower(id), "desc") {
			return true
		}
		srcdoc, ok := s.Attr("srcdoc")
		if !ok || srcdoc == "" {
			return true
		}
		parsed, err := NewViewFromString(srcdoc)
		if err != nil {
			return true
		}
		sub = parsed
		return false
	})
	return sub, sub != nil
}

// TextNode is a text node plus its enclosing element, positioned in
// document order.
type TextNode struct {
	Text   string
	Parent *html.Node
	Index  int
}

// TextNodes returns all non-blank text nodes in document order.
func (v *View) TextNodes() []TextNode {
	var nodes []TextNode
	for _, root := range v.doc.Nodes {
		walkText(root, &nodes)
	}
	for i := range nodes {
		nodes[i].Index = i
	}
	return nodes
}

func walkText(n *html.Node, out *[]TextNode) {
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			*out = append(*out, TextNode{Text: text, Parent: n.Parent})
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, out)
	}
}

// UniqueSelector builds a structural nth-child path that resolves to exactly
// the given element node, so a match found by scanning can be re-addressed
// through a selector-based interface.
func UniqueSelector(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		pos := 1
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type == html.ElementNode {
				pos++
			}
		}
		parts = append(parts, fmt.Sprintf("%s:nth-child(%d)", cur.Data, pos))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// ChildElementCount counts the element children of a node.
func ChildElementCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// NodeText collects the text content beneath a node.
func NodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
