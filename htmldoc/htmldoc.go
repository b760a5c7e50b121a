// Package htmldoc adapts a static HTML document to the fill engine's
// control and document contracts.
//
// It parses markup with x/net/html, exposes the form controls in document
// order, resolves label text for for= targets and aria-labelledby
// references, and serializes the filled document back out. Useful for
// tests, fixtures, and the inline-HTML gateway path; live pages go through
// the domfill adapter instead.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/formfill/fill"
)

// Document is a parsed static HTML document.
type Document struct {
	root     *html.Node
	controls []fill.Control
	labels   map[string]string     // label for= target → label text
	byID     map[string]*html.Node // any element with an id
	radios   map[string][]fill.Toggle
}

// Parse reads and indexes an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	d := &Document{
		root:   root,
		labels: make(map[string]string),
		byID:   make(map[string]*html.Node),
		radios: make(map[string][]fill.Toggle),
	}
	d.index(root)
	return d, nil
}

// ParseString is a convenience for tests and the inline-HTML gateway path.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) index(n *html.Node) {
	if n.Type == html.ElementNode {
		if id := attr(n, "id"); id != "" {
			d.byID[id] = n
		}
		switch n.DataAtom {
		case atom.Label:
			if target := attr(n, "for"); target != "" {
				d.labels[target] = collectText(n)
			}
		case atom.Input:
			c := &control{doc: d, node: n, kind: fill.KindFromType(attr(n, "type"))}
			d.controls = append(d.controls, c)
			if c.kind == fill.KindRadio {
				if name := c.Name(); name != "" {
					d.radios[name] = append(d.radios[name], c)
				}
			}
		case atom.Select:
			d.controls = append(d.controls, &control{doc: d, node: n, kind: fill.KindSelect})
		case atom.Textarea:
			d.controls = append(d.controls, &control{doc: d, node: n, kind: fill.KindTextarea})
		default:
			if v, ok := lookupAttr(n, "contenteditable"); ok && (v == "" || strings.EqualFold(v, "true")) {
				d.controls = append(d.controls, &control{doc: d, node: n, kind: fill.KindContentEditable})
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.index(c)
	}
}

// Controls returns the fillable controls in document order.
func (d *Document) Controls() []fill.Control { return d.controls }

// LabelFor resolves an element id to its label text: a label with a
// matching for= attribute wins, else the text content of the element
// carrying the id (for aria-labelledby references).
func (d *Document) LabelFor(id string) string {
	if text, ok := d.labels[id]; ok {
		return text
	}
	if n, ok := d.byID[id]; ok {
		return collectText(n)
	}
	return ""
}

// RadioGroup returns the radio controls sharing a name, in document order.
func (d *Document) RadioGroup(name string) []fill.Toggle {
	return d.radios[name]
}

// Render serializes the (possibly filled) document.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmldoc: render: %w", err)
	}
	return nil
}

// RenderString returns the serialized document.
func (d *Document) RenderString() (string, error) {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// --- node helpers ---

func attr(n *html.Node, name string) string {
	v, _ := lookupAttr(n, name)
	return v
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func hasAttr(n *html.Node, name string) bool {
	_, ok := lookupAttr(n, name)
	return ok
}

// collectText returns the concatenated text content of a subtree.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// setText replaces a subtree's children with a single text node.
func setText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
