package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/formfill/fill"
)

// control binds one element node to the fill.Control contract. Writes go
// straight into the node tree so Render reflects them.
type control struct {
	doc  *Document
	node *html.Node
	kind fill.Kind
}

var (
	_ fill.Control  = (*control)(nil)
	_ fill.Toggle   = (*control)(nil)
	_ fill.Selector = (*control)(nil)
)

func (c *control) Kind() fill.Kind     { return c.kind }
func (c *control) Name() string        { return attr(c.node, "name") }
func (c *control) ID() string          { return attr(c.node, "id") }
func (c *control) Classes() string     { return attr(c.node, "class") }
func (c *control) Placeholder() string { return attr(c.node, "placeholder") }
func (c *control) AriaLabel() string   { return attr(c.node, "aria-label") }

func (c *control) AriaLabelledBy() []string {
	return strings.Fields(attr(c.node, "aria-labelledby"))
}

func (c *control) MinAttr() string { return attr(c.node, "min") }
func (c *control) MaxAttr() string { return attr(c.node, "max") }

func (c *control) MaxLength() int {
	v, err := strconv.Atoi(attr(c.node, "maxlength"))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func (c *control) Value() string {
	switch c.node.DataAtom {
	case atom.Textarea:
		return collectText(c.node)
	case atom.Select:
		for _, o := range c.Options() {
			if o.Selected() {
				return o.Value()
			}
		}
		return ""
	}
	if c.kind == fill.KindContentEditable {
		return collectText(c.node)
	}
	return attr(c.node, "value")
}

func (c *control) SetValue(v string) {
	switch {
	case c.node.DataAtom == atom.Textarea, c.kind == fill.KindContentEditable:
		setText(c.node, v)
	default:
		setAttr(c.node, "value", v)
	}
}

func (c *control) Disabled() bool { return hasAttr(c.node, "disabled") }

// Visible applies the static approximation of the visibility rule: a
// parsed document has no rendered boxes, so only hidden attributes and
// inline display/visibility styles can hide a control here.
func (c *control) Visible() bool {
	if c.kind == fill.KindHidden || hasAttr(c.node, "hidden") {
		return false
	}
	style := strings.ReplaceAll(strings.ToLower(attr(c.node, "style")), " ", "")
	if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
		return false
	}
	return true
}

// --- fill.Toggle ---

func (c *control) Checked() bool { return hasAttr(c.node, "checked") }

func (c *control) SetChecked(checked bool) {
	if !checked {
		removeAttr(c.node, "checked")
		return
	}
	// Radio groups are mutually exclusive in the serialized document.
	if c.kind == fill.KindRadio {
		for _, sib := range c.doc.RadioGroup(c.Name()) {
			if other, ok := sib.(*control); ok && other != c {
				removeAttr(other.node, "checked")
			}
		}
	}
	setAttr(c.node, "checked", "")
}

// --- fill.Selector ---

func (c *control) Multiple() bool { return hasAttr(c.node, "multiple") }

func (c *control) Options() []fill.Option {
	var out []fill.Option
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			out = append(out, &option{node: n})
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := c.node.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return out
}

// option binds an option element. Per HTML semantics a missing value
// attribute falls back to the option text.
type option struct {
	node *html.Node
}

func (o *option) Value() string {
	if v, ok := lookupAttr(o.node, "value"); ok {
		return v
	}
	return collectText(o.node)
}

func (o *option) Text() string   { return collectText(o.node) }
func (o *option) Disabled() bool { return hasAttr(o.node, "disabled") }
func (o *option) Selected() bool { return hasAttr(o.node, "selected") }

func (o *option) SetSelected(selected bool) {
	if selected {
		setAttr(o.node, "selected", "")
	} else {
		removeAttr(o.node, "selected")
	}
}
