package domfill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/formfill/fill"
)

// controlSelector matches everything the engine can fill. Buttons and
// hidden inputs still match; eligibility filtering rejects them later so
// the skip shows up in the pass report.
const controlSelector = `input, select, textarea, [contenteditable=""], [contenteditable="true"]`

// snapshotJS captures the identity attributes of one element. Identity is
// stable for the lifetime of a pass; state (value, checked, selection)
// stays live and is read per call.
const snapshotJS = `() => ({
	tag: this.tagName.toLowerCase(),
	type: this.getAttribute("type") || "",
	name: this.getAttribute("name") || "",
	id: this.id || "",
	class: this.getAttribute("class") || "",
	placeholder: this.getAttribute("placeholder") || "",
	ariaLabel: this.getAttribute("aria-label") || "",
	ariaLabelledby: this.getAttribute("aria-labelledby") || "",
	min: this.getAttribute("min") || "",
	max: this.getAttribute("max") || "",
	maxLength: parseInt(this.getAttribute("maxlength"), 10) || 0,
	multiple: this.hasAttribute("multiple"),
	contentEditable: this.isContentEditable === true,
})`

// labelsJS collects label text for every label[for] in one round trip.
const labelsJS = `() => {
	const out = {};
	for (const l of document.querySelectorAll("label[for]")) {
		out[l.getAttribute("for")] = l.textContent.trim();
	}
	return out;
}`

// Page is one live page with its discovered controls. It implements
// fill.Walker; pass it straight to Filler.FillAll.
type Page struct {
	page   *rod.Page
	logger *slog.Logger

	controls []fill.Control
	labels   map[string]string
	radios   map[string][]fill.Toggle
}

// Discover scans the page for fillable controls and snapshots their
// identity attributes. Call it again after the page mutates its form.
func (p *Page) Discover(ctx context.Context) error {
	p.controls = nil
	p.labels = make(map[string]string)
	p.radios = make(map[string][]fill.Toggle)

	els, err := p.page.Context(ctx).Elements(controlSelector)
	if err != nil {
		return fmt.Errorf("domfill: query controls: %w", err)
	}

	for _, el := range els {
		res, err := el.Eval(snapshotJS)
		if err != nil {
			p.logger.Warn("domfill: snapshot failed, skipping element", "error", err)
			continue
		}
		v := res.Value

		c := &control{
			page:        p,
			el:          el,
			name:        v.Get("name").Str(),
			id:          v.Get("id").Str(),
			class:       v.Get("class").Str(),
			placeholder: v.Get("placeholder").Str(),
			ariaLabel:   v.Get("ariaLabel").Str(),
			labelledBy:  strings.Fields(v.Get("ariaLabelledby").Str()),
			min:         v.Get("min").Str(),
			max:         v.Get("max").Str(),
			maxLength:   v.Get("maxLength").Int(),
			multiple:    v.Get("multiple").Bool(),
		}
		switch v.Get("tag").Str() {
		case "input":
			c.kind = fill.KindFromType(v.Get("type").Str())
		case "select":
			c.kind = fill.KindSelect
		case "textarea":
			c.kind = fill.KindTextarea
		default:
			if !v.Get("contentEditable").Bool() {
				continue
			}
			c.kind = fill.KindContentEditable
		}

		p.controls = append(p.controls, c)
		if c.kind == fill.KindRadio && c.name != "" {
			p.radios[c.name] = append(p.radios[c.name], c)
		}
	}

	res, err := p.page.Context(ctx).Eval(labelsJS)
	if err != nil {
		p.logger.Warn("domfill: label scan failed", "error", err)
	} else {
		for id, text := range res.Value.Map() {
			p.labels[id] = text.Str()
		}
	}

	p.logger.Debug("domfill: discovered controls",
		"controls", len(p.controls), "labels", len(p.labels))
	return nil
}

// Controls returns the discovered controls in document order.
func (p *Page) Controls() []fill.Control { return p.controls }

// LabelFor resolves an element id to its label text: a label[for] match
// wins, else the text content of the element carrying the id.
func (p *Page) LabelFor(id string) string {
	if text, ok := p.labels[id]; ok {
		return text
	}
	res, err := p.page.Eval(`(id) => {
		const n = document.getElementById(id);
		return n ? n.textContent.trim() : "";
	}`, id)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// RadioGroup returns the discovered radio controls sharing a name.
func (p *Page) RadioGroup(name string) []fill.Toggle {
	return p.radios[name]
}

// HTML serialises the current DOM as outer HTML.
func (p *Page) HTML(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("domfill: get DOM: %w", err)
	}
	return res.Value.Str(), nil
}

// Close closes the tab.
func (p *Page) Close() error {
	if p.page != nil {
		return p.page.Close()
	}
	return nil
}
