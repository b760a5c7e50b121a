package domfill

import (
	"github.com/go-rod/rod"

	"github.com/hazyhaar/formfill/fill"
)

// control binds one live element to the fill.Control contract. Identity
// attributes come from the discovery snapshot; value, checked, disabled
// and visibility state is read live so repeated passes see mutations.
type control struct {
	page *Page
	el   *rod.Element
	kind fill.Kind

	name        string
	id          string
	class       string
	placeholder string
	ariaLabel   string
	labelledBy  []string
	min         string
	max         string
	maxLength   int
	multiple    bool
}

var (
	_ fill.Control  = (*control)(nil)
	_ fill.Toggle   = (*control)(nil)
	_ fill.Selector = (*control)(nil)
)

func (c *control) Kind() fill.Kind          { return c.kind }
func (c *control) Name() string             { return c.name }
func (c *control) ID() string               { return c.id }
func (c *control) Classes() string          { return c.class }
func (c *control) Placeholder() string      { return c.placeholder }
func (c *control) AriaLabel() string        { return c.ariaLabel }
func (c *control) AriaLabelledBy() []string { return c.labelledBy }
func (c *control) MinAttr() string          { return c.min }
func (c *control) MaxAttr() string          { return c.max }
func (c *control) MaxLength() int           { return c.maxLength }

func (c *control) Value() string {
	js := `() => this.value ?? ""`
	if c.kind == fill.KindContentEditable {
		js = `() => this.textContent ?? ""`
	}
	res, err := c.el.Eval(js)
	if err != nil {
		c.page.logger.Warn("domfill: read value failed", "control", c.name, "error", err)
		return ""
	}
	return res.Value.Str()
}

func (c *control) SetValue(v string) {
	js := `(v) => { this.value = v }`
	if c.kind == fill.KindContentEditable {
		js = `(v) => { this.textContent = v }`
	}
	if _, err := c.el.Eval(js, v); err != nil {
		c.page.logger.Warn("domfill: write value failed", "control", c.name, "error", err)
	}
}

func (c *control) Disabled() bool {
	res, err := c.el.Eval(`() => this.disabled === true`)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

// Visible defers to the rendered layout: unlike the static adapter this
// sees stylesheet rules and zero-size boxes, not just inline styles.
func (c *control) Visible() bool {
	vis, err := c.el.Visible()
	if err != nil {
		c.page.logger.Warn("domfill: visibility check failed", "control", c.name, "error", err)
		return false
	}
	return vis
}

// --- fill.Toggle ---

func (c *control) Checked() bool {
	res, err := c.el.Eval(`() => this.checked === true`)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

func (c *control) SetChecked(checked bool) {
	// The browser handles radio group exclusivity itself.
	if _, err := c.el.Eval(`(v) => { this.checked = v }`, checked); err != nil {
		c.page.logger.Warn("domfill: set checked failed", "control", c.name, "error", err)
	}
}

// --- fill.Selector ---

func (c *control) Multiple() bool { return c.multiple }

func (c *control) Options() []fill.Option {
	res, err := c.el.Eval(`() => Array.from(this.options).map(o => ({
		value: o.value,
		text: o.textContent.trim(),
		disabled: o.disabled,
		selected: o.selected,
	}))`)
	if err != nil {
		c.page.logger.Warn("domfill: read options failed", "control", c.name, "error", err)
		return nil
	}
	var out []fill.Option
	for i, o := range res.Value.Arr() {
		out = append(out, &option{
			ctrl:     c,
			index:    i,
			value:    o.Get("value").Str(),
			text:     o.Get("text").Str(),
			disabled: o.Get("disabled").Bool(),
			selected: o.Get("selected").Bool(),
		})
	}
	return out
}

// option is a point-in-time view of one select option. SetSelected writes
// through by index; re-read Options for fresh state.
type option struct {
	ctrl     *control
	index    int
	value    string
	text     string
	disabled bool
	selected bool
}

func (o *option) Value() string  { return o.value }
func (o *option) Text() string   { return o.text }
func (o *option) Disabled() bool { return o.disabled }
func (o *option) Selected() bool { return o.selected }

func (o *option) SetSelected(selected bool) {
	o.selected = selected
	js := `(i, s) => { if (this.options[i]) this.options[i].selected = s }`
	if _, err := o.ctrl.el.Eval(js, o.index, selected); err != nil {
		o.ctrl.page.logger.Warn("domfill: set option failed",
			"control", o.ctrl.name, "index", o.index, "error", err)
	}
}
