package fill

import (
	"context"
	"strconv"
	"time"

	"github.com/hazyhaar/formfill/rules"
	"github.com/hazyhaar/formfill/synth"
)

// handler implements one per-category synthesis policy. It returns whether
// a value was written and whether the post-fill notification applies
// (radio selection never fires it; select only fires when something ended
// up selected).
type handler func(p *Pass, ctx context.Context, c Control, fp string) (filled, notify bool)

var handlers = map[Kind]handler{
	KindCheckbox:        (*Pass).fillCheckbox,
	KindRadio:           (*Pass).fillRadio,
	KindSelect:          (*Pass).fillSelect,
	KindDate:            (*Pass).fillDate,
	KindDateTime:        (*Pass).fillDateTime,
	KindDateTimeLocal:   (*Pass).fillDateTimeLocal,
	KindTime:            (*Pass).fillTime,
	KindMonth:           (*Pass).fillMonth,
	KindWeek:            (*Pass).fillWeek,
	KindEmail:           (*Pass).fillEmail,
	KindNumber:          (*Pass).fillNumber,
	KindRange:           (*Pass).fillNumber,
	KindPassword:        (*Pass).fillPassword,
	KindTel:             (*Pass).fillTel,
	KindURL:             (*Pass).fillURL,
	KindColor:           (*Pass).fillColor,
	KindSearch:          (*Pass).fillSearch,
	KindTextarea:        (*Pass).fillTextarea,
	KindContentEditable: (*Pass).fillContentEditable,
}

// dispatch routes a control to its category policy. Categories without a
// dedicated entry take the generic text path.
func (p *Pass) dispatch(ctx context.Context, c Control, fp string) (bool, bool) {
	if h, ok := handlers[c.Kind()]; ok {
		return h(p, ctx, c, fp)
	}
	return p.fillText(ctx, c, fp)
}

// maxLen is the effective generation bound: the control's declared
// maxlength when positive, else the configured default.
func (p *Pass) maxLen(c Control) int {
	if m := c.MaxLength(); m > 0 {
		return m
	}
	return p.f.opts.DefaultMaxLength
}

func (p *Pass) isConfirm(c Control) bool {
	return p.f.matchList(p.f.opts.ConfirmFields, c.Name())
}

// --- toggles ---

func (p *Pass) fillCheckbox(_ context.Context, c Control, _ string) (bool, bool) {
	t, ok := c.(Toggle)
	if !ok {
		return false, false
	}
	if p.f.matchList(p.f.opts.AgreeTermsFields, c.Name()) {
		t.SetChecked(true)
	} else {
		t.SetChecked(p.gen.Bool())
	}
	return true, true
}

func (p *Pass) fillRadio(_ context.Context, c Control, fp string) (bool, bool) {
	if p.doc == nil {
		return false, false
	}
	group := p.doc.RadioGroup(c.Name())
	if len(group) == 0 {
		return false, false
	}

	// An allow-list rule restricts which sibling values are eligible.
	var allow []string
	if rule := p.f.resolver.Resolve(fp, rules.TypeRandomizedList); rule != nil {
		allow = rule.List
	}

	candidates := group
	if len(allow) > 0 {
		candidates = candidates[:0:0]
		for _, sib := range group {
			for _, v := range allow {
				if sib.Value() == v {
					candidates = append(candidates, sib)
					break
				}
			}
		}
	}
	if len(candidates) == 0 {
		return false, false
	}

	pick := candidates[p.gen.Int(0, len(candidates)-1)]
	pick.SetChecked(true)
	// Selection already implies a state change: no generic notification.
	return true, false
}

// --- select ---

func (p *Pass) fillSelect(ctx context.Context, c Control, fp string) (bool, bool) {
	sel, ok := c.(Selector)
	if !ok {
		return false, false
	}
	opts := sel.Options()
	if len(opts) == 0 {
		return false, false
	}

	// A resolved rule whose value exactly matches an option overrides the
	// random fallback entirely.
	if rule := p.f.resolver.Resolve(fp); rule != nil {
		v := p.valueForRule(rule, c)
		for _, o := range opts {
			if o.Value() == v {
				o.SetSelected(true)
				return true, true
			}
		}
	}

	g := p.gen
	if sel.Multiple() {
		for _, o := range opts {
			if !o.Disabled() {
				o.SetSelected(false)
			}
		}
		// Random subset: duplicate picks are harmless no-ops, disabled
		// indices are simply skipped when encountered.
		n := g.Int(1, len(opts))
		selected := false
		for i := 0; i < n; i++ {
			o := opts[g.Int(0, len(opts)-1)]
			if !o.Disabled() {
				o.SetSelected(true)
				selected = true
			}
		}
		return selected, selected
	}

	// Single select: index 0 is off-limits when it is an empty-value
	// placeholder.
	start := 0
	if opts[0].Value() == "" {
		start = 1
	}
	if start > len(opts)-1 {
		return false, false
	}
	for i := 0; i < len(opts); i++ {
		o := opts[g.Int(start, len(opts)-1)]
		if !o.Disabled() {
			o.SetSelected(true)
			return true, true
		}
	}
	return false, false
}

// --- date and time ---

func (p *Pass) fillDate(_ context.Context, c Control, fp string) (bool, bool) {
	rule := p.f.resolver.Resolve(fp, rules.TypeDate)
	min, max := dateBounds(rule, c)
	if rule != nil && rule.Template != "" {
		c.SetValue(p.gen.Date(min, max).Format(rule.Template))
	} else {
		c.SetValue(p.gen.DateString(min, max))
	}
	return true, true
}

// dateBounds derives calendar bounds from the rule when present, else from
// the control's own attributes. Unparseable bounds are treated as absent.
func dateBounds(rule *rules.Rule, c Control) (min, max time.Time) {
	parse := func(s string) time.Time {
		if s == "" {
			return time.Time{}
		}
		t, err := time.Parse(synth.LayoutDate, s)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	if rule != nil {
		return parse(rule.MinDate), parse(rule.MaxDate)
	}
	return parse(c.MinAttr()), parse(c.MaxAttr())
}

func (p *Pass) fillDateTime(_ context.Context, c Control, _ string) (bool, bool) {
	g := p.gen
	c.SetValue(g.DateString(time.Time{}, time.Time{}) + "T" + g.TimeString() + "Z")
	return true, true
}

func (p *Pass) fillDateTimeLocal(_ context.Context, c Control, _ string) (bool, bool) {
	g := p.gen
	c.SetValue(g.DateString(time.Time{}, time.Time{}) + "T" + g.TimeString())
	return true, true
}

func (p *Pass) fillTime(_ context.Context, c Control, _ string) (bool, bool) {
	c.SetValue(p.gen.TimeString())
	return true, true
}

func (p *Pass) fillMonth(_ context.Context, c Control, _ string) (bool, bool) {
	c.SetValue(p.gen.MonthString(time.Time{}, time.Time{}))
	return true, true
}

func (p *Pass) fillWeek(_ context.Context, c Control, _ string) (bool, bool) {
	c.SetValue(p.gen.WeekString(time.Time{}, time.Time{}))
	return true, true
}

// --- identity categories ---

func (p *Pass) fillEmail(_ context.Context, c Control, fp string) (bool, bool) {
	if p.isConfirm(c) {
		c.SetValue(p.mem.Value)
		return true, true
	}
	// Email always has a rule: the built-in defaults tier supplies one when
	// no authored rule matches.
	rule := p.f.resolver.Resolve(fp, rules.TypeEmail)
	v := p.emailValue(rule)
	c.SetValue(v)
	p.mem.Value = v
	return true, true
}

// emailValue assembles an address, preferring remembered identity (first
// and last name, then username) for the local part. A rule template names
// the domain.
func (p *Pass) emailValue(rule *rules.Rule) string {
	local := ""
	switch {
	case p.mem.FirstName != "" && p.mem.LastName != "":
		local = p.mem.FirstName + "." + p.mem.LastName
	case p.mem.Username != "":
		local = p.mem.Username
	}
	domain := ""
	if rule != nil {
		domain = rule.Template
	}
	return p.gen.Email(local, domain)
}

func (p *Pass) fillPassword(_ context.Context, c Control, _ string) (bool, bool) {
	if p.isConfirm(c) {
		c.SetValue(p.mem.Password)
		return true, true
	}
	var v string
	if p.f.opts.Password.Mode == PasswordFixed {
		v = p.f.opts.Password.Fixed
	} else {
		v = p.gen.ScrambledWord(8)
		if p.f.opts.Password.LogGenerated {
			p.f.logger.Debug("fill: generated password", "control", c.Name(), "value", v)
		}
	}
	c.SetValue(v)
	p.mem.Password = v
	return true, true
}

// --- numeric ---

func (p *Pass) fillNumber(_ context.Context, c Control, fp string) (bool, bool) {
	min, max := 1, 100
	if v, err := strconv.Atoi(c.MinAttr()); err == nil {
		min = v
	}
	if v, err := strconv.Atoi(c.MaxAttr()); err == nil {
		max = v
	}
	// A number rule narrows, never widens: keep the larger lower bound and
	// the smaller upper bound.
	if rule := p.f.resolver.Resolve(fp, rules.TypeNumber); rule != nil {
		if rule.Min != nil && *rule.Min > min {
			min = *rule.Min
		}
		if rule.Max != nil && *rule.Max < max {
			max = *rule.Max
		}
	}
	c.SetValue(strconv.Itoa(p.gen.Int(min, max)))
	return true, true
}

// --- shaped strings ---

func (p *Pass) fillTel(ctx context.Context, c Control, fp string) (bool, bool) {
	rule := p.f.resolver.Resolve(fp, rules.TypeTelephone, rules.TypeRegex, rules.TypeRandomizedList)
	if rule != nil {
		c.SetValue(p.valueForRule(rule, c))
	} else {
		c.SetValue(p.gen.Phone(""))
	}
	return true, true
}

func (p *Pass) fillURL(_ context.Context, c Control, _ string) (bool, bool) {
	c.SetValue(p.gen.Website())
	return true, true
}

func (p *Pass) fillColor(_ context.Context, c Control, _ string) (bool, bool) {
	c.SetValue(p.gen.Color())
	return true, true
}

func (p *Pass) fillSearch(_ context.Context, c Control, _ string) (bool, bool) {
	c.SetValue(p.gen.Word())
	return true, true
}

// --- free text ---

func (p *Pass) fillTextarea(ctx context.Context, c Control, fp string) (bool, bool) {
	rule := p.f.resolver.Resolve(fp,
		rules.TypeText, rules.TypeAlphanumeric, rules.TypeRegex, rules.TypeRandomizedList)
	var v string
	if rule != nil {
		v = p.valueForRule(rule, c)
	} else {
		v = p.aiOrLocal(ctx, "textarea", fp, func() string {
			return p.gen.Passage(10, 50, p.maxLen(c))
		})
	}
	c.SetValue(v)
	return true, true
}

func (p *Pass) fillContentEditable(ctx context.Context, c Control, fp string) (bool, bool) {
	if c.Kind() != KindContentEditable {
		return false, false
	}
	v := p.aiOrLocal(ctx, "content", fp, func() string {
		return p.gen.Passage(5, 100, p.f.opts.DefaultMaxLength)
	})
	c.SetValue(v)
	return true, true
}

// fillText is the default branch: generic text inputs and anything without
// a dedicated policy.
func (p *Pass) fillText(ctx context.Context, c Control, fp string) (bool, bool) {
	if p.isConfirm(c) {
		c.SetValue(p.mem.Value)
		return true, true
	}
	var v string
	if rule := p.f.resolver.Resolve(fp); rule != nil {
		v = p.valueForRule(rule, c)
	} else {
		v = p.aiOrLocal(ctx, "text", fp, func() string {
			return p.gen.WordsRange(1, 3, p.maxLen(c))
		})
	}
	c.SetValue(v)
	p.mem.Value = v
	return true, true
}

// valueForRule synthesizes a value for a resolved rule and records identity
// categories into pass memory.
func (p *Pass) valueForRule(r *rules.Rule, c Control) string {
	g := p.gen
	switch r.Type {
	case rules.TypeUsername:
		v := g.Username()
		p.mem.Username = v
		return v
	case rules.TypeFirstName:
		v := g.FirstName()
		p.mem.FirstName = v
		return v
	case rules.TypeLastName:
		v := g.LastName()
		p.mem.LastName = v
		return v
	case rules.TypeFullName:
		first, last := g.FirstName(), g.LastName()
		p.mem.FirstName, p.mem.LastName = first, last
		return first + " " + last
	case rules.TypeOrganization:
		return g.Organization()
	case rules.TypeEmail:
		return p.emailValue(r)
	case rules.TypeDate:
		min, max := dateBounds(r, c)
		if r.Template != "" {
			return g.Date(min, max).Format(r.Template)
		}
		return g.DateString(min, max)
	case rules.TypeNumber:
		lo, hi := 1, 100
		if r.Min != nil {
			lo = *r.Min
		}
		if r.Max != nil {
			hi = *r.Max
		}
		return strconv.Itoa(g.Int(lo, hi))
	case rules.TypeTelephone:
		return g.Phone(r.Template)
	case rules.TypeRegex:
		v, err := g.FromRegex(r.Template)
		if err != nil {
			p.f.logger.Warn("fill: regex rule failed, using local synthesis",
				"rule", r.Name, "error", err)
			return g.Word()
		}
		return v
	case rules.TypeAlphanumeric:
		return g.Alphanumeric(r.Template)
	case rules.TypeRandomizedList:
		return g.FromList(r.List)
	default: // text
		lo, hi := 1, 3
		if r.Min != nil && *r.Min > 0 {
			lo = *r.Min
		}
		if r.Max != nil && *r.Max >= lo {
			hi = *r.Max
		}
		return g.WordsRange(lo, hi, p.maxLen(c))
	}
}

// aiOrLocal tries the injected remote generator and falls back to local
// synthesis on any failure. This is the single place the fallback lives.
func (p *Pass) aiOrLocal(ctx context.Context, fieldType, label string, local func() string) string {
	if p.f.ai == nil {
		return local()
	}
	v, err := p.f.ai.Generate(ctx, fieldType, label, "")
	if err != nil {
		p.f.logger.Warn("fill: remote generation failed, using local synthesis",
			"field_type", fieldType, "error", err)
		return local()
	}
	if v == "" {
		return local()
	}
	return v
}
