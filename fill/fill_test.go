package fill

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hazyhaar/formfill/rules"
	"github.com/hazyhaar/formfill/synth"
)

// --- fakes ---

type fakeControl struct {
	kind        Kind
	name        string
	id          string
	classes     string
	placeholder string
	aria        string
	labelledBy  []string
	min, max    string
	maxLen      int
	value       string
	disabled    bool
	hidden      bool
}

func (c *fakeControl) Kind() Kind { return c.kind }
func (c *fakeControl) Name() string { return c.name }
func (c *fakeControl) ID() string { return c.id }
func (c *fakeControl) Classes() string { return c.classes }
func (c *fakeControl) Placeholder() string { return c.placeholder }
func (c *fakeControl) AriaLabel() string { return c.aria }
func (c *fakeControl) AriaLabelledBy() []string { return c.labelledBy }
func (c *fakeControl) MinAttr() string { return c.min }
func (c *fakeControl) MaxAttr() string { return c.max }
func (c *fakeControl) MaxLength() int { return c.maxLen }
func (c *fakeControl) Value() string { return c.value }
func (c *fakeControl) SetValue(v string) { c.value = v }
func (c *fakeControl) Disabled() bool { return c.disabled }
func (c *fakeControl) Visible() bool { return !c.hidden }

type fakeToggle struct {
	fakeControl
	checked bool
}

func (t *fakeToggle) Checked() bool { return t.checked }
func (t *fakeToggle) SetChecked(v bool) { t.checked = v }

type fakeOption struct {
	value    string
	text     string
	disabled bool
	selected bool
}

func (o *fakeOption) Value() string { return o.value }
func (o *fakeOption) Text() string { return o.text }
func (o *fakeOption) Disabled() bool { return o.disabled }
func (o *fakeOption) Selected() bool { return o.selected }
func (o *fakeOption) SetSelected(v bool) { o.selected = v }

type fakeSelect struct {
	fakeControl
	multiple bool
	options  []*fakeOption
}

func (s *fakeSelect) Multiple() bool { return s.multiple }
func (s *fakeSelect) Options() []Option {
	out := make([]Option, len(s.options))
	for i, o := range s.options {
		out[i] = o
	}
	return out
}

type fakeDoc struct {
	labels   map[string]string
	radios   map[string][]Toggle
	controls []Control
}

func (d *fakeDoc) LabelFor(id string) string {
	if d.labels == nil {
		return ""
	}
	return d.labels[id]
}

func (d *fakeDoc) RadioGroup(name string) []Toggle {
	if d.radios == nil {
		return nil
	}
	return d.radios[name]
}

func (d *fakeDoc) Controls() []Control { return d.controls }

type recordingNotifier struct {
	notified []string
}

func (n *recordingNotifier) Notify(_ context.Context, c Control) error {
	n.notified = append(n.notified, c.Name())
	return nil
}

type failingAI struct{}

func (failingAI) Generate(context.Context, string, string, string) (string, error) {
	return "", errors.New("remote unavailable")
}

func newFiller(t *testing.T, opts *Options, profile, global []rules.Rule, fos ...FillerOption) *Filler {
	t.Helper()
	return New(opts, rules.NewResolver(profile, global, nil), synth.New(1), fos...)
}

func intp(v int) *int { return &v }

// --- eligibility ---

func TestShouldSkip_StructurallyIgnorable(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for _, k := range []Kind{KindButton, KindSubmit, KindReset, KindFile, KindHidden, KindImage} {
		c := &fakeControl{kind: k, name: "anything"}
		if !f.ShouldSkip(c, nil) {
			t.Errorf("kind %v: should always be skipped", k)
		}
	}
}

func TestShouldSkip_Hidden(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreHiddenFields = true
	f := newFiller(t, opts, nil, nil)

	if !f.ShouldSkip(&fakeControl{kind: KindText, hidden: true}, nil) {
		t.Error("hidden control should be skipped")
	}
	if f.ShouldSkip(&fakeControl{kind: KindText}, nil) {
		t.Error("visible control should not be skipped")
	}

	opts2 := DefaultOptions()
	opts2.IgnoreHiddenFields = false
	f2 := newFiller(t, opts2, nil, nil)
	if f2.ShouldSkip(&fakeControl{kind: KindText, hidden: true}, nil) {
		t.Error("hidden control should be filled when the option is off")
	}
}

func TestShouldSkip_IgnoredFields(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoredFields = []string{"captcha", "csrf"}
	f := newFiller(t, opts, nil, nil)

	if !f.ShouldSkip(&fakeControl{kind: KindText, name: "login_captcha_answer"}, nil) {
		t.Error("ignored-pattern control should be skipped")
	}
	if f.ShouldSkip(&fakeControl{kind: KindText, name: "city"}, nil) {
		t.Error("non-matching control should not be skipped")
	}
}

func TestShouldSkip_ExistingContent(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreFieldsWithContent = true
	f := newFiller(t, opts, nil, nil)

	if !f.ShouldSkip(&fakeControl{kind: KindText, value: " hello "}, nil) {
		t.Error("control with content should be skipped")
	}
	if f.ShouldSkip(&fakeControl{kind: KindText, value: "   "}, nil) {
		t.Error("whitespace-only value is not content")
	}

	// Checkbox state is not content.
	cb := &fakeToggle{fakeControl: fakeControl{kind: KindCheckbox, value: "on"}}
	if f.ShouldSkip(cb, nil) {
		t.Error("checkbox should not be skipped for existing value")
	}

	// A radio group with any checked sibling is skipped.
	r1 := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "plan", value: "a"}}
	r2 := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "plan", value: "b"}, checked: true}
	doc := &fakeDoc{radios: map[string][]Toggle{"plan": {r1, r2}}}
	if !f.ShouldSkip(r1, doc) {
		t.Error("radio with checked sibling should be skipped")
	}
}

func TestShouldSkip_Idempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoredFields = []string{"internal"}
	f := newFiller(t, opts, nil, nil)
	c := &fakeControl{kind: KindText, name: "internal_ref"}
	first := f.ShouldSkip(c, nil)
	second := f.ShouldSkip(c, nil)
	if first != second {
		t.Errorf("ShouldSkip not idempotent: %v then %v", first, second)
	}
}

// --- numeric clamping ---

func TestNumber_ControlBoundsOnly(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for i := 0; i < 200; i++ {
		c := &fakeControl{kind: KindNumber, name: "qty", min: "10", max: "50"}
		p := f.NewPass(nil)
		if _, err := p.Fill(context.Background(), c); err != nil {
			t.Fatalf("fill: %v", err)
		}
		v, err := strconv.Atoi(c.value)
		if err != nil {
			t.Fatalf("non-integer value %q", c.value)
		}
		if v < 10 || v > 50 {
			t.Fatalf("value %d outside [10,50]", v)
		}
	}
}

func TestNumber_RuleBoundsOnly(t *testing.T) {
	global := []rules.Rule{{Match: []string{"age"}, Type: rules.TypeNumber, Min: intp(18), Max: intp(65)}}
	f := newFiller(t, nil, nil, global)
	for i := 0; i < 200; i++ {
		c := &fakeControl{kind: KindNumber, name: "age"}
		p := f.NewPass(nil)
		p.Fill(context.Background(), c)
		v, _ := strconv.Atoi(c.value)
		if v < 18 || v > 65 {
			t.Fatalf("value %d outside rule bounds [18,65]", v)
		}
	}
}

func TestNumber_CombinedBounds(t *testing.T) {
	// Overlapping: control [10,50], rule [20,80] → [20,50].
	global := []rules.Rule{{Match: []string{"qty"}, Type: rules.TypeNumber, Min: intp(20), Max: intp(80)}}
	f := newFiller(t, nil, nil, global)
	for i := 0; i < 200; i++ {
		c := &fakeControl{kind: KindNumber, name: "qty", min: "10", max: "50"}
		f.NewPass(nil).Fill(context.Background(), c)
		v, _ := strconv.Atoi(c.value)
		if v < 20 || v > 50 {
			t.Fatalf("value %d outside clamped [20,50]", v)
		}
	}

	// Non-overlapping: control [1,10], rule [20,30] → final min 20, max 10.
	global2 := []rules.Rule{{Match: []string{"qty"}, Type: rules.TypeNumber, Min: intp(20), Max: intp(30)}}
	f2 := newFiller(t, nil, nil, global2)
	for i := 0; i < 200; i++ {
		c := &fakeControl{kind: KindNumber, name: "qty", min: "1", max: "10"}
		f2.NewPass(nil).Fill(context.Background(), c)
		v, _ := strconv.Atoi(c.value)
		if v < 10 || v > 20 {
			t.Fatalf("value %d outside inverted clamp range [10,20]", v)
		}
	}
}

// --- session memory and confirmation ---

func TestEmail_ConfirmMirrorsPrevious(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	p := f.NewPass(nil)

	email := &fakeControl{kind: KindEmail, name: "email"}
	p.Fill(context.Background(), email)
	if email.value == "" || !strings.Contains(email.value, "@") {
		t.Fatalf("email not filled: %q", email.value)
	}

	confirm := &fakeControl{kind: KindEmail, name: "email_confirm"}
	p.Fill(context.Background(), confirm)
	if confirm.value != email.value {
		t.Fatalf("confirm %q != original %q", confirm.value, email.value)
	}
}

func TestConfirm_EmptyMemoryCopiesEmptyString(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	p := f.NewPass(nil)

	confirm := &fakeControl{kind: KindEmail, name: "email_confirm", value: "stale"}
	p.Fill(context.Background(), confirm)
	if confirm.value != "" {
		t.Fatalf("confirm with empty memory should copy \"\", got %q", confirm.value)
	}
}

func TestPassword_ConfirmAndModes(t *testing.T) {
	opts := DefaultOptions()
	opts.Password.Mode = PasswordFixed
	opts.Password.Fixed = "hunter2hunter2"
	f := newFiller(t, opts, nil, nil)
	p := f.NewPass(nil)

	pw := &fakeControl{kind: KindPassword, name: "password"}
	p.Fill(context.Background(), pw)
	if pw.value != "hunter2hunter2" {
		t.Fatalf("fixed mode: got %q", pw.value)
	}

	confirm := &fakeControl{kind: KindPassword, name: "password_confirm"}
	p.Fill(context.Background(), confirm)
	if confirm.value != pw.value {
		t.Fatalf("confirm %q != password %q", confirm.value, pw.value)
	}
}

func TestPassword_Generated(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	p := f.NewPass(nil)
	pw := &fakeControl{kind: KindPassword, name: "password"}
	p.Fill(context.Background(), pw)
	if len(pw.value) != 8 {
		t.Fatalf("generated password length %d, want 8", len(pw.value))
	}
	if pw.value != strings.ToLower(pw.value) {
		t.Fatalf("generated password not lowercase: %q", pw.value)
	}
}

func TestMemory_NotSharedAcrossPasses(t *testing.T) {
	f := newFiller(t, nil, nil, nil)

	p1 := f.NewPass(nil)
	p1.Fill(context.Background(), &fakeControl{kind: KindEmail, name: "email"})
	if p1.Memory().Value == "" {
		t.Fatal("pass 1 memory should hold the email")
	}

	p2 := f.NewPass(nil)
	if p2.Memory().Value != "" {
		t.Fatal("a new pass must start with empty memory")
	}
}

// --- rule precedence ---

func TestRulePrecedence_ProfileOverGlobal(t *testing.T) {
	profile := []rules.Rule{{Match: []string{"email"}, Type: rules.TypeEmail, Template: "corp"}}
	global := []rules.Rule{{Match: []string{"email"}, Type: rules.TypeEmail, Template: "generic"}}
	f := newFiller(t, nil, profile, global)

	c := &fakeControl{kind: KindEmail, name: "email"}
	f.NewPass(nil).Fill(context.Background(), c)
	if !strings.HasSuffix(c.value, "@corp.com") {
		t.Fatalf("profile rule must win: got %q, want @corp.com domain", c.value)
	}
}

// --- radio ---

func TestRadio_AllowListRestriction(t *testing.T) {
	global := []rules.Rule{{Match: []string{"plan"}, Type: rules.TypeRandomizedList, List: []string{"pro"}}}
	f := newFiller(t, nil, nil, global)

	for i := 0; i < 100; i++ {
		free := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "plan", value: "free"}}
		pro := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "plan", value: "pro"}}
		ent := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "plan", value: "enterprise"}}
		doc := &fakeDoc{radios: map[string][]Toggle{"plan": {free, pro, ent}}}

		f.NewPass(doc).Fill(context.Background(), free)
		if free.checked || ent.checked {
			t.Fatal("allow-list must restrict selection to listed values")
		}
		if !pro.checked {
			t.Fatal("exactly the allowed sibling should be selected")
		}
	}
}

func TestRadio_NoSiblingsIsNoOp(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	r := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "orphan"}}
	doc := &fakeDoc{}
	filled, err := f.NewPass(doc).Fill(context.Background(), r)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if filled || r.checked {
		t.Fatal("radio with no group should be a silent no-op")
	}
}

func TestRadio_SuppressesNotification(t *testing.T) {
	n := &recordingNotifier{}
	opts := DefaultOptions()
	opts.TriggerEvents = true
	f := newFiller(t, opts, nil, nil, WithNotifier(n))

	r1 := &fakeToggle{fakeControl: fakeControl{kind: KindRadio, name: "plan", value: "a"}}
	doc := &fakeDoc{radios: map[string][]Toggle{"plan": {r1}}}
	f.NewPass(doc).Fill(context.Background(), r1)
	if len(n.notified) != 0 {
		t.Fatalf("radio fill must not notify, got %v", n.notified)
	}

	c := &fakeControl{kind: KindText, name: "city"}
	f.NewPass(doc).Fill(context.Background(), c)
	if len(n.notified) != 1 || n.notified[0] != "city" {
		t.Fatalf("text fill should notify once, got %v", n.notified)
	}
}

// --- select ---

func TestSelect_MultipleNeverSelectsDisabled(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for i := 0; i < 100; i++ {
		sel := &fakeSelect{
			fakeControl: fakeControl{kind: KindSelect, name: "topping"},
			multiple:    true,
			options: []*fakeOption{
				{value: "a"}, {value: "b", disabled: true}, {value: "c"}, {value: "d", disabled: true},
			},
		}
		f.NewPass(nil).Fill(context.Background(), sel)
		for _, o := range sel.options {
			if o.disabled && o.selected {
				t.Fatal("disabled option selected by random subset step")
			}
		}
	}
}

func TestSelect_SingleSkipsPlaceholderAndDisabled(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for i := 0; i < 100; i++ {
		sel := &fakeSelect{
			fakeControl: fakeControl{kind: KindSelect, name: "country"},
			options: []*fakeOption{
				{value: "", text: "Choose..."}, {value: "fr"}, {value: "de", disabled: true}, {value: "it"},
			},
		}
		f.NewPass(nil).Fill(context.Background(), sel)
		if sel.options[0].selected {
			t.Fatal("empty-value placeholder must never be selected")
		}
		if sel.options[2].selected {
			t.Fatal("disabled option must never be selected")
		}
	}
}

func TestSelect_AllDisabledLeavesUnchanged(t *testing.T) {
	n := &recordingNotifier{}
	opts := DefaultOptions()
	opts.TriggerEvents = true
	f := newFiller(t, opts, nil, nil, WithNotifier(n))

	sel := &fakeSelect{
		fakeControl: fakeControl{kind: KindSelect, name: "tier"},
		options:     []*fakeOption{{value: "", text: "Pick"}, {value: "x", disabled: true}},
	}
	filled, _ := f.NewPass(nil).Fill(context.Background(), sel)
	if filled {
		t.Fatal("all-disabled select should not count as filled")
	}
	if len(n.notified) != 0 {
		t.Fatal("no notification when nothing got selected")
	}
}

func TestSelect_RuleValueOverridesRandom(t *testing.T) {
	global := []rules.Rule{{Match: []string{"country"}, Type: rules.TypeRandomizedList, List: []string{"de"}}}
	f := newFiller(t, nil, nil, global)

	sel := &fakeSelect{
		fakeControl: fakeControl{kind: KindSelect, name: "country"},
		options:     []*fakeOption{{value: ""}, {value: "fr"}, {value: "de"}, {value: "it"}},
	}
	f.NewPass(nil).Fill(context.Background(), sel)
	if !sel.options[2].selected {
		t.Fatal("rule value matching an option must be selected")
	}
	for i, o := range sel.options {
		if i != 2 && o.selected {
			t.Fatalf("only the rule-matched option should be selected, option %d also is", i)
		}
	}
}

// --- date and time shapes ---

func TestDateTime_Suffixes(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	p := f.NewPass(nil)

	dt := &fakeControl{kind: KindDateTime, name: "when"}
	p.Fill(context.Background(), dt)
	if !strings.Contains(dt.value, "T") || !strings.HasSuffix(dt.value, "Z") {
		t.Fatalf("datetime %q must contain T and end in Z", dt.value)
	}

	local := &fakeControl{kind: KindDateTimeLocal, name: "when_local"}
	p.Fill(context.Background(), local)
	if !strings.Contains(local.value, "T") || strings.HasSuffix(local.value, "Z") {
		t.Fatalf("datetime-local %q must contain T and not end in Z", local.value)
	}
}

func TestWeek_Format(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	c := &fakeControl{kind: KindWeek, name: "week"}
	f.NewPass(nil).Fill(context.Background(), c)
	if ok, _ := regexp.MatchString(`^\d{4}-W\d{2}$`, c.value); !ok {
		t.Fatalf("week value %q not in year-Www form", c.value)
	}
}

func TestDate_ControlBounds(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for i := 0; i < 50; i++ {
		c := &fakeControl{kind: KindDate, name: "dob", min: "2020-01-01", max: "2020-12-31"}
		f.NewPass(nil).Fill(context.Background(), c)
		if !strings.HasPrefix(c.value, "2020-") {
			t.Fatalf("date %q outside [2020-01-01, 2020-12-31]", c.value)
		}
	}
}

func TestDate_MalformedBoundsIgnored(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	c := &fakeControl{kind: KindDate, name: "dob", min: "not-a-date", max: "also bad"}
	filled, err := f.NewPass(nil).Fill(context.Background(), c)
	if err != nil || !filled {
		t.Fatalf("malformed bounds must not fail the fill: filled=%v err=%v", filled, err)
	}
	if _, perr := regexp.MatchString(`^\d{4}-\d{2}-\d{2}$`, c.value); perr != nil || len(c.value) != 10 {
		t.Fatalf("date %q not in 2006-01-02 form", c.value)
	}
}

// --- checkbox ---

func TestCheckbox_AgreeTermsAlwaysChecked(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for i := 0; i < 20; i++ {
		cb := &fakeToggle{fakeControl: fakeControl{kind: KindCheckbox, name: "agree_to_terms"}}
		f.NewPass(nil).Fill(context.Background(), cb)
		if !cb.checked {
			t.Fatal("agree-terms checkbox must always be checked")
		}
	}
}

// --- remote generation fallback ---

func TestAI_FailureFallsBackToLocal(t *testing.T) {
	f := newFiller(t, nil, nil, nil, WithAI(failingAI{}))
	c := &fakeControl{kind: KindText, name: "bio"}
	filled, err := f.NewPass(nil).Fill(context.Background(), c)
	if err != nil {
		t.Fatalf("remote failure must not surface: %v", err)
	}
	if !filled || c.value == "" {
		t.Fatal("local fallback must still produce a value")
	}
}

// --- whole-document pass ---

func TestFillAll_Report(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	doc := &fakeDoc{controls: []Control{
		&fakeControl{kind: KindText, name: "city"},
		&fakeControl{kind: KindEmail, name: "email"},
		&fakeControl{kind: KindSubmit, name: "go"},
	}}
	rep, err := f.FillAll(context.Background(), doc)
	if err != nil {
		t.Fatalf("fill all: %v", err)
	}
	if rep.Filled != 2 || rep.Skipped != 1 || rep.Errors != 0 {
		t.Fatalf("report = %+v, want 2 filled, 1 skipped", rep)
	}
}

// --- default classification via built-in rules ---

func TestDefaults_FirstNameFeedsEmail(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	p := f.NewPass(nil)

	first := &fakeControl{kind: KindText, name: "first_name"}
	p.Fill(context.Background(), first)
	last := &fakeControl{kind: KindText, name: "last_name"}
	p.Fill(context.Background(), last)
	email := &fakeControl{kind: KindEmail, name: "email"}
	p.Fill(context.Background(), email)

	wantLocal := strings.ToLower(first.value + "." + last.value)
	if !strings.HasPrefix(email.value, wantLocal+"@") {
		t.Fatalf("email %q should reuse remembered name %q", email.value, wantLocal)
	}
}

func TestMaxLength_BoundsGenericText(t *testing.T) {
	f := newFiller(t, nil, nil, nil)
	for i := 0; i < 50; i++ {
		c := &fakeControl{kind: KindText, name: "favorite_quote", maxLen: 5}
		f.NewPass(nil).Fill(context.Background(), c)
		if len(c.value) > 5 {
			t.Fatalf("value %q exceeds maxlength 5", c.value)
		}
	}
}

// --- notification failures ---

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, Control) error {
	return errors.New("event dispatch rejected")
}

func TestNotifyFailure_SurfacesAfterWrite(t *testing.T) {
	f := newFiller(t, nil, nil, nil, WithNotifier(failingNotifier{}))
	c := &fakeControl{kind: KindText, name: "city"}
	filled, err := f.NewPass(nil).Fill(context.Background(), c)
	if !filled {
		t.Fatal("control must count as filled")
	}
	if err == nil {
		t.Fatal("notify failure must surface")
	}
	if c.value == "" {
		t.Fatal("value must be written before the failure")
	}
}

func TestFillAll_CountsNotifyFailures(t *testing.T) {
	f := newFiller(t, nil, nil, nil, WithNotifier(failingNotifier{}))
	doc := &fakeDoc{controls: []Control{
		&fakeControl{kind: KindText, name: "city"},
		&fakeControl{kind: KindText, name: "street"},
	}}
	rep, err := f.FillAll(context.Background(), doc)
	if err != nil {
		t.Fatalf("fill all: %v", err)
	}
	if rep.Filled != 2 || rep.Errors != 2 {
		t.Fatalf("report = %+v, want 2 filled, 2 errors", rep)
	}
}

// --- concurrent passes ---

func TestConcurrentPasses_ShareOneFiller(t *testing.T) {
	f := newFiller(t, nil, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := &fakeDoc{controls: []Control{
				&fakeControl{kind: KindText, name: "city"},
				&fakeControl{kind: KindEmail, name: "email"},
				&fakeControl{kind: KindNumber, name: "age", min: "1", max: "9"},
			}}
			rep, err := f.FillAll(context.Background(), doc)
			if err != nil {
				t.Errorf("fill all: %v", err)
				return
			}
			if rep.Filled != 3 {
				t.Errorf("report = %+v, want 3 filled", rep)
			}
		}()
	}
	wg.Wait()
}
