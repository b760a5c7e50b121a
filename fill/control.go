// Package fill is the field classification and synthetic value dispatch
// engine.
//
// The engine receives one already-discovered control at a time (discovery
// and iteration belong to the document adapters), decides whether to touch
// it, builds its identity fingerprint, resolves authoring overrides through
// the rules tiers, and dispatches to the per-category synthesis policy:
//
//	adapter → Pass.Fill → eligibility → fingerprint → rules → dispatch → write-back
//
// Cross-field state (confirmation fields, password reuse) lives in the Pass;
// a new pass starts with empty memory and must not be shared across
// documents.
package fill

import "context"

// Kind is the closed set of control categories the dispatcher branches on.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindEmail
	KindPassword
	KindNumber
	KindRange
	KindDate
	KindTime
	KindDateTime
	KindDateTimeLocal
	KindMonth
	KindWeek
	KindCheckbox
	KindRadio
	KindSelect
	KindTel
	KindURL
	KindColor
	KindSearch
	KindTextarea
	KindContentEditable
	KindButton
	KindSubmit
	KindReset
	KindFile
	KindHidden
	KindImage
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown", KindText: "text", KindEmail: "email",
	KindPassword: "password", KindNumber: "number", KindRange: "range",
	KindDate: "date", KindTime: "time", KindDateTime: "datetime",
	KindDateTimeLocal: "datetime-local", KindMonth: "month", KindWeek: "week",
	KindCheckbox: "checkbox", KindRadio: "radio", KindSelect: "select",
	KindTel: "tel", KindURL: "url", KindColor: "color", KindSearch: "search",
	KindTextarea: "textarea", KindContentEditable: "content-editable",
	KindButton: "button", KindSubmit: "submit", KindReset: "reset",
	KindFile: "file", KindHidden: "hidden", KindImage: "image",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// KindFromType maps an HTML input type attribute to a Kind. Unrecognised
// types fall back to KindText, matching browser behaviour.
func KindFromType(t string) Kind {
	switch t {
	case "", "text":
		return KindText
	case "email":
		return KindEmail
	case "password":
		return KindPassword
	case "number":
		return KindNumber
	case "range":
		return KindRange
	case "date":
		return KindDate
	case "time":
		return KindTime
	case "datetime":
		return KindDateTime
	case "datetime-local":
		return KindDateTimeLocal
	case "month":
		return KindMonth
	case "week":
		return KindWeek
	case "checkbox":
		return KindCheckbox
	case "radio":
		return KindRadio
	case "tel":
		return KindTel
	case "url":
		return KindURL
	case "color":
		return KindColor
	case "search":
		return KindSearch
	case "button":
		return KindButton
	case "submit":
		return KindSubmit
	case "reset":
		return KindReset
	case "file":
		return KindFile
	case "hidden":
		return KindHidden
	case "image":
		return KindImage
	default:
		return KindText
	}
}

// Control is an opaque handle to one fillable element. The engine only
// reads and writes attributes; it never creates or destroys controls.
type Control interface {
	Kind() Kind
	Name() string
	ID() string
	Classes() string
	Placeholder() string
	AriaLabel() string
	AriaLabelledBy() []string

	// MinAttr and MaxAttr return the raw min/max attribute text; numeric or
	// calendar interpretation happens per category. Empty means absent.
	MinAttr() string
	MaxAttr() string

	// MaxLength returns the declared maximum length, or 0 when absent.
	MaxLength() int

	Value() string
	SetValue(value string)

	Disabled() bool
	Visible() bool
}

// Toggle is a checkable control (checkbox, radio).
type Toggle interface {
	Control
	Checked() bool
	SetChecked(checked bool)
}

// Option is one entry of a select control.
type Option interface {
	Value() string
	Text() string
	Disabled() bool
	Selected() bool
	SetSelected(selected bool)
}

// Selector is a select control, single or multiple.
type Selector interface {
	Control
	Multiple() bool
	Options() []Option
}

// Document is the read-only collaborator contract the engine needs from the
// surrounding document: label text lookup and radio grouping.
type Document interface {
	// LabelFor returns the label text associated with an element id
	// (for= targets and aria-labelledby references). Unknown ids return "".
	LabelFor(id string) string

	// RadioGroup returns the radio controls sharing a group name, in
	// document order. Unknown names return nil.
	RadioGroup(name string) []Toggle
}

// Walker is a Document that can enumerate its fillable controls in order.
// Adapters implement it; the engine itself never traverses documents.
type Walker interface {
	Document
	Controls() []Control
}

// Notifier fires the post-fill DOM-style notifications (input, click,
// change, blur, in that order) on a control. Adapters for inert documents
// may use NopNotifier.
type Notifier interface {
	Notify(ctx context.Context, c Control) error
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, Control) error { return nil }
