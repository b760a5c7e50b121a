package fill

import "strings"

// neverFill lists the structurally ignorable categories.
var neverFill = map[Kind]bool{
	KindButton: true,
	KindSubmit: true,
	KindReset:  true,
	KindFile:   true,
	KindHidden: true,
	KindImage:  true,
}

// ShouldSkip reports whether the engine must leave c untouched. A pure
// predicate over the control's current state and the filler's options:
// calling it twice on an unchanged control yields the same answer.
func (f *Filler) ShouldSkip(c Control, doc Document) bool {
	if neverFill[c.Kind()] {
		return true
	}

	if f.opts.IgnoreHiddenFields && !c.Visible() {
		return true
	}

	if len(f.opts.IgnoredFields) > 0 {
		if f.matchList(f.opts.IgnoredFields, f.Fingerprint(c, doc)) {
			return true
		}
	}

	if f.opts.IgnoreFieldsWithContent {
		switch c.Kind() {
		case KindRadio:
			// A radio group counts as filled when any sibling is checked.
			if doc != nil {
				for _, sib := range doc.RadioGroup(c.Name()) {
					if sib.Checked() {
						return true
					}
				}
			}
		case KindCheckbox:
			// Checkbox state is not "content".
		default:
			if strings.TrimSpace(c.Value()) != "" {
				return true
			}
		}
	}

	return false
}
