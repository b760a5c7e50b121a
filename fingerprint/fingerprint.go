// Package fingerprint builds the matchable identity text for a form control.
//
// A fingerprint concatenates the control's identity attributes (name, id,
// classes, placeholder, ARIA labelling, associated label text), each
// individually sanitized. Rule resolution and the ignore-list both match
// against this one string.
//
// Building a fingerprint is pure: the same control attributes and the same
// toggle set always produce the same string.
package fingerprint

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Source exposes the identity attributes the normalizer reads.
type Source interface {
	Name() string
	ID() string
	Classes() string
	Placeholder() string
	AriaLabel() string
	AriaLabelledBy() []string
}

// Labels resolves element ids to label text. Supplied by the surrounding
// document; a nil Labels contributes empty segments.
type Labels interface {
	LabelFor(id string) string
}

// Toggles selects which attributes participate in the fingerprint.
type Toggles struct {
	Name        bool `yaml:"name"`
	ID          bool `yaml:"id"`
	Class       bool `yaml:"class"`
	Placeholder bool `yaml:"placeholder"`
	AriaLabel   bool `yaml:"aria_label"`
	Label       bool `yaml:"label"`
}

// AllToggles enables every attribute.
func AllToggles() Toggles {
	return Toggles{Name: true, ID: true, Class: true, Placeholder: true, AriaLabel: true, Label: true}
}

var (
	strict       = bluemonday.StrictPolicy()
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// Build assembles the fingerprint for one control. Missing attributes
// contribute empty segments; Build never fails.
func Build(c Source, labels Labels, t Toggles) string {
	var parts []string
	add := func(s string) {
		if s = Sanitize(s); s != "" {
			parts = append(parts, s)
		}
	}

	if t.Name {
		add(c.Name())
	}
	if t.ID {
		add(c.ID())
	}
	if t.Class {
		add(c.Classes())
	}
	if t.Placeholder {
		add(c.Placeholder())
	}
	if t.AriaLabel {
		add(c.AriaLabel())
	}
	if t.Label && labels != nil {
		if id := c.ID(); id != "" {
			add(labels.LabelFor(id))
		}
		for _, id := range c.AriaLabelledBy() {
			add(labels.LabelFor(id))
		}
	}
	return strings.Join(parts, " ")
}

// Sanitize strips markup and scripts from s, unescapes entities, and
// collapses whitespace.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
