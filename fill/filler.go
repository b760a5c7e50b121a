package fill

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/hazyhaar/formfill/fingerprint"
	"github.com/hazyhaar/formfill/rules"
	"github.com/hazyhaar/formfill/synth"
)

// Filler holds the per-pass-independent machinery: options, rule resolver,
// value generators and the notifier. One Filler serves any number of
// passes; all mutable pass state lives in Pass.
type Filler struct {
	opts     *Options
	resolver *rules.Resolver
	gen      *synth.Generator
	ai       synth.AIGenerator
	notifier Notifier
	logger   *slog.Logger

	// mu guards the pattern cache and forking gen for new passes.
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp // name-list patterns; nil entry = invalid
}

// FillerOption customises a Filler.
type FillerOption func(*Filler)

// WithAI injects the optional remote value generator. Failures fall back to
// local synthesis.
func WithAI(ai synth.AIGenerator) FillerOption {
	return func(f *Filler) { f.ai = ai }
}

// WithNotifier sets the post-fill notifier. Default: NopNotifier.
func WithNotifier(n Notifier) FillerOption {
	return func(f *Filler) { f.notifier = n }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) FillerOption {
	return func(f *Filler) { f.logger = l }
}

// New creates a Filler. A nil opts uses DefaultOptions; a nil gen gets a
// time-seeded generator. The generator is the seed parent: each pass forks
// its own from it.
func New(opts *Options, resolver *rules.Resolver, gen *synth.Generator, fos ...FillerOption) *Filler {
	if opts == nil {
		opts = DefaultOptions()
	} else {
		opts.defaults()
	}
	if gen == nil {
		gen = synth.New(0)
	}
	f := &Filler{
		opts:     opts,
		resolver: resolver,
		gen:      gen,
		notifier: NopNotifier{},
		logger:   slog.Default(),
		patterns: make(map[string]*regexp.Regexp),
	}
	if f.resolver == nil {
		f.resolver = rules.NewResolver(nil, nil, f.logger)
	}
	for _, fo := range fos {
		fo(f)
	}
	return f
}

// Options returns the filler's option set.
func (f *Filler) Options() *Options { return f.opts }

// Fingerprint builds the control's identity text under the filler's match
// toggles. Pure: same control attributes in, same string out.
func (f *Filler) Fingerprint(c Control, doc Document) string {
	var labels fingerprint.Labels
	if doc != nil {
		labels = doc
	}
	return fingerprint.Build(c, labels, f.opts.Match)
}

// matchList reports whether s matches any of the configured patterns,
// case-insensitively. Invalid patterns never match.
func (f *Filler) matchList(patterns []string, s string) bool {
	if s == "" {
		return false
	}
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		re := f.compilePattern(pat)
		if re != nil && re.MatchString(s) {
			return true
		}
	}
	return false
}

func (f *Filler) compilePattern(pat string) *regexp.Regexp {
	f.mu.Lock()
	defer f.mu.Unlock()

	re, seen := f.patterns[pat]
	if seen {
		return re
	}
	re, err := regexp.Compile("(?i)" + pat)
	if err != nil {
		f.logger.Warn("fill: invalid option pattern, treating as non-matching",
			"pattern", pat, "error", err)
		re = nil
	}
	f.patterns[pat] = re
	return re
}

// Report summarises one fill pass.
type Report struct {
	Filled  int `json:"filled"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Pass is one fill pass over one document. It owns the session memory and
// its own value generator; do not share a Pass across documents, reuse it
// for a second pass, or drive one Pass from multiple goroutines.
type Pass struct {
	f      *Filler
	doc    Document
	gen    *synth.Generator
	mem    Memory
	report Report
}

// NewPass starts a fill pass over doc with empty session memory. The pass
// forks its own generator off the filler's, so concurrent passes never
// share PRNG state.
func (f *Filler) NewPass(doc Document) *Pass {
	f.mu.Lock()
	gen := f.gen.Fork()
	f.mu.Unlock()
	return &Pass{f: f, doc: doc, gen: gen}
}

// Report returns the pass counters so far.
func (p *Pass) Report() Report { return p.report }

// Memory exposes the session memory, mainly for tests and diagnostics.
func (p *Pass) Memory() Memory { return p.mem }

// Fill classifies one control and writes a synthesized value into it.
// It returns whether the control was filled, and any notification failure
// after the write: the value is in place either way. Remote generation
// errors are swallowed after a local fallback.
func (p *Pass) Fill(ctx context.Context, c Control) (bool, error) {
	if p.f.ShouldSkip(c, p.doc) {
		p.report.Skipped++
		return false, nil
	}

	fp := p.f.Fingerprint(c, p.doc)
	filled, notify := p.dispatch(ctx, c, fp)
	if !filled {
		p.report.Skipped++
		return false, nil
	}
	p.report.Filled++

	if notify && p.f.opts.TriggerEvents {
		if err := p.f.notifier.Notify(ctx, c); err != nil {
			return true, fmt.Errorf("fill: notify %s: %w", c.Name(), err)
		}
	}
	return true, nil
}

// FillAll runs one pass over every control of doc, in document order.
func (f *Filler) FillAll(ctx context.Context, doc Walker) (Report, error) {
	p := f.NewPass(doc)
	for _, c := range doc.Controls() {
		if err := ctx.Err(); err != nil {
			return p.report, err
		}
		if _, err := p.Fill(ctx, c); err != nil {
			p.report.Errors++
			f.logger.Warn("fill: control failed", "control", c.Name(), "error", err)
		}
	}
	return p.report, nil
}
