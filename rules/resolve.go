package rules

import (
	"log/slog"
	"regexp"
	"slices"
	"sync"
)

// Resolver matches fingerprints against the profile, global and defaults
// tiers. Compiled patterns are cached; a pattern that fails to compile is
// logged once and treated as never-matching.
//
// A Resolver is safe for concurrent use and may be shared across fill
// passes.
type Resolver struct {
	profile  []Rule
	global   []Rule
	defaults []Rule

	mu     sync.Mutex
	cache  map[string]*regexp.Regexp // nil entry = invalid pattern
	logger *slog.Logger
}

// NewResolver creates a Resolver over the two configured tiers plus the
// built-in defaults.
func NewResolver(profile, global []Rule, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		profile:  profile,
		global:   global,
		defaults: Defaults(),
		cache:    make(map[string]*regexp.Regexp),
		logger:   logger,
	}
}

// Resolve returns the first rule matching fingerprint, scanning the profile
// tier, then the global tier, then the defaults. When allowed is non-empty
// only rules of those types are eligible. Returns nil if no tier matches.
func (r *Resolver) Resolve(fingerprint string, allowed ...Type) *Rule {
	for _, tier := range [][]Rule{r.profile, r.global, r.defaults} {
		for i := range tier {
			rule := &tier[i]
			if len(allowed) > 0 && !slices.Contains(allowed, rule.Type) {
				continue
			}
			if r.matches(rule, fingerprint) {
				return rule
			}
		}
	}
	return nil
}

func (r *Resolver) matches(rule *Rule, fingerprint string) bool {
	for _, pat := range rule.Match {
		if pat == "" {
			continue
		}
		re := r.compile(pat)
		if re != nil && re.MatchString(fingerprint) {
			return true
		}
	}
	return false
}

// compile returns the cached case-insensitive regexp for pat, or nil if the
// pattern is invalid. Invalid patterns never match; they must not fail the
// fill pass.
func (r *Resolver) compile(pat string) *regexp.Regexp {
	r.mu.Lock()
	defer r.mu.Unlock()

	re, seen := r.cache[pat]
	if seen {
		return re
	}
	re, err := regexp.Compile("(?i)" + pat)
	if err != nil {
		r.logger.Warn("rules: invalid match pattern, treating as non-matching",
			"pattern", pat, "error", err)
		re = nil
	}
	r.cache[pat] = re
	return re
}
