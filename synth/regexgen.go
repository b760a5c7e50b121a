package synth

import (
	"fmt"
	"regexp/syntax"
	"strings"
)

// maxUnboundedReps caps the expansion of *, + and open-ended {n,}
// quantifiers when sampling strings from a pattern.
const maxUnboundedReps = 8

// FromRegex returns a string matching pattern, sampled uniformly enough for
// test-data purposes. Unsupported constructs (backreferences are already
// rejected by regexp/syntax) and unsatisfiable patterns return an error.
func (g *Generator) FromRegex(pattern string) (string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", fmt.Errorf("synth: parse regex %q: %w", pattern, err)
	}
	var b strings.Builder
	if err := g.sample(re.Simplify(), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (g *Generator) sample(re *syntax.Regexp, b *strings.Builder) error {
	switch re.Op {
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			b.WriteRune(r)
		}
	case syntax.OpCharClass:
		r, ok := g.pickRune(re.Rune)
		if !ok {
			return fmt.Errorf("synth: empty character class in regex")
		}
		b.WriteRune(r)
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		b.WriteByte(byte(g.Int(0x20, 0x7e)))
	case syntax.OpCapture:
		return g.sample(re.Sub[0], b)
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if err := g.sample(sub, b); err != nil {
				return err
			}
		}
	case syntax.OpAlternate:
		return g.sample(re.Sub[g.rng.IntN(len(re.Sub))], b)
	case syntax.OpStar:
		return g.repeat(re.Sub[0], 0, maxUnboundedReps, b)
	case syntax.OpPlus:
		return g.repeat(re.Sub[0], 1, maxUnboundedReps, b)
	case syntax.OpQuest:
		return g.repeat(re.Sub[0], 0, 1, b)
	case syntax.OpRepeat:
		max := re.Max
		if max < 0 {
			max = re.Min + maxUnboundedReps
		}
		return g.repeat(re.Sub[0], re.Min, max, b)
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		// Zero-width: contributes nothing.
	default:
		return fmt.Errorf("synth: unsupported regex op %v", re.Op)
	}
	return nil
}

func (g *Generator) repeat(sub *syntax.Regexp, min, max int, b *strings.Builder) error {
	n := g.Int(min, max)
	for i := 0; i < n; i++ {
		if err := g.sample(sub, b); err != nil {
			return err
		}
	}
	return nil
}

// pickRune selects a rune from a char-class rune-pair list, preferring
// printable ASCII so negated classes do not produce exotic codepoints.
func (g *Generator) pickRune(pairs []rune) (rune, bool) {
	type span struct{ lo, hi rune }
	var printable, all []span
	for i := 0; i+1 < len(pairs); i += 2 {
		lo, hi := pairs[i], pairs[i+1]
		all = append(all, span{lo, hi})
		if plo, phi := maxRune(lo, 0x20), minRune(hi, 0x7e); plo <= phi {
			printable = append(printable, span{plo, phi})
		}
	}
	pool := printable
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return 0, false
	}
	total := 0
	for _, s := range pool {
		total += int(s.hi-s.lo) + 1
	}
	idx := g.rng.IntN(total)
	for _, s := range pool {
		size := int(s.hi-s.lo) + 1
		if idx < size {
			return s.lo + rune(idx), true
		}
		idx -= size
	}
	return pool[0].lo, true
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}
