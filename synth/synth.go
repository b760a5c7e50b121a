// Package synth is the value-synthesis capability behind the fill engine.
//
// A Generator produces plausible words, sentences, numbers, dates and
// format-shaped strings (phone, website, color, regex-derived) from a
// seedable PRNG. The fill dispatcher consumes it through concrete method
// calls; tests seed it for deterministic output.
//
// A Generator is not safe for concurrent use. Create one per fill pass,
// or one per goroutine.
package synth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Generator produces synthetic values from a seedable PRNG.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded from seed. A zero seed derives one from
// the current time, which is the normal production path.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Fork derives an independently seeded child Generator. The child's
// sequence is fully determined by the parent's state, so a fixed parent
// seed still yields reproducible forks. Forking advances the parent;
// callers sharing a parent across goroutines must serialize Fork calls.
func (g *Generator) Fork() *Generator {
	seed := g.rng.Uint64()
	if seed == 0 {
		seed = 1
	}
	return New(seed)
}

// Int returns a uniform integer in the closed range [min, max].
// Inverted bounds are swapped rather than rejected.
func (g *Generator) Int(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + g.rng.IntN(max-min+1)
}

// Bool returns a uniform random boolean.
func (g *Generator) Bool() bool {
	return g.rng.IntN(2) == 0
}

// Word returns one lowercase word.
func (g *Generator) Word() string {
	return words[g.rng.IntN(len(words))]
}

// WordsRange returns between min and max words joined by spaces, truncated
// at a word boundary so the result never exceeds maxLen (0 = unbounded).
func (g *Generator) WordsRange(min, max, maxLen int) string {
	n := g.Int(min, max)
	parts := make([]string, 0, n)
	length := 0
	for i := 0; i < n; i++ {
		w := g.Word()
		if maxLen > 0 && length+len(w)+len(parts) > maxLen {
			break
		}
		parts = append(parts, w)
		length += len(w)
	}
	if len(parts) == 0 {
		w := g.Word()
		if maxLen > 0 && len(w) > maxLen {
			w = w[:maxLen]
		}
		return w
	}
	return strings.Join(parts, " ")
}

// Sentence returns a capitalized sentence of between min and max words,
// terminated by a period.
func (g *Generator) Sentence(min, max int) string {
	s := g.WordsRange(min, max, 0)
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// Passage returns one or more sentences totalling roughly minWords to
// maxWords, truncated to maxLen bytes when maxLen > 0. The result always
// contains at least one word.
func (g *Generator) Passage(minWords, maxWords, maxLen int) string {
	target := g.Int(minWords, maxWords)
	var b strings.Builder
	written := 0
	for written < target {
		n := g.Int(4, 12)
		if remaining := target - written; n > remaining {
			n = remaining
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(g.Sentence(n, n))
		written += n
	}
	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], " ")
	}
	return out
}

// ScrambledWord concatenates random words and returns the first n bytes,
// lowercased. Used for generated passwords and usernames.
func (g *Generator) ScrambledWord(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(g.Word())
	}
	return strings.ToLower(b.String()[:n])
}

// FirstName returns a random given name.
func (g *Generator) FirstName() string {
	return firstNames[g.rng.IntN(len(firstNames))]
}

// LastName returns a random family name.
func (g *Generator) LastName() string {
	return lastNames[g.rng.IntN(len(lastNames))]
}

// Username returns a plausible login handle.
func (g *Generator) Username() string {
	return fmt.Sprintf("%s%d", g.ScrambledWord(g.Int(5, 8)), g.Int(1, 999))
}

// Organization returns a plausible company name.
func (g *Generator) Organization() string {
	w := g.Word()
	return strings.ToUpper(w[:1]) + w[1:] + " " + orgSuffixes[g.rng.IntN(len(orgSuffixes))]
}

// FromList picks one entry uniformly. Empty lists yield "".
func (g *Generator) FromList(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[g.rng.IntN(len(list))]
}

// Alphanumeric expands a template where each placeholder rune is replaced:
//
//	L  uppercase letter        l  lowercase letter
//	D  letter (either case)    N  digit 0-9
//	X  uppercase letter/digit  x  lowercase letter/digit
//
// Any other rune is copied through verbatim.
func (g *Generator) Alphanumeric(template string) string {
	const (
		upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		lower  = "abcdefghijklmnopqrstuvwxyz"
		digits = "0123456789"
	)
	pick := func(set string) byte { return set[g.rng.IntN(len(set))] }
	var b strings.Builder
	for _, r := range template {
		switch r {
		case 'L':
			b.WriteByte(pick(upper))
		case 'l':
			b.WriteByte(pick(lower))
		case 'D':
			b.WriteByte(pick(upper + lower))
		case 'N':
			b.WriteByte(pick(digits))
		case 'X':
			b.WriteByte(pick(upper + digits))
		case 'x':
			b.WriteByte(pick(lower + digits))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone expands a phone template where X is a random digit. An empty
// template uses a default North-American shape.
func (g *Generator) Phone(template string) string {
	if template == "" {
		template = "+1 (XXX) XXX-XXXX"
	}
	var b strings.Builder
	for _, r := range template {
		if r == 'X' {
			b.WriteByte(byte('0' + g.rng.IntN(10)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Website returns a website-shaped URL.
func (g *Generator) Website() string {
	return "https://www." + g.Word() + g.Word() + tlds[g.rng.IntN(len(tlds))]
}

// Email assembles local@domain from a local part and a domain. Empty
// arguments are synthesized; the local part is sanitized to the safe
// address alphabet.
func (g *Generator) Email(local, domain string) string {
	if local == "" {
		local = g.Word() + "." + g.Word()
	}
	local = g.sanitizeLocal(local)
	if domain == "" {
		domain = g.Word() + tlds[g.rng.IntN(len(tlds))]
	} else if !strings.Contains(domain, ".") {
		domain += ".com"
	}
	return local + "@" + domain
}

func (g *Generator) sanitizeLocal(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('.')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = g.Word()
	}
	return out
}

// Color returns a #rrggbb color value.
func (g *Generator) Color() string {
	return fmt.Sprintf("#%02x%02x%02x", g.rng.IntN(256), g.rng.IntN(256), g.rng.IntN(256))
}
