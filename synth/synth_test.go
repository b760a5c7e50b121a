package synth

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestInt_Bounds(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		v := g.Int(10, 50)
		if v < 10 || v > 50 {
			t.Fatalf("Int(10,50) = %d", v)
		}
	}
	// Degenerate and inverted ranges.
	if v := g.Int(7, 7); v != 7 {
		t.Fatalf("Int(7,7) = %d", v)
	}
	for i := 0; i < 100; i++ {
		v := g.Int(50, 10)
		if v < 10 || v > 50 {
			t.Fatalf("Int(50,10) = %d, inverted bounds should swap", v)
		}
	}
}

func TestScrambledWord(t *testing.T) {
	g := New(2)
	for _, n := range []int{4, 8, 16} {
		w := g.ScrambledWord(n)
		if len(w) != n {
			t.Fatalf("ScrambledWord(%d): length %d", n, len(w))
		}
		if w != strings.ToLower(w) {
			t.Fatalf("ScrambledWord not lowercase: %q", w)
		}
	}
}

func TestAlphanumeric_Template(t *testing.T) {
	g := New(3)
	got := g.Alphanumeric("LL-NN-ll")
	re := regexp.MustCompile(`^[A-Z]{2}-[0-9]{2}-[a-z]{2}$`)
	if !re.MatchString(got) {
		t.Fatalf("Alphanumeric(LL-NN-ll) = %q", got)
	}
}

func TestPhone_Template(t *testing.T) {
	g := New(4)
	got := g.Phone("+33 X XX XX")
	if !regexp.MustCompile(`^\+33 \d \d\d \d\d$`).MatchString(got) {
		t.Fatalf("Phone template = %q", got)
	}
	if def := g.Phone(""); !regexp.MustCompile(`^\+1 \(\d{3}\) \d{3}-\d{4}$`).MatchString(def) {
		t.Fatalf("default Phone = %q", def)
	}
}

func TestDate_Bounds(t *testing.T) {
	g := New(5)
	min := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		d := g.Date(min, max)
		if d.Before(min) || d.After(max.Add(24*time.Hour)) {
			t.Fatalf("Date out of bounds: %v", d)
		}
	}
}

func TestTimeAndWeekShapes(t *testing.T) {
	g := New(6)
	if !regexp.MustCompile(`^\d{2}:\d{2}$`).MatchString(g.TimeString()) {
		t.Fatal("TimeString shape")
	}
	if !regexp.MustCompile(`^\d{4}-W\d{2}$`).MatchString(g.WeekString(time.Time{}, time.Time{})) {
		t.Fatal("WeekString shape")
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}$`).MatchString(g.MonthString(time.Time{}, time.Time{})) {
		t.Fatal("MonthString shape")
	}
}

func TestFromRegex_MatchesOwnPattern(t *testing.T) {
	g := New(7)
	patterns := []string{
		`[A-Z]{3}-[0-9]{4}`,
		`(foo|bar|baz)+`,
		`a{2,5}b?`,
		`\d{5}(-\d{4})?`,
	}
	for _, pat := range patterns {
		re := regexp.MustCompile(`^(?:` + pat + `)$`)
		for i := 0; i < 50; i++ {
			got, err := g.FromRegex(pat)
			if err != nil {
				t.Fatalf("FromRegex(%q): %v", pat, err)
			}
			if !re.MatchString(got) {
				t.Fatalf("FromRegex(%q) = %q does not match its pattern", pat, got)
			}
		}
	}
}

func TestFromRegex_InvalidPattern(t *testing.T) {
	g := New(8)
	if _, err := g.FromRegex("([unclosed"); err == nil {
		t.Fatal("invalid pattern must error")
	}
}

func TestPassage_Bounded(t *testing.T) {
	g := New(9)
	for i := 0; i < 50; i++ {
		p := g.Passage(10, 50, 120)
		if len(p) > 120 {
			t.Fatalf("Passage exceeds max length: %d bytes", len(p))
		}
		if p == "" {
			t.Fatal("Passage must not be empty")
		}
	}
}

func TestWordsRange_Truncation(t *testing.T) {
	g := New(10)
	for i := 0; i < 100; i++ {
		s := g.WordsRange(1, 5, 12)
		if len(s) > 12 {
			t.Fatalf("WordsRange exceeded max length: %q", s)
		}
		if s == "" {
			t.Fatal("WordsRange must yield at least one (possibly cut) word")
		}
	}
}

func TestEmail_Assembly(t *testing.T) {
	g := New(11)
	got := g.Email("Jane Doe", "corp")
	if !strings.HasPrefix(got, "jane.doe@") {
		t.Fatalf("local part not sanitized: %q", got)
	}
	if !strings.HasSuffix(got, "@corp.com") {
		t.Fatalf("bare domain should gain .com: %q", got)
	}

	full := g.Email("", "mail.example.org")
	if !strings.HasSuffix(full, "@mail.example.org") {
		t.Fatalf("dotted domain must pass through: %q", full)
	}
	if !strings.Contains(full, "@") || strings.HasPrefix(full, "@") {
		t.Fatalf("missing local part: %q", full)
	}
}

func TestEmail_UnusableLocalFallsBack(t *testing.T) {
	g := New(13)
	got := g.Email("!!!", "example.org")
	if strings.HasPrefix(got, "@") {
		t.Fatalf("sanitized-away local part must be regenerated: %q", got)
	}
	if !strings.HasSuffix(got, "@example.org") {
		t.Fatalf("domain must pass through: %q", got)
	}
}

func TestFork_DeterministicAndDivergent(t *testing.T) {
	// Same parent seed, same fork: identical sequences.
	a, b := New(5).Fork(), New(5).Fork()
	for i := 0; i < 10; i++ {
		if a.Word() != b.Word() {
			t.Fatal("forks of equal parents must match")
		}
	}

	// Successive forks of one parent produce distinct sequences.
	parent := New(5)
	c, d := parent.Fork(), parent.Fork()
	same := true
	for i := 0; i < 10; i++ {
		if c.Word() != d.Word() {
			same = false
		}
	}
	if same {
		t.Fatal("successive forks must diverge")
	}
}

func TestColor_Shape(t *testing.T) {
	g := New(12)
	if !regexp.MustCompile(`^#[0-9a-f]{6}$`).MatchString(g.Color()) {
		t.Fatal("Color shape")
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		if a.Word() != b.Word() {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}
